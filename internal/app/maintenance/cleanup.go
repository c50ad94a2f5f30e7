package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/vitrine-studio/vitrine/internal/cache"
	"github.com/vitrine-studio/vitrine/internal/monitoring"
	"github.com/vitrine-studio/vitrine/pkg/logger"
)

const (
	// JobCacheSweep drops expired response cache entries.
	JobCacheSweep = "cache_sweep"
	// JobPromotionExpiry deactivates promotions past their end date.
	JobPromotionExpiry = "promotion_expiry"

	defaultSweepInterval     = 10 * time.Minute
	defaultPromotionSchedule = "@every 15m"

	promotionsPath = "/api/promotions"
)

// PromotionExpirer deactivates promotions whose end date has passed.
type PromotionExpirer interface {
	ExpireEnded(ctx context.Context, now time.Time) (int64, error)
}

// Cleaner coordinates background maintenance: sweeping expired cache entries
// and switching off ended promotions.
type Cleaner struct {
	cache       *cache.ResponseCache
	invalidator *cache.Invalidator
	promotions  PromotionExpirer
	tracker     *monitoring.JobTracker
	cron        *cron.Cron
	now         func() time.Time
	log         *zap.Logger

	sweepInterval     time.Duration
	promotionSchedule string
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used for promotion expiry.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithSweepInterval sets how often expired cache entries are swept.
func WithSweepInterval(interval time.Duration) Option {
	return func(cleaner *Cleaner) {
		if interval > 0 {
			cleaner.sweepInterval = interval
		}
	}
}

// WithPromotionSchedule overrides the cron specification for promotion expiry.
func WithPromotionSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.promotionSchedule = spec
		}
	}
}

// WithTracker records job outcomes for the maintenance health check.
func WithTracker(tracker *monitoring.JobTracker) Option {
	return func(cleaner *Cleaner) {
		cleaner.tracker = tracker
	}
}

// NewCleaner constructs a Cleaner. A nil cache disables the sweep and a nil
// promotion expirer disables expiry.
func NewCleaner(responses *cache.ResponseCache, promotions PromotionExpirer, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		cache:             responses,
		invalidator:       cache.NewInvalidator(responses),
		promotions:        promotions,
		now:               time.Now,
		log:               logger.WithModule("maintenance"),
		sweepInterval:     defaultSweepInterval,
		promotionSchedule: defaultPromotionSchedule,
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Start registers the enabled jobs with the cron scheduler and launches it.
func (c *Cleaner) Start() error {
	if c.cache == nil && c.promotions == nil {
		return nil
	}

	if c.cache != nil {
		spec := fmt.Sprintf("@every %s", c.sweepInterval)
		if _, err := c.cron.AddFunc(spec, func() {
			_ = c.run(context.Background(), JobCacheSweep, c.sweepCache)
		}); err != nil {
			return fmt.Errorf("schedule cache sweep: %w", err)
		}
	}

	if c.promotions != nil {
		if _, err := c.cron.AddFunc(c.promotionSchedule, func() {
			_ = c.run(context.Background(), JobPromotionExpiry, c.expirePromotions)
		}); err != nil {
			return fmt.Errorf("schedule promotion expiry: %w", err)
		}
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler; the returned context is done once
// running jobs complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes every enabled job sequentially and aggregates failures.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error
	if c.cache != nil {
		errs = multierr.Append(errs, c.run(ctx, JobCacheSweep, c.sweepCache))
	}
	if c.promotions != nil {
		errs = multierr.Append(errs, c.run(ctx, JobPromotionExpiry, c.expirePromotions))
	}
	return errs
}

func (c *Cleaner) run(ctx context.Context, job string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	c.tracker.Record(job, err, time.Since(start))
	if err != nil {
		c.log.Warn("maintenance job failed", zap.String("job", job), zap.Error(err))
	}
	return err
}

func (c *Cleaner) sweepCache(context.Context) error {
	removed := c.cache.Cleanup()
	if removed > 0 {
		c.log.Debug("expired cache entries swept", zap.Int("removed", removed))
	}
	return nil
}

func (c *Cleaner) expirePromotions(ctx context.Context) error {
	expired, err := c.promotions.ExpireEnded(ctx, c.now())
	if err != nil {
		return err
	}
	if expired > 0 {
		c.invalidator.Invalidate(promotionsPath)
		c.log.Info("promotions expired", zap.Int64("count", expired))
	}
	return nil
}
