package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vitrine-studio/vitrine/internal/api"
	"github.com/vitrine-studio/vitrine/internal/app"
	"github.com/vitrine-studio/vitrine/internal/app/maintenance"
	iauth "github.com/vitrine-studio/vitrine/internal/auth"
	"github.com/vitrine-studio/vitrine/internal/cache"
	"github.com/vitrine-studio/vitrine/internal/database"
	"github.com/vitrine-studio/vitrine/internal/middleware"
	"github.com/vitrine-studio/vitrine/internal/monitoring"
	"github.com/vitrine-studio/vitrine/internal/monitoring/checks"
	"github.com/vitrine-studio/vitrine/internal/services"
	"github.com/vitrine-studio/vitrine/internal/storage"
)

const rateStoreSweepInterval = time.Minute

// runtimeStack bundles long-lived services used by the HTTP server.
type runtimeStack struct {
	DB        *gorm.DB
	Cache     *cache.ResponseCache
	Store     *storage.FilesystemStore
	RateStore *middleware.MemoryRateStore
	Tracker   *monitoring.JobTracker
	Health    *monitoring.HealthManager
	Cleaner   *maintenance.Cleaner
	Router    *gin.Engine

	stopRates context.CancelFunc
}

// bootstrapRuntime opens the database and wires caches, background jobs and the HTTP router.
func bootstrapRuntime(ctx context.Context, cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(context.Background(), log)
		}
	}()

	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	jwtSvc, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	if err != nil {
		return nil, fmt.Errorf("initialise jwt service: %w", err)
	}

	stack.Cache = cache.New(cache.WithDefaultTTL(cfg.Cache.DefaultTTLOrFallback()))

	stack.Store, err = storage.NewFilesystemStore(cfg.Storage.UploadDir, cfg.Storage.PublicBaseURL)
	if err != nil {
		return nil, fmt.Errorf("initialise upload storage: %w", err)
	}

	stack.RateStore = middleware.NewMemoryRateStore(nil)
	rateCtx, cancel := context.WithCancel(context.Background())
	stack.stopRates = cancel
	go stack.RateStore.Run(rateCtx, rateStoreSweepInterval)

	stack.Tracker = monitoring.NewJobTracker(nil)
	stack.Health = monitoring.NewHealthManager()
	stack.Health.RegisterReadiness(checks.Database(stack.DB, 0))
	stack.Health.RegisterReadiness(checks.Storage(stack.Store, 0))
	stack.Health.RegisterReadiness(checks.Maintenance(stack.Tracker, cfg.Maintenance.MaxJobAge))

	promotions, err := services.NewPromotionService(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise promotion service: %w", err)
	}

	cleanerOpts := []maintenance.Option{maintenance.WithTracker(stack.Tracker)}
	if cfg.Cache.CleanupInterval > 0 {
		cleanerOpts = append(cleanerOpts, maintenance.WithSweepInterval(cfg.Cache.CleanupInterval))
	}
	if cfg.Maintenance.PromotionExpirySchedule != "" {
		cleanerOpts = append(cleanerOpts, maintenance.WithPromotionSchedule(cfg.Maintenance.PromotionExpirySchedule))
	}
	stack.Cleaner = maintenance.NewCleaner(stack.Cache, promotions, cleanerOpts...)
	if err := stack.Cleaner.Start(); err != nil {
		return nil, fmt.Errorf("start maintenance jobs: %w", err)
	}

	stack.Router, err = api.NewRouter(api.Dependencies{
		DB:        stack.DB,
		JWT:       jwtSvc,
		Config:    cfg,
		Cache:     stack.Cache,
		Store:     stack.Store,
		RateStore: stack.RateStore,
		Health:    stack.Health,
	})
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	success = true
	return stack, nil
}

// Shutdown stops background jobs, runs a final maintenance pass and releases resources.
func (s *runtimeStack) Shutdown(ctx context.Context, log *zap.Logger) {
	if s == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if s.stopRates != nil {
		s.stopRates()
	}

	if s.Cleaner != nil {
		select {
		case <-s.Cleaner.Stop().Done():
		case <-ctx.Done():
		}
		if err := s.Cleaner.RunOnce(ctx); err != nil {
			log.Warn("maintenance shutdown pass failed", zap.Error(err))
		}
	}

	if s.DB != nil {
		if err := database.Close(s.DB); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}
}

func initialiseDatabase(ctx context.Context, cfg *app.Config, log *zap.Logger) (*gorm.DB, error) {
	dbCfg := cfg.Database.DatabaseOptions()
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrateAndSeed(ctx, db, cfg.Auth.SeedOptions()); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	log.Info("database connected", zap.String("driver", dbCfg.Driver))
	return db, nil
}
