package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"

	"github.com/vitrine-studio/vitrine/internal/cache"
	testutil "github.com/vitrine-studio/vitrine/internal/database/testutil"
	"github.com/vitrine-studio/vitrine/internal/models"
	"github.com/vitrine-studio/vitrine/internal/monitoring"
	"github.com/vitrine-studio/vitrine/internal/services"
)

type fixedClock struct {
	current time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.current
}

type failingExpirer struct{}

func (failingExpirer) ExpireEnded(context.Context, time.Time) (int64, error) {
	return 0, errors.New("database is locked")
}

func TestCleanerRunOnceSweepsAndExpires(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	clock := &fixedClock{current: time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)}

	ended := clock.Now().Add(-24 * time.Hour)
	running := clock.Now().Add(24 * time.Hour)
	require.NoError(t, db.Create(&models.Promotion{
		Title: "Soldes", Description: "Fin", CTAText: "Nous contacter", CTALink: "/contact",
		Active: true, EndDate: &ended,
	}).Error)
	require.NoError(t, db.Create(&models.Promotion{
		Title: "Rentrée", Description: "En cours", CTAText: "Nous contacter", CTALink: "/contact",
		Active: true, EndDate: &running,
	}).Error)

	promotions, err := services.NewPromotionService(db)
	require.NoError(t, err)

	responses := cache.New(cache.WithClock(clock.Now))
	responses.Set("/api/articles", []byte("stale"), time.Minute)
	responses.Set("/api/services", []byte("fresh"), time.Hour)
	responses.Set("/api/promotions/active", []byte("soldes"), time.Hour)
	clock.current = clock.current.Add(2 * time.Minute)

	tracker := monitoring.NewJobTracker(clock.Now)
	c := NewCleaner(responses, promotions,
		WithNow(clock.Now),
		WithTracker(tracker),
		WithCron(cron.New(cron.WithLogger(cron.DiscardLogger))),
	)

	require.NoError(t, c.RunOnce(context.Background()))

	require.Equal(t, []string{"/api/services"}, responses.Keys())

	var activeCount int64
	require.NoError(t, db.Model(&models.Promotion{}).Where("active = ?", true).Count(&activeCount).Error)
	require.Equal(t, int64(1), activeCount)

	jobs := tracker.Snapshot()
	require.Len(t, jobs, 2)
	require.Equal(t, JobCacheSweep, jobs[0].Job)
	require.Equal(t, JobPromotionExpiry, jobs[1].Job)
	require.Equal(t, "success", jobs[1].LastStatus)
}

func TestCleanerRunOnceAggregatesFailures(t *testing.T) {
	tracker := monitoring.NewJobTracker(nil)
	c := NewCleaner(cache.New(), failingExpirer{}, WithTracker(tracker))

	err := c.RunOnce(context.Background())
	require.ErrorContains(t, err, "database is locked")

	jobs := tracker.Snapshot()
	require.Len(t, jobs, 2)
	require.Equal(t, "success", jobs[0].LastStatus)
	require.Equal(t, "failure", jobs[1].LastStatus)
	require.Equal(t, uint64(1), jobs[1].ConsecutiveFailures)
}

func TestCleanerStartWithoutJobs(t *testing.T) {
	c := NewCleaner(nil, nil)
	require.NoError(t, c.Start())
	require.NoError(t, c.RunOnce(context.Background()))
	<-c.Stop().Done()
}

func TestCleanerStartRejectsInvalidSchedule(t *testing.T) {
	c := NewCleaner(nil, failingExpirer{}, WithPromotionSchedule("not a schedule"))
	require.ErrorContains(t, c.Start(), "schedule promotion expiry")
}

func TestCleanerStartSchedulesJobs(t *testing.T) {
	scheduler := cron.New(cron.WithLogger(cron.DiscardLogger))
	c := NewCleaner(cache.New(), failingExpirer{}, WithCron(scheduler), WithSweepInterval(time.Minute))
	require.NoError(t, c.Start())
	defer func() { <-c.Stop().Done() }()

	require.Len(t, scheduler.Entries(), 2)
}
