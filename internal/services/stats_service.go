package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/vitrine-studio/vitrine/internal/models"
)

// DashboardStats summarises site content for the admin dashboard.
type DashboardStats struct {
	Services          int64 `json:"services"`
	Projects          int64 `json:"projects"`
	Articles          int64 `json:"articles"`
	PublishedArticles int64 `json:"published_articles"`
	Testimonials      int64 `json:"testimonials"`
}

// StatsService computes dashboard counters.
type StatsService struct {
	db *gorm.DB
}

// NewStatsService constructs a StatsService.
func NewStatsService(db *gorm.DB) (*StatsService, error) {
	if db == nil {
		return nil, errors.New("stats service: db is required")
	}
	return &StatsService{db: db}, nil
}

// Dashboard runs the counts concurrently.
func (s *StatsService) Dashboard(ctx context.Context) (DashboardStats, error) {
	ctx = ensureContext(ctx)

	var stats DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.Services, err = countRecords[models.Service](gctx, s.db)
		return err
	})
	g.Go(func() (err error) {
		stats.Projects, err = countRecords[models.Project](gctx, s.db)
		return err
	})
	g.Go(func() (err error) {
		stats.Articles, err = countRecords[models.Article](gctx, s.db)
		return err
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Article{}).
			Where("published = ?", true).
			Count(&stats.PublishedArticles).Error
	})
	g.Go(func() (err error) {
		stats.Testimonials, err = countRecords[models.Testimonial](gctx, s.db)
		return err
	})

	if err := g.Wait(); err != nil {
		return DashboardStats{}, fmt.Errorf("stats service: dashboard counts: %w", err)
	}
	return stats, nil
}
