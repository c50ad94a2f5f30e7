package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vitrine-studio/vitrine/internal/models"

	apperrors "github.com/vitrine-studio/vitrine/pkg/errors"
)

// PromotionInput describes a promotional banner. Active defaults to true and
// the call to action defaults to the contact page.
type PromotionInput struct {
	Title       string  `json:"title" validate:"notblank"`
	Description string  `json:"description" validate:"notblank"`
	Image       *string `json:"image"`
	Icon        *string `json:"icon"`
	CTAText     *string `json:"cta_text"`
	CTALink     *string `json:"cta_link"`
	Active      *bool   `json:"active"`
	StartDate   *Date   `json:"start_date"`
	EndDate     *Date   `json:"end_date"`
}

// PromotionUpdate carries the promotion fields to change.
type PromotionUpdate struct {
	Title       *string `json:"title" validate:"omitempty,notblank"`
	Description *string `json:"description" validate:"omitempty,notblank"`
	Image       *string `json:"image"`
	Icon        *string `json:"icon"`
	CTAText     *string `json:"cta_text"`
	CTALink     *string `json:"cta_link"`
	Active      *bool   `json:"active"`
	StartDate   *Date   `json:"start_date"`
	EndDate     *Date   `json:"end_date"`
}

// PromotionService manages promotional banners.
type PromotionService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPromotionService constructs a PromotionService.
func NewPromotionService(db *gorm.DB) (*PromotionService, error) {
	if db == nil {
		return nil, errors.New("promotion service: db is required")
	}
	return &PromotionService{db: db, now: time.Now}, nil
}

func (s *PromotionService) List(ctx context.Context) ([]models.Promotion, error) {
	ctx = ensureContext(ctx)

	promotions := make([]models.Promotion, 0)
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&promotions).Error; err != nil {
		return nil, fmt.Errorf("promotion service: list promotions: %w", err)
	}
	return promotions, nil
}

// Active returns the newest promotion live at now, or nil when none is.
func (s *PromotionService) Active(ctx context.Context, now time.Time) (*models.Promotion, error) {
	ctx = ensureContext(ctx)
	if now.IsZero() {
		now = s.now()
	}
	now = now.UTC()

	var promotions []models.Promotion
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Where("start_date IS NULL OR start_date <= ?", now).
		Where("end_date IS NULL OR end_date >= ?", now).
		Order("created_at DESC").
		Order("id DESC").
		Limit(1).
		Find(&promotions).Error
	if err != nil {
		return nil, fmt.Errorf("promotion service: active promotion: %w", err)
	}
	if len(promotions) == 0 {
		return nil, nil
	}
	return &promotions[0], nil
}

func (s *PromotionService) Get(ctx context.Context, id uint) (*models.Promotion, error) {
	return loadRecord[models.Promotion](ensureContext(ctx), s.db, id, ErrPromotionNotFound, "promotion service")
}

func (s *PromotionService) Create(ctx context.Context, input PromotionInput) (*models.Promotion, error) {
	ctx = ensureContext(ctx)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	promotion := &models.Promotion{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Image:       optionalString(input.Image),
		Icon:        optionalString(input.Icon),
		CTAText:     stringOr(input.CTAText, models.DefaultPromotionCTAText),
		CTALink:     stringOr(input.CTALink, models.DefaultPromotionCTALink),
		Active:      input.Active == nil || *input.Active,
		StartDate:   timePtr(input.StartDate),
		EndDate:     timePtr(input.EndDate),
	}
	if err := checkWindow(promotion.StartDate, promotion.EndDate); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(promotion).Error; err != nil {
		return nil, fmt.Errorf("promotion service: create promotion: %w", err)
	}
	return promotion, nil
}

func (s *PromotionService) Update(ctx context.Context, id uint, input PromotionUpdate) (*models.Promotion, error) {
	ctx = ensureContext(ctx)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Title != nil {
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Image != nil {
		updates["image"] = optionalString(input.Image)
	}
	if input.Icon != nil {
		updates["icon"] = optionalString(input.Icon)
	}
	if input.CTAText != nil {
		updates["cta_text"] = stringOr(input.CTAText, models.DefaultPromotionCTAText)
	}
	if input.CTALink != nil {
		updates["cta_link"] = stringOr(input.CTALink, models.DefaultPromotionCTALink)
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}

	start, end := current.StartDate, current.EndDate
	if input.StartDate != nil {
		start = timePtr(input.StartDate)
		updates["start_date"] = start
	}
	if input.EndDate != nil {
		end = timePtr(input.EndDate)
		updates["end_date"] = end
	}
	if err := checkWindow(start, end); err != nil {
		return nil, err
	}

	return updateRecord[models.Promotion](ctx, s.db, id, updates, ErrPromotionNotFound, "promotion service")
}

func (s *PromotionService) Delete(ctx context.Context, id uint) (*models.Promotion, error) {
	return deleteRecord[models.Promotion](ensureContext(ctx), s.db, id, ErrPromotionNotFound, "promotion service")
}

// ExpireEnded deactivates active promotions whose end date is before now and
// reports how many rows changed.
func (s *PromotionService) ExpireEnded(ctx context.Context, now time.Time) (int64, error) {
	ctx = ensureContext(ctx)
	if now.IsZero() {
		now = s.now()
	}
	now = now.UTC()

	result := s.db.WithContext(ctx).
		Model(&models.Promotion{}).
		Where("active = ?", true).
		Where("end_date IS NOT NULL AND end_date < ?", now).
		Update("active", false)
	if result.Error != nil {
		return 0, fmt.Errorf("promotion service: expire promotions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func checkWindow(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperrors.NewValidation("end_date must not be before start_date")
	}
	return nil
}

// stringOr trims value and falls back when it is nil or blank.
func stringOr(value *string, fallback string) string {
	if trimmed := optionalString(value); trimmed != nil {
		return *trimmed
	}
	return fallback
}
