package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vitrine-studio/vitrine/internal/models"
)

// TestimonialInput describes a customer quote. Ratings outside 1..5 are
// replaced by the default rating.
type TestimonialInput struct {
	Name    string  `json:"name" validate:"notblank"`
	Role    string  `json:"role" validate:"notblank"`
	Company string  `json:"company" validate:"notblank"`
	Image   *string `json:"image"`
	Content string  `json:"content" validate:"notblank"`
	Rating  *int    `json:"rating"`
}

// TestimonialUpdate carries the testimonial fields to change.
type TestimonialUpdate struct {
	Name    *string `json:"name" validate:"omitempty,notblank"`
	Role    *string `json:"role" validate:"omitempty,notblank"`
	Company *string `json:"company" validate:"omitempty,notblank"`
	Image   *string `json:"image"`
	Content *string `json:"content" validate:"omitempty,notblank"`
	Rating  *int    `json:"rating"`
}

// TestimonialService manages customer testimonials.
type TestimonialService struct {
	db *gorm.DB
}

// NewTestimonialService constructs a TestimonialService.
func NewTestimonialService(db *gorm.DB) (*TestimonialService, error) {
	if db == nil {
		return nil, errors.New("testimonial service: db is required")
	}
	return &TestimonialService{db: db}, nil
}

func (s *TestimonialService) List(ctx context.Context) ([]models.Testimonial, error) {
	ctx = ensureContext(ctx)

	testimonials := make([]models.Testimonial, 0)
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&testimonials).Error; err != nil {
		return nil, fmt.Errorf("testimonial service: list testimonials: %w", err)
	}
	return testimonials, nil
}

func (s *TestimonialService) Get(ctx context.Context, id uint) (*models.Testimonial, error) {
	return loadRecord[models.Testimonial](ensureContext(ctx), s.db, id, ErrTestimonialNotFound, "testimonial service")
}

func (s *TestimonialService) Create(ctx context.Context, input TestimonialInput) (*models.Testimonial, error) {
	ctx = ensureContext(ctx)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	rating := models.DefaultRating
	if input.Rating != nil {
		rating = models.NormaliseRating(*input.Rating)
	}

	testimonial := &models.Testimonial{
		Name:    strings.TrimSpace(input.Name),
		Role:    strings.TrimSpace(input.Role),
		Company: strings.TrimSpace(input.Company),
		Image:   optionalString(input.Image),
		Content: strings.TrimSpace(input.Content),
		Rating:  rating,
	}
	if err := s.db.WithContext(ctx).Create(testimonial).Error; err != nil {
		return nil, fmt.Errorf("testimonial service: create testimonial: %w", err)
	}
	return testimonial, nil
}

func (s *TestimonialService) Update(ctx context.Context, id uint, input TestimonialUpdate) (*models.Testimonial, error) {
	ctx = ensureContext(ctx)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Role != nil {
		updates["role"] = strings.TrimSpace(*input.Role)
	}
	if input.Company != nil {
		updates["company"] = strings.TrimSpace(*input.Company)
	}
	if input.Image != nil {
		updates["image"] = optionalString(input.Image)
	}
	if input.Content != nil {
		updates["content"] = strings.TrimSpace(*input.Content)
	}
	if input.Rating != nil {
		updates["rating"] = models.NormaliseRating(*input.Rating)
	}
	return updateRecord[models.Testimonial](ctx, s.db, id, updates, ErrTestimonialNotFound, "testimonial service")
}

func (s *TestimonialService) Delete(ctx context.Context, id uint) (*models.Testimonial, error) {
	return deleteRecord[models.Testimonial](ensureContext(ctx), s.db, id, ErrTestimonialNotFound, "testimonial service")
}
