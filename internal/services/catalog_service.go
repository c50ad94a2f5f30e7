package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vitrine-studio/vitrine/internal/models"
)

const catalogListLimit = 100

// ServiceInput describes an agency offering.
type ServiceInput struct {
	Title       string   `json:"title" validate:"notblank"`
	Description string   `json:"description" validate:"notblank"`
	Image       *string  `json:"image"`
	Features    []string `json:"features"`
}

// ServiceUpdate carries the offering fields to change.
type ServiceUpdate struct {
	Title       *string   `json:"title" validate:"omitempty,notblank"`
	Description *string   `json:"description" validate:"omitempty,notblank"`
	Image       *string   `json:"image"`
	Features    *[]string `json:"features"`
}

// CatalogService manages the offerings listed on the services page.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(db *gorm.DB) (*CatalogService, error) {
	if db == nil {
		return nil, errors.New("catalog service: db is required")
	}
	return &CatalogService{db: db}, nil
}

// List returns offerings in creation order.
func (s *CatalogService) List(ctx context.Context) ([]models.Service, error) {
	ctx = ensureContext(ctx)

	services := make([]models.Service, 0)
	err := s.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Limit(catalogListLimit).
		Find(&services).Error
	if err != nil {
		return nil, fmt.Errorf("catalog service: list services: %w", err)
	}
	return services, nil
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Service, error) {
	return loadRecord[models.Service](ensureContext(ctx), s.db, id, ErrServiceNotFound, "catalog service")
}

func (s *CatalogService) Create(ctx context.Context, input ServiceInput) (*models.Service, error) {
	ctx = ensureContext(ctx)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	service := &models.Service{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Image:       optionalString(input.Image),
		Features:    cleanList(input.Features),
	}
	if err := s.db.WithContext(ctx).Create(service).Error; err != nil {
		return nil, fmt.Errorf("catalog service: create service: %w", err)
	}
	return service, nil
}

func (s *CatalogService) Update(ctx context.Context, id uint, input ServiceUpdate) (*models.Service, error) {
	ctx = ensureContext(ctx)
	if err := validateInput(input); err != nil {
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
	if input.Features != nil {
		updates["features"] = cleanList(*input.Features)
	}
	return updateRecord[models.Service](ctx, s.db, id, updates, ErrServiceNotFound, "catalog service")
}

func (s *CatalogService) Delete(ctx context.Context, id uint) (*models.Service, error) {
	return deleteRecord[models.Service](ensureContext(ctx), s.db, id, ErrServiceNotFound, "catalog service")
}
