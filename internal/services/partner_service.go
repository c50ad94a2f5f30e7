package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vitrine-studio/vitrine/internal/database"
	"github.com/vitrine-studio/vitrine/internal/models"
)

// PartnerInput describes a partner logo.
type PartnerInput struct {
	Name    string  `json:"name" validate:"notblank"`
	Logo    string  `json:"logo" validate:"notblank"`
	Website *string `json:"website" validate:"omitempty,url"`
}

// PartnerUpdate carries the partner fields to change.
type PartnerUpdate struct {
	Name    *string `json:"name" validate:"omitempty,notblank"`
	Logo    *string `json:"logo" validate:"omitempty,notblank"`
	Website *string `json:"website"`
}

// PartnerService manages partner logos. Partner names are unique.
type PartnerService struct {
	db *gorm.DB
}

// NewPartnerService constructs a PartnerService.
func NewPartnerService(db *gorm.DB) (*PartnerService, error) {
	if db == nil {
		return nil, errors.New("partner service: db is required")
	}
	return &PartnerService{db: db}, nil
}

// List returns partners, most recent first.
func (s *PartnerService) List(ctx context.Context) ([]models.Partner, error) {
	ctx = ensureContext(ctx)

	partners := make([]models.Partner, 0)
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&partners).Error; err != nil {
		return nil, fmt.Errorf("partner service: list partners: %w", err)
	}
	return partners, nil
}

func (s *PartnerService) Get(ctx context.Context, id uint) (*models.Partner, error) {
	return loadRecord[models.Partner](ensureContext(ctx), s.db, id, ErrPartnerNotFound, "partner service")
}

func (s *PartnerService) Create(ctx context.Context, input PartnerInput) (*models.Partner, error) {
	ctx = ensureContext(ctx)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	partner := &models.Partner{
		Name:    strings.TrimSpace(input.Name),
		Logo:    strings.TrimSpace(input.Logo),
		Website: optionalString(input.Website),
	}
	if err := s.db.WithContext(ctx).Create(partner).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrPartnerNameTaken.WithInternal(err)
		}
		return nil, fmt.Errorf("partner service: create partner: %w", err)
	}
	return partner, nil
}

func (s *PartnerService) Update(ctx context.Context, id uint, input PartnerUpdate) (*models.Partner, error) {
	ctx = ensureContext(ctx)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Logo != nil {
		updates["logo"] = strings.TrimSpace(*input.Logo)
	}
	if input.Website != nil {
		updates["website"] = optionalString(input.Website)
	}

	partner, err := updateRecord[models.Partner](ctx, s.db, id, updates, ErrPartnerNotFound, "partner service")
	if err != nil && database.IsUniqueViolation(err) {
		return nil, ErrPartnerNameTaken.WithInternal(err)
	}
	return partner, err
}

func (s *PartnerService) Delete(ctx context.Context, id uint) (*models.Partner, error) {
	return deleteRecord[models.Partner](ensureContext(ctx), s.db, id, ErrPartnerNotFound, "partner service")
}
