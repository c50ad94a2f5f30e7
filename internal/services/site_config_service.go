package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vitrine-studio/vitrine/internal/models"

	apperrors "github.com/vitrine-studio/vitrine/pkg/errors"
)

const maxConfigKeyLength = 128

// SiteConfigService stores free-form site settings keyed by name.
type SiteConfigService struct {
	db *gorm.DB
}

// NewSiteConfigService constructs a SiteConfigService.
func NewSiteConfigService(db *gorm.DB) (*SiteConfigService, error) {
	if db == nil {
		return nil, errors.New("site config service: db is required")
	}
	return &SiteConfigService{db: db}, nil
}

// All returns every setting as a key to value map.
func (s *SiteConfigService) All(ctx context.Context) (map[string]json.RawMessage, error) {
	ctx = ensureContext(ctx)

	var entries []models.ConfigEntry
	if err := s.db.WithContext(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("site config service: list entries: %w", err)
	}

	out := make(map[string]json.RawMessage, len(entries))
	for _, entry := range entries {
		out[entry.Key] = json.RawMessage(entry.Value)
	}
	return out, nil
}

func (s *SiteConfigService) Get(ctx context.Context, key string) (*models.ConfigEntry, error) {
	ctx = ensureContext(ctx)

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrConfigNotFound
	}

	var entry models.ConfigEntry
	err := s.db.WithContext(ctx).Where(&models.ConfigEntry{Key: key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("site config service: get entry: %w", err)
	}
	return &entry, nil
}

// Set creates or replaces the value stored under key.
func (s *SiteConfigService) Set(ctx context.Context, key string, value json.RawMessage) (*models.ConfigEntry, error) {
	ctx = ensureContext(ctx)

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperrors.NewValidation("key is required")
	}
	if len(key) > maxConfigKeyLength {
		return nil, apperrors.NewValidation(fmt.Sprintf("key must be at most %d characters", maxConfigKeyLength))
	}

	value = bytes.TrimSpace(value)
	if len(value) == 0 || bytes.Equal(value, []byte("null")) {
		return nil, apperrors.NewValidation("value is required")
	}
	if !json.Valid(value) {
		return nil, apperrors.NewValidation("value must be valid JSON")
	}

	entry := &models.ConfigEntry{Key: key, Value: datatypes.JSON(value)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(entry).Error
	if err != nil {
		return nil, fmt.Errorf("site config service: upsert entry: %w", err)
	}
	return s.Get(ctx, key)
}
