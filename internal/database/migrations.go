package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vitrine-studio/vitrine/internal/models"
	"github.com/vitrine-studio/vitrine/pkg/crypto"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.Article{},
		&models.Project{},
		&models.Service{},
		&models.Partner{},
		&models.Testimonial{},
		&models.Promotion{},
		&models.ConfigEntry{},
	)
}

// SeedOptions describes the bootstrap administrator created on first start.
type SeedOptions struct {
	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

// SeedData creates the bootstrap administrator when credentials are
// configured and no account with that username exists yet. Existing
// accounts are never modified.
func SeedData(ctx context.Context, db *gorm.DB, opts SeedOptions) error {
	username := strings.TrimSpace(opts.AdminUsername)
	if username == "" || opts.AdminPassword == "" {
		return nil
	}

	var existing models.Admin
	err := db.WithContext(ctx).Where("username = ?", username).Take(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup bootstrap admin: %w", err)
	}

	hash, err := crypto.HashPassword(opts.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash bootstrap admin password: %w", err)
	}

	admin := models.Admin{Username: username, Password: hash}
	if email := strings.TrimSpace(opts.AdminEmail); email != "" {
		admin.Email = &email
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	return nil
}
