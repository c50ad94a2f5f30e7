package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vitrine-studio/vitrine/internal/auth"
	"github.com/vitrine-studio/vitrine/internal/models"
	"github.com/vitrine-studio/vitrine/pkg/crypto"
	"github.com/vitrine-studio/vitrine/pkg/metrics"

	apperrors "github.com/vitrine-studio/vitrine/pkg/errors"
)

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// AdminProfile is the public view of an administrator.
type AdminProfile struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Admin     AdminProfile `json:"admin"`
}

// AdminService authenticates administrators and manages their accounts.
type AdminService struct {
	db  *gorm.DB
	jwt *auth.JWTService
	now func() time.Time
}

// NewAdminService constructs an AdminService. jwt may be nil for callers that
// only manage accounts.
func NewAdminService(db *gorm.DB, jwt *auth.JWTService) (*AdminService, error) {
	if db == nil {
		return nil, errors.New("admin service: db is required")
	}
	return &AdminService{db: db, jwt: jwt, now: time.Now}, nil
}

// Profile converts the model into its public view.
func Profile(admin *models.Admin) AdminProfile {
	return AdminProfile{ID: admin.ID, Username: admin.Username, Email: admin.Email}
}

// Authenticate verifies the credentials and issues a bearer token. Unknown
// usernames and wrong passwords yield the same error.
func (s *AdminService) Authenticate(ctx context.Context, creds Credentials) (*LoginResult, error) {
	ctx = ensureContext(ctx)
	if s.jwt == nil {
		return nil, errors.New("admin service: token issuer is not configured")
	}
	if err := validateInput(creds); err != nil {
		return nil, err
	}

	var admin models.Admin
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(creds.Username)).First(&admin).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("admin service: load admin: %w", err)
	}
	if err != nil || !crypto.VerifyPassword(admin.Password, creds.Password) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(admin.ID, admin.Username)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("admin service: issue token: %w", err)
	}

	now := s.now()
	if err := s.db.WithContext(ctx).Model(&admin).Update("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("admin service: record login: %w", err)
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Admin: Profile(&admin)}, nil
}

func (s *AdminService) GetByID(ctx context.Context, id uint) (*models.Admin, error) {
	return loadRecord[models.Admin](ensureContext(ctx), s.db, id, ErrAdminNotFound, "admin service")
}

// Upsert creates the administrator or resets the password of an existing
// one. It reports whether a new account was created.
func (s *AdminService) Upsert(ctx context.Context, username, password string, email *string) (*models.Admin, bool, error) {
	ctx = ensureContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, false, apperrors.NewValidation("username is required")
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, false, apperrors.NewValidation("password is required").WithInternal(err)
	}

	var admin models.Admin
	err = s.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin = models.Admin{Username: username, Email: optionalString(email), Password: hash}
		if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
			return nil, false, fmt.Errorf("admin service: create admin: %w", err)
		}
		return &admin, true, nil
	case err != nil:
		return nil, false, fmt.Errorf("admin service: load admin: %w", err)
	}

	updates := map[string]any{"password": hash}
	if email != nil {
		updates["email"] = optionalString(email)
	}
	if err := s.db.WithContext(ctx).Model(&admin).Updates(updates).Error; err != nil {
		return nil, false, fmt.Errorf("admin service: reset admin: %w", err)
	}
	return &admin, false, nil
}
