package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vitrine-studio/vitrine/internal/auth"
	"github.com/vitrine-studio/vitrine/internal/database/testutil"
	"github.com/vitrine-studio/vitrine/pkg/crypto"

	apperrors "github.com/vitrine-studio/vitrine/pkg/errors"
)

func newAdminService(t *testing.T) *AdminService {
	t.Helper()
	db := testutil.MustOpenTestDB(t, testutil.WithAdmin("admin", "s3cret!"))
	jwt, err := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret", Issuer: "vitrine"})
	require.NoError(t, err)
	svc, err := NewAdminService(db, jwt)
	require.NoError(t, err)
	return svc
}

func TestAuthenticateIssuesToken(t *testing.T) {
	svc := newAdminService(t)

	result, err := svc.Authenticate(testCtx, Credentials{Username: "admin", Password: "s3cret!"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, "admin", result.Admin.Username)
	require.WithinDuration(t, time.Now().Add(auth.DefaultAccessTokenTTL), result.ExpiresAt, time.Minute)

	claims, err := svc.jwt.ValidateAccessToken(result.Token)
	require.NoError(t, err)
	require.Equal(t, result.Admin.ID, claims.AdminID)

	admin, err := svc.GetByID(testCtx, result.Admin.ID)
	require.NoError(t, err)
	require.NotNil(t, admin.LastLoginAt)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc := newAdminService(t)

	_, err := svc.Authenticate(testCtx, Credentials{Username: "admin", Password: "wrong"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Authenticate(testCtx, Credentials{Username: "ghost", Password: "s3cret!"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Authenticate(testCtx, Credentials{Username: "", Password: "x"})
	requireAppCode(t, err, "VALIDATION_ERROR")
}

func TestUpsertCreatesThenResets(t *testing.T) {
	svc := newAdminService(t)

	created, isNew, err := svc.Upsert(testCtx, "editor", "first-pass", ptr("editor@example.com"))
	require.NoError(t, err)
	require.True(t, isNew)
	require.Equal(t, "editor@example.com", *created.Email)

	reset, isNew, err := svc.Upsert(testCtx, "editor", "second-pass", nil)
	require.NoError(t, err)
	require.False(t, isNew)
	require.Equal(t, created.ID, reset.ID)

	reloaded, err := svc.GetByID(testCtx, created.ID)
	require.NoError(t, err)
	require.True(t, crypto.VerifyPassword(reloaded.Password, "second-pass"))
	require.False(t, crypto.VerifyPassword(reloaded.Password, "first-pass"))

	_, _, err = svc.Upsert(testCtx, "editor", "", nil)
	requireAppCode(t, err, "VALIDATION_ERROR")
}
