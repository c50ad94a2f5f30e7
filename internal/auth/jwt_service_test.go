package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewJWTServiceRequiresSecret(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	require.EqualError(t, err, "jwt: secret must be provided")
}

func TestNewJWTServiceDefaultsTTL(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "s"})
	require.NoError(t, err)
	require.Equal(t, DefaultAccessTokenTTL, svc.TTL())
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	svc, err := NewJWTService(JWTConfig{
		Secret:         "super-secret",
		Issuer:         "vitrine",
		AccessTokenTTL: time.Hour,
		Clock:          func() time.Time { return current },
	})
	require.NoError(t, err)

	token, expiresAt, err := svc.GenerateAccessToken(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, current.Add(time.Hour), expiresAt)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.AdminID)
	require.Equal(t, "admin", claims.Username)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, "vitrine", claims.Issuer)
	require.True(t, claims.IssuedAt.Time.Equal(current))
}

func TestGenerateRequiresAdminID(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "s"})
	require.NoError(t, err)

	_, _, err = svc.GenerateAccessToken(0, "ghost")
	require.Error(t, err)
}

func TestValidateAccessTokenInvalidSignature(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC) }

	issuer, err := NewJWTService(JWTConfig{Secret: "issuer-secret", Clock: now})
	require.NoError(t, err)
	verifier, err := NewJWTService(JWTConfig{Secret: "other-secret", Clock: now})
	require.NoError(t, err)

	token, _, err := issuer.GenerateAccessToken(1, "admin")
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	require.Error(t, err)
	require.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid))
}

func TestValidateAccessTokenExpired(t *testing.T) {
	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }

	svc, err := NewJWTService(JWTConfig{Secret: "s", AccessTokenTTL: time.Minute, Clock: clock})
	require.NoError(t, err)

	token, _, err := svc.GenerateAccessToken(1, "admin")
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)
	_, err = svc.ValidateAccessToken(token)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateAccessTokenIssuerMismatch(t *testing.T) {
	a, err := NewJWTService(JWTConfig{Secret: "s", Issuer: "a"})
	require.NoError(t, err)
	b, err := NewJWTService(JWTConfig{Secret: "s", Issuer: "b"})
	require.NoError(t, err)

	token, _, err := a.GenerateAccessToken(1, "admin")
	require.NoError(t, err)

	_, err = b.ValidateAccessToken(token)
	require.EqualError(t, err, "jwt: invalid issuer")
}

func TestValidateAccessTokenRejectsOtherAlgorithms(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "s"})
	require.NoError(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": 1, "exp": time.Now().Add(time.Hour).Unix()})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(signed)
	require.Error(t, err)
}
