package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vitrine-studio/vitrine/internal/database/testutil"

	apperrors "github.com/vitrine-studio/vitrine/pkg/errors"
)

func openServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
}

func ptr[T any](v T) *T {
	return &v
}

func requireAppCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, apperrors.FromError(err).Code)
}

var testCtx = context.Background()
