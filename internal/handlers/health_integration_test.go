package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vitrine-studio/vitrine/internal/handlers/testutil"
)

func TestHealthEndpoints(t *testing.T) {
	env := testutil.NewEnv(t)

	for _, path := range []string{"/api/health", "/api/health/live", "/api/health/ready", "/api/health/db"} {
		w := env.Request(http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, w.Code, "%s: %s", path, w.Body.String())
	}

	var status struct {
		Status string `json:"status"`
	}
	testutil.DecodeInto(t, testutil.DecodeResponse(t, env.Request(http.MethodGet, "/api/health", nil, "")).Data, &status)
	require.Equal(t, "ok", status.Status)
}

func TestDatabaseHealthReportsOutage(t *testing.T) {
	env := testutil.NewEnv(t)

	sqlDB, err := env.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	require.Equal(t, http.StatusServiceUnavailable, env.Request(http.MethodGet, "/api/health/db", nil, "").Code)
	require.Equal(t, http.StatusServiceUnavailable, env.Request(http.MethodGet, "/api/health/ready", nil, "").Code)
	require.Equal(t, http.StatusOK, env.Request(http.MethodGet, "/api/health/live", nil, "").Code)
}
