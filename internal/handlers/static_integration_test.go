package handlers_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vitrine-studio/vitrine/internal/handlers/testutil"
)

func TestSinglePageFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>vitrine</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	env := testutil.NewEnv(t, testutil.WithStaticDir(dir))

	w := env.Request(http.MethodGet, "/services/web", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "vitrine")

	w = env.Request(http.MethodGet, "/assets/app.js", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "console.log(1)", w.Body.String())

	w = env.Request(http.MethodGet, "/api/unknown", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "NOT_FOUND", testutil.DecodeResponse(t, w).Error.Code)

	w = env.Request(http.MethodPost, "/contact", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownRouteWithoutFrontend(t *testing.T) {
	env := testutil.NewEnv(t)

	w := env.Request(http.MethodGet, "/about", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.False(t, testutil.DecodeResponse(t, w).Success)
}
