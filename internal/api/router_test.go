package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/vitrine-studio/vitrine/internal/app"
	iauth "github.com/vitrine-studio/vitrine/internal/auth"
	"github.com/vitrine-studio/vitrine/internal/cache"
	"github.com/vitrine-studio/vitrine/internal/database/testutil"
	"github.com/vitrine-studio/vitrine/internal/storage"
)

func testDependencies(t *testing.T, mutate func(*app.Config)) Dependencies {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &app.Config{
		Auth: app.AuthConfig{
			JWT:            app.JWTSettings{Secret: "router-test-secret-with-enough-bytes", Issuer: "test", TTL: 15 * time.Minute},
			LoginRateLimit: app.RateLimitSettings{Requests: 2, Window: time.Minute},
		},
		Cache: app.CacheConfig{
			DefaultTTL:  time.Minute,
			BypassParam: "_t",
			TTL:         map[string]time.Duration{"promotions": 10 * time.Minute},
		},
		Storage: app.StorageConfig{UploadDir: t.TempDir(), PublicBaseURL: "/uploads", MaxUploadMB: 5},
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/internal/metrics"},
			Health:     app.HealthConfig{Enabled: true},
		},
	}
	if mutate != nil {
		mutate(cfg)
	}

	jwtSvc, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	require.NoError(t, err)
	store, err := storage.NewFilesystemStore(cfg.Storage.UploadDir, cfg.Storage.PublicBaseURL)
	require.NoError(t, err)

	return Dependencies{
		DB:     testutil.MustOpenTestDB(t, testutil.WithAdmin("admin", "Secret123!")),
		JWT:    jwtSvc,
		Config: cfg,
		Cache:  cache.New(),
		Store:  store,
	}
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouterRequiresDependencies(t *testing.T) {
	deps := testDependencies(t, nil)

	cases := map[string]func(*Dependencies){
		"database handle": func(d *Dependencies) { d.DB = nil },
		"jwt service":     func(d *Dependencies) { d.JWT = nil },
		"config":          func(d *Dependencies) { d.Config = nil },
		"response cache":  func(d *Dependencies) { d.Cache = nil },
		"upload store":    func(d *Dependencies) { d.Store = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			broken := deps
			mutate(&broken)
			_, err := NewRouter(broken)
			require.ErrorContains(t, err, name)
		})
	}
}

func TestRouterPublicAndProtectedRoutes(t *testing.T) {
	router, err := NewRouter(testDependencies(t, nil))
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/health").Code)
	require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/services").Code)
	require.Equal(t, http.StatusUnauthorized, serve(router, http.MethodPost, "/api/services").Code)
	require.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/api/admin/stats").Code)
	require.Equal(t, http.StatusUnauthorized, serve(router, http.MethodPost, "/api/upload").Code)

	w := serve(router, http.MethodGet, "/api/services")
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouterCachesPerResourceTTL(t *testing.T) {
	router, err := NewRouter(testDependencies(t, nil))
	require.NoError(t, err)

	first := serve(router, http.MethodGet, "/api/promotions/active")
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, "MISS", first.Header().Get("X-Cache"))
	require.Equal(t, "public, max-age=600, s-maxage=600", first.Header().Get("Cache-Control"))

	articles := serve(router, http.MethodGet, "/api/articles")
	require.Equal(t, "public, max-age=60, s-maxage=60", articles.Header().Get("Cache-Control"))

	require.Equal(t, "HIT", serve(router, http.MethodGet, "/api/promotions/active").Header().Get("X-Cache"))
}

func TestRouterLimitsLoginAttempts(t *testing.T) {
	router, err := NewRouter(testDependencies(t, nil))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NotEqual(t, http.StatusTooManyRequests, serve(router, http.MethodPost, "/api/auth/login").Code)
	}
	require.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodPost, "/api/auth/login").Code)
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router, err := NewRouter(testDependencies(t, nil))
	require.NoError(t, err)

	serve(router, http.MethodGet, "/api/health")
	w := serve(router, http.MethodGet, "/internal/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "vitrine_api_latency_seconds")

	disabled, err := NewRouter(testDependencies(t, func(cfg *app.Config) {
		cfg.Monitoring.Prometheus.Enabled = false
		cfg.Monitoring.Health.Enabled = false
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, serve(disabled, http.MethodGet, "/internal/metrics").Code)
	require.Equal(t, http.StatusNotFound, serve(disabled, http.MethodGet, "/api/health").Code)
}
