package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vitrine-studio/vitrine/internal/api"
	"github.com/vitrine-studio/vitrine/internal/app"
	iauth "github.com/vitrine-studio/vitrine/internal/auth"
	"github.com/vitrine-studio/vitrine/internal/cache"
	sharedtestutil "github.com/vitrine-studio/vitrine/internal/database/testutil"
	"github.com/vitrine-studio/vitrine/internal/middleware"
	"github.com/vitrine-studio/vitrine/internal/storage"
	"github.com/vitrine-studio/vitrine/pkg/response"
)

const (
	AdminUsername = "admin"
	AdminPassword = "Secret123!"
)

// Env encapsulates a fully-wired API instance backed by an in-memory database for handler tests.
type Env struct {
	T         *testing.T
	DB        *gorm.DB
	Router    *gin.Engine
	JWT       *iauth.JWTService
	Cache     *cache.ResponseCache
	UploadDir string
	Config    *app.Config
}

// EnvOption adjusts the configuration before the router is built.
type EnvOption func(*app.Config)

// WithMaxUploadMB lowers the upload limit.
func WithMaxUploadMB(mb int) EnvOption {
	return func(cfg *app.Config) {
		cfg.Storage.MaxUploadMB = mb
	}
}

// WithStaticDir serves a single page front end from dir.
func WithStaticDir(dir string) EnvOption {
	return func(cfg *app.Config) {
		cfg.Server.StaticDir = dir
	}
}

// NewEnv provisions a fresh handler test environment with migrations and an administrator.
func NewEnv(t *testing.T, opts ...EnvOption) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := sharedtestutil.MustOpenTestDB(t, sharedtestutil.WithAdmin(AdminUsername, AdminPassword))

	jwtSecret := "test-suite-super-secret-key-32-bytes!!"
	uploadDir := t.TempDir()

	cfg := &app.Config{
		Auth: app.AuthConfig{
			JWT: app.JWTSettings{
				Secret: jwtSecret,
				Issuer: "test-suite",
				TTL:    time.Hour,
			},
			LoginRateLimit: app.RateLimitSettings{Requests: 100, Window: time.Minute},
		},
		Cache: app.CacheConfig{
			DefaultTTL:  5 * time.Minute,
			BypassParam: middleware.DefaultBypassParam,
			TTL: map[string]time.Duration{
				"services": 10 * time.Minute,
				"partners": 15 * time.Minute,
			},
		},
		Storage: app.StorageConfig{
			UploadDir:     uploadDir,
			PublicBaseURL: "/uploads",
			MaxUploadMB:   50,
		},
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
			Health:     app.HealthConfig{Enabled: true},
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	jwtSvc, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	require.NoError(t, err)

	store, err := storage.NewFilesystemStore(uploadDir, cfg.Storage.PublicBaseURL)
	require.NoError(t, err)

	responses := cache.New()
	router, err := api.NewRouter(api.Dependencies{
		DB:        db,
		JWT:       jwtSvc,
		Config:    cfg,
		Cache:     responses,
		Store:     store,
		RateStore: middleware.NewMemoryRateStore(nil),
	})
	require.NoError(t, err)

	return &Env{
		T:         t,
		DB:        db,
		Router:    router,
		JWT:       jwtSvc,
		Cache:     responses,
		UploadDir: uploadDir,
		Config:    cfg,
	}
}

// LoginResult mirrors the POST /api/auth/login payload.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Admin     struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	} `json:"admin"`
}

// Login authenticates the seeded administrator and returns the bearer token.
func (e *Env) Login() string {
	e.T.Helper()

	w := e.Request(http.MethodPost, "/api/auth/login", map[string]string{
		"username": AdminUsername,
		"password": AdminPassword,
	}, "")
	require.Equal(e.T, http.StatusOK, w.Code, w.Body.String())

	resp := DecodeResponse(e.T, w)
	require.True(e.T, resp.Success, w.Body.String())

	var result LoginResult
	DecodeInto(e.T, resp.Data, &result)
	require.NotEmpty(e.T, result.Token)
	require.Equal(e.T, AdminUsername, result.Admin.Username)
	return result.Token
}

// APIResponse represents the canonical API envelope returned by handlers.
type APIResponse struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   *response.ErrorInfo `json:"error"`
	Meta    *response.Meta      `json:"meta"`
}

// DecodeResponse parses the standard API response object from a recorder.
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// DecodeInto unmarshals the data payload into the provided destination.
func DecodeInto[T any](t *testing.T, raw json.RawMessage, dest *T) {
	t.Helper()
	if dest == nil {
		t.Fatal("destination must not be nil")
	}
	require.NoError(t, json.Unmarshal(raw, dest))
}

// Request executes an HTTP request against the test router, applying JSON encoding and auth headers automatically.
func (e *Env) Request(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.T.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.T, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.Do(req, token)
}

// Upload posts content as the multipart field "file".
func (e *Env) Upload(filename string, content []byte, token string) *httptest.ResponseRecorder {
	e.T.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(e.T, err)
	_, err = part.Write(content)
	require.NoError(e.T, err)
	require.NoError(e.T, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return e.Do(req, token)
}

// Do serves req, adding the bearer token when provided.
func (e *Env) Do(req *http.Request, token string) *httptest.ResponseRecorder {
	e.T.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}
