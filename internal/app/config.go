package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config represents the runtime configuration for the Vitrine API.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Monitoring  MonitoringConfig  `mapstructure:"monitoring"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	LogLevel    string   `mapstructure:"log_level"`
	FrontendURL []string `mapstructure:"frontend_url"`
	StaticDir   string   `mapstructure:"static_dir"`
}

// DatabaseConfig describes connection options for the supported databases.
type DatabaseConfig struct {
	Driver     string       `mapstructure:"driver"`
	Path       string       `mapstructure:"path"`
	DSN        string       `mapstructure:"dsn"`
	LogQueries bool         `mapstructure:"log_queries"`
	Postgres   DBAuthConfig `mapstructure:"postgres"`
	MySQL      DBAuthConfig `mapstructure:"mysql"`
}

// DBAuthConfig represents host based database parameters.
type DBAuthConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// AuthConfig captures all authentication-related settings.
type AuthConfig struct {
	JWT            JWTSettings       `mapstructure:"jwt"`
	Bootstrap      BootstrapAdmin    `mapstructure:"bootstrap"`
	LoginRateLimit RateLimitSettings `mapstructure:"login_rate_limit"`
}

// JWTSettings configures JWT access tokens.
type JWTSettings struct {
	Secret string        `mapstructure:"secret"`
	Issuer string        `mapstructure:"issuer"`
	TTL    time.Duration `mapstructure:"access_token_ttl"`
}

// BootstrapAdmin is created on startup when no admin with that username exists.
type BootstrapAdmin struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Email    string `mapstructure:"email"`
}

// RateLimitSettings bounds requests per client IP within a window.
type RateLimitSettings struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// CacheConfig tunes the in-process response cache.
type CacheConfig struct {
	DefaultTTL      time.Duration            `mapstructure:"default_ttl"`
	CleanupInterval time.Duration            `mapstructure:"cleanup_interval"`
	BypassParam     string                   `mapstructure:"bypass_param"`
	TTL             map[string]time.Duration `mapstructure:"ttl"`
}

// StorageConfig locates uploaded media.
type StorageConfig struct {
	UploadDir     string `mapstructure:"upload_dir"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	MaxUploadMB   int    `mapstructure:"max_upload_mb"`
}

// MonitoringConfig enables health checks and metrics.
type MonitoringConfig struct {
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
	Health     HealthConfig     `mapstructure:"health_check"`
}

// PrometheusConfig toggles metrics endpoints.
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// HealthConfig toggles health endpoints.
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// MaintenanceConfig schedules background jobs. Schedules use cron syntax,
// including the @every and @hourly descriptors.
type MaintenanceConfig struct {
	PromotionExpirySchedule string        `mapstructure:"promotion_expiry_schedule"`
	MaxJobAge               time.Duration `mapstructure:"max_job_age"`
}

// LoadConfig initialises application configuration using Viper with sensible defaults.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("./config")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	v.SetEnvPrefix("VITRINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if !errors.As(err, &cfgErr) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config, decodeHook()); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.frontend_url", []string{})
	v.SetDefault("server.static_dir", "")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/vitrine.sqlite")
	v.SetDefault("database.log_queries", false)

	v.SetDefault("auth.jwt.issuer", "vitrine")
	v.SetDefault("auth.jwt.access_token_ttl", "168h")
	v.SetDefault("auth.login_rate_limit.requests", 10)
	v.SetDefault("auth.login_rate_limit.window", "15m")

	v.SetDefault("cache.default_ttl", "5m")
	v.SetDefault("cache.cleanup_interval", "10m")
	v.SetDefault("cache.bypass_param", "_t")
	v.SetDefault("cache.ttl", map[string]any{
		"services":   "10m",
		"partners":   "15m",
		"promotions": "10m",
	})

	v.SetDefault("storage.upload_dir", "./uploads")
	v.SetDefault("storage.public_base_url", "/uploads")
	v.SetDefault("storage.max_upload_mb", 50)

	v.SetDefault("monitoring.prometheus.enabled", true)
	v.SetDefault("monitoring.prometheus.endpoint", "/metrics")
	v.SetDefault("monitoring.health_check.enabled", true)

	v.SetDefault("maintenance.promotion_expiry_schedule", "@every 15m")
	v.SetDefault("maintenance.max_job_age", "6h")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}
