package app

import (
	"strings"
	"time"

	"github.com/vitrine-studio/vitrine/internal/auth"
	"github.com/vitrine-studio/vitrine/internal/cache"
	"github.com/vitrine-studio/vitrine/internal/database"
)

const (
	defaultLoginRequests = 10
	defaultLoginWindow   = 15 * time.Minute
	bytesPerMB           = 1 << 20
)

// JWTServiceConfig converts AuthConfig into the parameters expected by the JWT service.
func (c AuthConfig) JWTServiceConfig() auth.JWTConfig {
	ttl := c.JWT.TTL
	if ttl <= 0 {
		ttl = auth.DefaultAccessTokenTTL
	}

	return auth.JWTConfig{
		Secret:         c.JWT.Secret,
		Issuer:         c.JWT.Issuer,
		AccessTokenTTL: ttl,
	}
}

// SeedOptions converts the bootstrap admin settings for database seeding.
func (c AuthConfig) SeedOptions() database.SeedOptions {
	return database.SeedOptions{
		AdminUsername: strings.TrimSpace(c.Bootstrap.Username),
		AdminPassword: c.Bootstrap.Password,
		AdminEmail:    strings.TrimSpace(c.Bootstrap.Email),
	}
}

// LoginLimit returns the login rate limit with defaults applied.
func (c AuthConfig) LoginLimit() (requests int, window time.Duration) {
	requests = c.LoginRateLimit.Requests
	if requests <= 0 {
		requests = defaultLoginRequests
	}
	window = c.LoginRateLimit.Window
	if window <= 0 {
		window = defaultLoginWindow
	}
	return requests, window
}

// TTLFor returns the cache lifetime for a resource collection such as
// "services". Unknown resources use the default TTL.
func (c CacheConfig) TTLFor(resource string) time.Duration {
	if ttl, ok := c.TTL[strings.ToLower(resource)]; ok && ttl > 0 {
		return ttl
	}
	return c.DefaultTTLOrFallback()
}

// DefaultTTLOrFallback returns DefaultTTL, or the cache package default when unset.
func (c CacheConfig) DefaultTTLOrFallback() time.Duration {
	if c.DefaultTTL > 0 {
		return c.DefaultTTL
	}
	return cache.DefaultTTL
}

// MaxUploadBytes converts the megabyte limit into bytes.
func (c StorageConfig) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 0
	}
	return int64(c.MaxUploadMB) * bytesPerMB
}

// DatabaseOptions converts DatabaseConfig into database.Config.
func (c DatabaseConfig) DatabaseOptions() database.Config {
	dbCfg := database.Config{
		Driver:     strings.ToLower(strings.TrimSpace(c.Driver)),
		Path:       strings.TrimSpace(c.Path),
		DSN:        strings.TrimSpace(c.DSN),
		LogQueries: c.LogQueries,
	}

	var hostCfg *DBAuthConfig
	switch dbCfg.Driver {
	case "", "sqlite", "sqlite3":
		dbCfg.Driver = "sqlite"
	case "postgres", "postgresql":
		dbCfg.Driver = "postgres"
		hostCfg = &c.Postgres
	case "mysql":
		hostCfg = &c.MySQL
	}

	if hostCfg != nil {
		dbCfg.Host = strings.TrimSpace(hostCfg.Host)
		dbCfg.Port = hostCfg.Port
		dbCfg.Name = strings.TrimSpace(hostCfg.Database)
		dbCfg.User = strings.TrimSpace(hostCfg.Username)
		dbCfg.Password = hostCfg.Password
	}

	return dbCfg
}
