// Package config loads the frontend's settings from the environment.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend   BackendConfig
	Session   SessionConfig
	Dashboard DashboardConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type BackendConfig struct {
	URL              string        `env:"BACKEND_URL,                default=http://localhost:8000"`
	Timeout          time.Duration `env:"BACKEND_TIMEOUT,            default=15s"`
	MaxResponseBytes int64         `env:"BACKEND_MAX_RESPONSE_BYTES, default=33554432"`
}

type SessionConfig struct {
	Store string `env:"SESSION_STORE, default=memory"`
	// TTL of zero keeps a credential until logout.
	TTL          time.Duration `env:"SESSION_TTL,   default=0s"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`
}

type DashboardConfig struct {
	IdleTTL time.Duration `env:"DASHBOARD_IDLE_TTL, default=30m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=eventtune_web"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsDevelopment reports whether the service runs with development defaults
// (pretty logs, debug echo banner).
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate rejects settings that envconfig cannot check on its own.
func (c *Config) Validate() error {
	switch c.Session.Store {
	case StoreMemory, StoreRedis, StoreMongo:
	default:
		return fmt.Errorf("SESSION_STORE must be one of memory, redis, mongo; got %q", c.Session.Store)
	}
	if c.Session.TTL < 0 {
		return fmt.Errorf("SESSION_TTL must not be negative")
	}
	if c.Backend.URL == "" {
		return fmt.Errorf("BACKEND_URL is required")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith is Load with an explicit lookuper and error return.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
