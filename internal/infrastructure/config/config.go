package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port        string `env:"PORT,         default=8080"`
	Env         string `env:"ENV,          default=development"`
	LogLevel    string `env:"LOG_LEVEL,    default=info"`
	LogPretty   bool   `env:"LOG_PRETTY,   default=false"`
	StoreDriver string `env:"STORE_DRIVER, default=mongo"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Auth   AuthConfig
	Oracle OracleConfig
	HTTP   HTTPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=servicedesk"`
}

// RedisConfig enables the stats cache when Addr is set.
type RedisConfig struct {
	Addr          string        `env:"REDIS_ADDR"`
	Password      string        `env:"REDIS_PASSWORD"`
	DB            int           `env:"REDIS_DB,        default=0"`
	StatsCacheTTL time.Duration `env:"STATS_CACHE_TTL, default=10s"`
}

type AuthConfig struct {
	AdminUser    string        `env:"ADMIN_USER"`
	AdminPass    string        `env:"ADMIN_PASS"`
	CookieSecure bool          `env:"COOKIE_SECURE,         default=true"`
	SessionTTL   time.Duration `env:"SESSION_TTL,           default=168h"`
	ReapInterval time.Duration `env:"SESSION_REAP_INTERVAL, default=0s"`
}

type OracleConfig struct {
	URL     string        `env:"ORACLE_URL,     default=https://demobackend.emergentagent.com/auth/v1/env/oauth/session-data"`
	Timeout time.Duration `env:"ORACLE_TIMEOUT, default=10s"`
}

type HTTPConfig struct {
	CORSOrigins     []string      `env:"CORS_ORIGINS"`
	PublicRateLimit float64       `env:"PUBLIC_RATE_LIMIT, default=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,  default=15s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

// LocalLoginEnabled reports whether an operator credential is configured.
func (c *Config) LocalLoginEnabled() bool {
	return c.Auth.AdminUser != "" && c.Auth.AdminPass != ""
}
