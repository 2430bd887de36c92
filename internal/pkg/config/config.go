package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session store backends.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
	SessionBackendMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// BackendConfig points at the FitFlow backend API.
type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:5000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=15s"`
}

type SessionConfig struct {
	// Backend is one of memory, redis or mongo.
	Backend string `env:"SESSION_BACKEND, default=memory"`
	// Key signs the session cookie. A random key is generated when empty,
	// which logs every browser out on restart.
	Key    string        `env:"SESSION_KEY"`
	MaxAge int           `env:"SESSION_MAX_AGE, default=604800"`
	TTL    time.Duration `env:"SESSION_TTL,     default=168h"`
	// CSRFKey must be 32 bytes when set.
	CSRFKey        string        `env:"CSRF_KEY"`
	CookieSecure   bool          `env:"COOKIE_SECURE,    default=false"`
	SubmitGuardTTL time.Duration `env:"SUBMIT_GUARD_TTL, default=30s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=fitflow_web"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE"`
}

// IsDevelopment reports whether the process runs with ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks the values envconfig cannot express in tags.
func (c *Config) Validate() error {
	switch c.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis, SessionBackendMongo:
	default:
		return fmt.Errorf("SESSION_BACKEND must be memory, redis or mongo, got %q", c.Session.Backend)
	}
	if c.Session.CSRFKey != "" && len(c.Session.CSRFKey) != 32 {
		return errors.New("CSRF_KEY must be exactly 32 bytes")
	}
	if c.Backend.URL == "" {
		return errors.New("BACKEND_URL is required")
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

// LoadWith reads configuration through l and validates it.
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
