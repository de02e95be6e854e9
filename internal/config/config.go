package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultOperations runs when CATALOG_OPERATIONS is unset.
var DefaultOperations = []string{"job-postings-by-statuses"}

type Config struct {
	// Database
	PostgresDSN     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool

	// Cache; an empty RedisAddr disables it
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	CategoryCacheTTL time.Duration

	// Catalog run
	Operations       []string
	OperationTimeout time.Duration

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		MaxOpenConns:     25,
		MaxIdleConns:     5,
		ConnMaxLifetime:  5 * time.Minute,
		AutoMigrate:      true,
		CategoryCacheTTL: 10 * time.Minute,
		Operations:       DefaultOperations,
		OperationTimeout: 30 * time.Second,
		LogLevel:         "info",
	}

	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	var err error
	if cfg.MaxOpenConns, err = intEnv("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns); err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns, err = intEnv("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns); err != nil {
		return nil, err
	}
	if cfg.ConnMaxLifetime, err = durationEnv("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime); err != nil {
		return nil, err
	}

	if migrate := os.Getenv("DB_AUTO_MIGRATE"); migrate != "" {
		b, err := strconv.ParseBool(migrate)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
		}
		cfg.AutoMigrate = b
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if cfg.RedisDB, err = intEnv("REDIS_DB", cfg.RedisDB); err != nil {
		return nil, err
	}
	if cfg.CategoryCacheTTL, err = durationEnv("CATEGORY_CACHE_TTL", cfg.CategoryCacheTTL); err != nil {
		return nil, err
	}

	if ops := os.Getenv("CATALOG_OPERATIONS"); ops != "" {
		cfg.Operations = splitList(ops)
	}
	if cfg.OperationTimeout, err = durationEnv("CATALOG_OPERATION_TIMEOUT", cfg.OperationTimeout); err != nil {
		return nil, err
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = strings.ToLower(logLevel)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is empty")
	}

	if c.MaxOpenConns < 1 {
		return fmt.Errorf("max open conns must be positive: %d", c.MaxOpenConns)
	}

	if c.MaxIdleConns < 0 || c.MaxIdleConns > c.MaxOpenConns {
		return fmt.Errorf("max idle conns must be between 0 and %d", c.MaxOpenConns)
	}

	if c.RedisDB < 0 || c.RedisDB > 15 {
		return fmt.Errorf("redis db must be between 0 and 15")
	}

	if c.RedisAddr != "" && c.CategoryCacheTTL < time.Second {
		return fmt.Errorf("category cache TTL too small: %v", c.CategoryCacheTTL)
	}

	if len(c.Operations) == 0 {
		return fmt.Errorf("no catalog operations configured")
	}

	if c.OperationTimeout <= 0 {
		return fmt.Errorf("operation timeout must be positive: %v", c.OperationTimeout)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

// CacheEnabled reports whether a redis address was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
