package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"POSTGRES_DSN", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME",
		"DB_AUTO_MIGRATE", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CATEGORY_CACHE_TTL",
		"CATALOG_OPERATIONS", "CATALOG_OPERATION_TIMEOUT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_DSN", "postgres://localhost/catalog")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 5, cfg.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
	assert.True(t, cfg.AutoMigrate)
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, DefaultOperations, cfg.Operations)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_DSN", "postgres://localhost/catalog")
	t.Setenv("DB_MAX_OPEN_CONNS", "10")
	t.Setenv("DB_MAX_IDLE_CONNS", "2")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CATEGORY_CACHE_TTL", "1m")
	t.Setenv("CATALOG_OPERATIONS", " categories-save , ,categories-count")
	t.Setenv("CATALOG_OPERATION_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxOpenConns)
	assert.Equal(t, 2, cfg.MaxIdleConns)
	assert.False(t, cfg.AutoMigrate)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, time.Minute, cfg.CategoryCacheTTL)
	assert.Equal(t, []string{"categories-save", "categories-count"}, cfg.Operations)
	assert.Equal(t, 5*time.Second, cfg.OperationTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "missing dsn", env: map[string]string{}, want: "POSTGRES_DSN is required"},
		{name: "bad int", env: map[string]string{"DB_MAX_OPEN_CONNS": "many"}, want: "invalid DB_MAX_OPEN_CONNS"},
		{name: "bad bool", env: map[string]string{"DB_AUTO_MIGRATE": "sometimes"}, want: "invalid DB_AUTO_MIGRATE"},
		{name: "bad duration", env: map[string]string{"CATEGORY_CACHE_TTL": "10"}, want: "invalid CATEGORY_CACHE_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.name != "missing dsn" {
				t.Setenv("POSTGRES_DSN", "postgres://localhost/catalog")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			PostgresDSN:      "postgres://localhost/catalog",
			MaxOpenConns:     25,
			MaxIdleConns:     5,
			CategoryCacheTTL: time.Minute,
			Operations:       DefaultOperations,
			OperationTimeout: time.Second,
			LogLevel:         "info",
		}
	}

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty dsn", func(c *Config) { c.PostgresDSN = "" }},
		{"no open conns", func(c *Config) { c.MaxOpenConns = 0 }},
		{"idle above open", func(c *Config) { c.MaxIdleConns = 30 }},
		{"redis db out of range", func(c *Config) { c.RedisDB = 16 }},
		{"tiny cache ttl", func(c *Config) { c.RedisAddr = "localhost:6379"; c.CategoryCacheTTL = time.Millisecond }},
		{"no operations", func(c *Config) { c.Operations = nil }},
		{"zero timeout", func(c *Config) { c.OperationTimeout = 0 }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
