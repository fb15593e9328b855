package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerkey/power-app/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.StoragePostgres, cfg.App.StorageDriver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.False(t, cfg.DB.ForceIPv4)
	assert.Equal(t, time.Minute, cfg.Redis.ItemCacheTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Selling.AllowExpiredQuotation)
	assert.Empty(t, cfg.Bootstrap.Company)
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("ITEM_CACHE_TTL_SECONDS", "5")
	t.Setenv("SELLING_ALLOW_EXPIRED_QUOTATION", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DB_TRACE_SQL", "true")
	t.Setenv("BOOTSTRAP_COMPANY", " PowerKey ")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, config.StorageMemory, cfg.App.StorageDriver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Second, cfg.Redis.ItemCacheTTL)
	assert.True(t, cfg.Selling.AllowExpiredQuotation)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.DB.TraceSQL)
	assert.Equal(t, "PowerKey", cfg.Bootstrap.Company)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := config.Load()

	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "power_app", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/power_app?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
