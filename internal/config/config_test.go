package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("FLASH_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "5000", cfg.AppPort)
	assert.Equal(t, 10*time.Minute, cfg.FlashTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("FLASH_STORE", "redis")
	t.Setenv("FLASH_TTL", "90s")
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "redis", cfg.FlashStore)
	assert.Equal(t, 90*time.Second, cfg.FlashTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.Debug)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "fyyur"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=fyyur sslmode=disable TimeZone=UTC", cfg.DSN())
}
