package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "yoursecretkeyhere_keepitasecret", cfg.JWT.SecretKey)
	assert.Equal(t, 1440, cfg.JWT.ExpireMinutes)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
	assert.Contains(t, cfg.DB.GetDSN(), "dbname=qmexai")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	t.Setenv("DB_CONN_MAX_LIFETIME", "15m")
	t.Setenv("DB_NAME", "shoptest")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 30, cfg.JWT.ExpireMinutes)
	assert.Equal(t, 15*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Contains(t, cfg.DB.GetDSN(), "dbname=shoptest")
}
