package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadWithEnv(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("JWT_SECRET", "test-secret")
	for key, value := range env {
		t.Setenv(key, value)
	}
	return LoadConfig()
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadWithEnv(t, nil)
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, "Europe/Moscow", cfg.App.Location().String())
	assert.False(t, cfg.App.AutoMigrate)
	assert.Empty(t, cfg.App.AllowedOrigins)
	assert.Equal(t, "clinic_session", cfg.Session.CookieName)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
}

func TestLoadConfig_RejectsUnknownTimezone(t *testing.T) {
	_, err := loadWithEnv(t, map[string]string{"APP_TIMEZONE": "Mars/Olympus"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_TIMEZONE")
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	_, err := loadWithEnv(t, map[string]string{"JWT_SECRET": ""})

	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestLoadConfig_TokenLivesAsLongAsSession(t *testing.T) {
	cfg, err := loadWithEnv(t, map[string]string{"SESSION_TTL": "2h"})
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, cfg.Session.TTL, cfg.JWT.AccessExpiry)
}

func TestLoadConfig_AllowedOrigins(t *testing.T) {
	cfg, err := loadWithEnv(t, map[string]string{
		"CORS_ALLOWED_ORIGINS": "https://clinic.example, ,https://admin.clinic.example",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://clinic.example", "https://admin.clinic.example"}, cfg.App.AllowedOrigins)
}
