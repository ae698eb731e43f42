package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	os.Setenv("REDIS_URL", "redis://localhost:6379/0")
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("ADMIN_EMAIL", "admin@cargoconnect.com")
	os.Setenv("ADMIN_PASSWORD", "Admin@123")
	t.Cleanup(func() {
		os.Unsetenv("REDIS_URL")
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("ADMIN_EMAIL")
		os.Unsetenv("ADMIN_PASSWORD")
	})
}

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("PUBLIC_BASE_URL")
	os.Unsetenv("SMTP_PORT")
	os.Unsetenv("UPLOAD_DIR")

	setRequiredEnv(t)

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "http://localhost:8080", cfg.PublicBaseURL)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 10, cfg.SMTP.TimeoutSeconds)
	assert.Equal(t, "./uploads", cfg.Uploads.Dir)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	os.Setenv("APP_ENV", "production")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("PUBLIC_BASE_URL", "https://track.example.com")
	os.Setenv("SMTP_HOST", "smtp.example.com")
	os.Setenv("SMTP_USER", "mailer@example.com")
	defer func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("PUBLIC_BASE_URL")
		os.Unsetenv("SMTP_HOST")
		os.Unsetenv("SMTP_USER")
	}()

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "https://track.example.com", cfg.PublicBaseURL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, "admin@cargoconnect.com", cfg.Auth.AdminEmail)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, "mailer@example.com", cfg.SMTP.User)
}

// TestLoad_MissingRequired verifies that missing required values fail loading.
func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	os.Unsetenv("JWT_SECRET")

	_, err := Load(".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
