package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SECURITY_CSRF_FIELD", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, time.Second, cfg.App.SlowRequestThreshold())
	assert.Equal(t, "_token", cfg.Security.CSRFField)
	assert.True(t, cfg.Security.InspectorEnabled)
	assert.Equal(t, "security:events", cfg.Security.EventStream)
	assert.False(t, cfg.Mail.Enabled())
	assert.Equal(t, 256, cfg.Worker.EventQueueSize)
	assert.Equal(t, 2, cfg.Worker.EventWorkers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SECURITY_CSRF_CHECK_ENABLED", "false")
	t.Setenv("SLOW_REQUEST_THRESHOLD_MS", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.True(t, cfg.Mail.Enabled())
	assert.Equal(t, "smtp.example.com:2525", cfg.Mail.SMTPAddr())
	assert.False(t, cfg.Security.CSRFCheckEnabled)
	assert.Equal(t, 250*time.Millisecond, cfg.App.SlowRequestThreshold())
}

func TestLoad_InvalidNumbers(t *testing.T) {
	t.Setenv("REDIS_DB", "one")
	_, err := Load()
	assert.ErrorContains(t, err, "REDIS_DB")
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "AUTH_JWT_SECRET")
}

func TestGetEnvAsBool_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_FLAG", "maybe")
	assert.True(t, getEnvAsBool("SOME_FLAG", true))
}
