package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/portfolio-service/internal/config"
)

func TestLoggerConfig(t *testing.T) {
	app := config.AppConfig{Name: "portfolio-service", Version: "1.2.3", Env: "development"}

	cfg := loggerConfig(config.LoggerConfig{Level: "DEBUG"}, app)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level.Level())
	assert.True(t, cfg.Development)
	assert.Nil(t, cfg.Sampling)
	assert.Equal(t, "portfolio-service", cfg.InitialFields["service"])
	assert.Equal(t, "1.2.3", cfg.InitialFields["version"])

	app.Env = "production"
	cfg = loggerConfig(config.LoggerConfig{Level: "nonsense"}, app)
	assert.Equal(t, zapcore.InfoLevel, cfg.Level.Level())
	assert.False(t, cfg.Development)
	assert.NotNil(t, cfg.Sampling)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "warn"}, config.AppConfig{Name: "svc"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}
