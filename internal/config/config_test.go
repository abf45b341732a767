package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Empty(t, cfg.Observability.NewRelic.LicenseKey)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PERSONAPI_PRIMARY.ENV", "production")
	t.Setenv("PERSONAPI_SERVER.PORT", "9090")
	t.Setenv("PERSONAPI_SERVER.RATE_LIMIT", "0")
	t.Setenv("PERSONAPI_OBSERVABILITY.LOGGING.LEVEL", "warn")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Zero(t, cfg.Server.RateLimit)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	t.Setenv("PERSONAPI_OBSERVABILITY.LOGGING.LEVEL", "loud")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		env   string
		level string
		want  string
	}{
		{"production", "", "info"},
		{"development", "", "debug"},
		{"production", "error", "error"},
		{"staging", "warn", "warn"},
	}

	for _, tc := range tests {
		t.Run(tc.env+"/"+tc.level, func(t *testing.T) {
			cfg := &ObservabilityConfig{Environment: tc.env, Logging: LoggingConfig{Level: tc.level}}
			assert.Equal(t, tc.want, cfg.GetLogLevel())
		})
	}
}
