package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("GARMIN_RATE_LIMIT", "")
	t.Setenv("GARMIN_API_TOKEN", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "golf.db", cfg.DBPath)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2.0, cfg.GarminRateLimit)
	assert.Empty(t, cfg.GarminAPIToken)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://golf.example.com,")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:5173", "https://golf.example.com"}, cfg.CORSOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "bad rate limit", env: map[string]string{"GARMIN_RATE_LIMIT": "fast"}},
		{name: "zero rate limit", env: map[string]string{"GARMIN_RATE_LIMIT": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(zerolog.Nop())
			require.Error(t, err)
		})
	}
}
