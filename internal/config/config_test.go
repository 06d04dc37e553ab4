package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "yt-summarizer", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:5050", cfg.HTTPAddr())
	assert.Equal(t, "en", cfg.Transcript.Lang)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Model)
	assert.Equal(t, "summary.event.persist", cfg.RabbitMQ.SummaryEventQueue)
	assert.Equal(t, 10, cfg.Auth.OTPExpireMinute)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("RAPIDAPI_KEY", "rapid-key")
	t.Setenv("MYSQL_DB", "other_db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
	assert.Equal(t, "rapid-key", cfg.Transcript.RapidAPIKey)
	assert.Contains(t, cfg.MySQLDSN(), "/other_db?")
}

func TestLoad_InvalidEnvIntFallsBack(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")
	t.Setenv("APP_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5050, cfg.App.Port)
}
