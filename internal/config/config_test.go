package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadConfig_RequiresAppID(t *testing.T) {
	resetViper(t)

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITHUB_APP_ID")
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetViper(t)
	t.Setenv("GITHUB_APP_ID", "12345")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, int64(12345), cfg.GitHubAppID)
	assert.Equal(t, "ollama", cfg.LLMProvider)
	assert.Equal(t, 30_000, cfg.ReviewMaxPatchChars)
	assert.Equal(t, 15_000, cfg.CommentMaxPatchChars)
	assert.Equal(t, 15, cfg.MaxChangedFiles)
	assert.False(t, cfg.RequireActivation)
	assert.Empty(t, cfg.GitHubWebhookSecret)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	resetViper(t)
	t.Setenv("GITHUB_APP_ID", "12345")
	t.Setenv("GITHUB_WEBHOOK_SECRET", "s3cret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REVIEW_MAX_PATCH_CHARS", "5000")
	t.Setenv("REQUIRE_ACTIVATION", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "s3cret", cfg.GitHubWebhookSecret)
	assert.Equal(t, 5000, cfg.ReviewMaxPatchChars)
	assert.True(t, cfg.RequireActivation)
}

func TestLoadConfig_GeminiModelFallback(t *testing.T) {
	resetViper(t)
	t.Setenv("GITHUB_APP_ID", "12345")
	t.Setenv("LLM_PROVIDER", "gemini")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeneratorModelName)

	resetViper(t)
	t.Setenv("GITHUB_APP_ID", "12345")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_GENERATOR_MODEL_NAME", "gemini-2.5-pro")

	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", cfg.GeneratorModelName)
}
