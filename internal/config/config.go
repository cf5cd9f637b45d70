// Package config loads the application's configuration from environment
// variables and an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/tophbot/toph/internal/logger"
)

// DBConfig holds the Postgres connection settings for the preference store.
type DBConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Config holds the application's configuration values.
type Config struct {
	ServerPort string
	Logging    logger.Config

	GitHubAppID          int64
	GitHubWebhookSecret  string
	GitHubPrivateKeyPath string

	LLMProvider        string
	OllamaHost         string
	GeneratorModelName string
	GeminiAPIKey       string

	ReviewMaxPatchChars  int
	CommentMaxPatchChars int
	MaxChangedFiles      int
	RequireActivation    bool

	Database *DBConfig
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates required fields. It uses the Viper
// library to handle configuration loading and precedence.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LOG_OUTPUT", "stdout")
	viper.SetDefault("GITHUB_PRIVATE_KEY_PATH", "keys/toph-bot.private-key.pem")
	viper.SetDefault("LLM_PROVIDER", "ollama")
	viper.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	viper.SetDefault("GENERATOR_MODEL_NAME", "gemma3:latest")
	viper.SetDefault("REVIEW_MAX_PATCH_CHARS", 30_000)
	viper.SetDefault("COMMENT_MAX_PATCH_CHARS", 15_000)
	viper.SetDefault("MAX_CHANGED_FILES", 15)
	viper.SetDefault("REQUIRE_ACTIVATION", false)
	viper.SetDefault("PGHOST", "localhost")
	viper.SetDefault("PGPORT", 5432)
	viper.SetDefault("PGUSER", "toph")
	viper.SetDefault("PGDATABASE", "toph")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", "error", err)
		}
	}
	viper.AutomaticEnv()

	if viper.GetInt64("GITHUB_APP_ID") == 0 {
		return nil, fmt.Errorf("GITHUB_APP_ID must be set")
	}

	// An empty webhook secret disables signature verification entirely. That
	// is acceptable for local development only; every production deployment
	// must set GITHUB_WEBHOOK_SECRET.
	if viper.GetString("GITHUB_WEBHOOK_SECRET") == "" {
		slog.Warn("GITHUB_WEBHOOK_SECRET is not set, webhook signature verification is DISABLED")
	}

	// Special handling for the Gemini generator model name.
	generatorModel := viper.GetString("GENERATOR_MODEL_NAME")
	if viper.GetString("LLM_PROVIDER") == "gemini" {
		geminiModel := viper.GetString("GEMINI_GENERATOR_MODEL_NAME")
		if geminiModel != "" {
			generatorModel = geminiModel
		} else {
			generatorModel = "gemini-2.5-flash"
		}
	}

	return &Config{
		ServerPort: viper.GetString("SERVER_PORT"),
		Logging: logger.Config{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
			Output: viper.GetString("LOG_OUTPUT"),
		},
		GitHubAppID:          viper.GetInt64("GITHUB_APP_ID"),
		GitHubWebhookSecret:  viper.GetString("GITHUB_WEBHOOK_SECRET"),
		GitHubPrivateKeyPath: viper.GetString("GITHUB_PRIVATE_KEY_PATH"),
		LLMProvider:          viper.GetString("LLM_PROVIDER"),
		OllamaHost:           viper.GetString("OLLAMA_HOST"),
		GeneratorModelName:   generatorModel,
		GeminiAPIKey:         viper.GetString("GEMINI_API_KEY"),
		ReviewMaxPatchChars:  viper.GetInt("REVIEW_MAX_PATCH_CHARS"),
		CommentMaxPatchChars: viper.GetInt("COMMENT_MAX_PATCH_CHARS"),
		MaxChangedFiles:      viper.GetInt("MAX_CHANGED_FILES"),
		RequireActivation:    viper.GetBool("REQUIRE_ACTIVATION"),
		Database: &DBConfig{
			Host:            viper.GetString("PGHOST"),
			Port:            viper.GetInt("PGPORT"),
			Username:        viper.GetString("PGUSER"),
			Password:        viper.GetString("PGPASSWORD"),
			Database:        viper.GetString("PGDATABASE"),
			ConnMaxLifetime: 30 * time.Minute,
			ConnMaxIdleTime: 5 * time.Minute,
		},
	}, nil
}
