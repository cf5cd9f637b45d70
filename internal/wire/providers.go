package wire

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/google/wire"
	"github.com/sevigo/goframe/llms"
	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/tophbot/toph/internal/app"
	"github.com/tophbot/toph/internal/commands"
	"github.com/tophbot/toph/internal/config"
	"github.com/tophbot/toph/internal/core"
	"github.com/tophbot/toph/internal/db"
	"github.com/tophbot/toph/internal/events"
	"github.com/tophbot/toph/internal/github"
	"github.com/tophbot/toph/internal/jobs"
	"github.com/tophbot/toph/internal/llm"
	"github.com/tophbot/toph/internal/logger"
	"github.com/tophbot/toph/internal/prefs"
	"github.com/tophbot/toph/internal/server"
	"github.com/tophbot/toph/internal/storage"
)

var AppSet = wire.NewSet(
	app.NewApp,
	server.NewServer,
	logger.NewLogger,
	config.LoadConfig,
	db.NewDatabase,
	storage.NewStore,
	events.NewDispatcher,
	jobs.NewReviewJob,
	jobs.NewCommentJob,
	commands.NewRouter,
	prefs.NewManager,
	prefs.NewExtractor,
	llm.NewPromptManager,
	llm.NewBuilder,
	llm.NewCompleter,
	provideGeneratorLLM,
	provideClientFactory,
	provideBlockStore,
	provideLoggerConfig,
	provideLogWriter,
	provideDBConfig,
)

// provideGeneratorLLM creates the model client for the configured provider.
// A gemini provider without an API key yields a nil model: the server still
// runs, command handling works, and review generation is skipped.
func provideGeneratorLLM(ctx context.Context, cfg *config.Config, logger *slog.Logger) (llms.Model, error) {
	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			logger.Warn("GEMINI_API_KEY is not set, review generation is disabled")
			return nil, nil
		}
		return gemini.New(ctx,
			gemini.WithModel(cfg.GeneratorModelName),
			gemini.WithAPIKey(cfg.GeminiAPIKey),
		)
	case "ollama":
		return ollama.New(
			ollama.WithServerURL(cfg.OllamaHost),
			ollama.WithHTTPClient(newOllamaHTTPClient()),
			ollama.WithModel(cfg.GeneratorModelName),
			ollama.WithLogger(logger),
		)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}

func provideClientFactory() github.ClientFactory {
	return github.CreateInstallationClient
}

func provideBlockStore(store storage.Store) core.BlockStore {
	return store
}

// newOllamaHTTPClient creates an HTTP client with generous timeouts; local
// model inference can take minutes.
func newOllamaHTTPClient() *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableKeepAlives:   false,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   5 * time.Minute,
	}
}

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter() io.Writer {
	return os.Stdout
}

func provideDBConfig(cfg *config.Config) *config.DBConfig {
	return cfg.Database
}
