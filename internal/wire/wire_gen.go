// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/tophbot/toph/internal/app"
	"github.com/tophbot/toph/internal/commands"
	"github.com/tophbot/toph/internal/config"
	"github.com/tophbot/toph/internal/db"
	"github.com/tophbot/toph/internal/events"
	"github.com/tophbot/toph/internal/jobs"
	"github.com/tophbot/toph/internal/llm"
	"github.com/tophbot/toph/internal/logger"
	"github.com/tophbot/toph/internal/prefs"
	"github.com/tophbot/toph/internal/server"
	"github.com/tophbot/toph/internal/storage"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerConfig := provideLoggerConfig(cfg)
	logWriter := provideLogWriter()
	slogLogger := logger.NewLogger(loggerConfig, logWriter)

	dbConfig := provideDBConfig(cfg)
	dbConn, dbCleanup, err := db.NewDatabase(dbConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := storage.NewStore(dbConn.DB)
	blockStore := provideBlockStore(store)

	generatorLLM, err := provideGeneratorLLM(ctx, cfg, slogLogger)
	if err != nil {
		dbCleanup()
		return nil, nil, fmt.Errorf("failed to create generator LLM: %w", err)
	}
	completer := llm.NewCompleter(generatorLLM, slogLogger)

	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		dbCleanup()
		return nil, nil, fmt.Errorf("failed to create prompt manager: %w", err)
	}
	builder := llm.NewBuilder(promptMgr)

	extractor := prefs.NewExtractor(slogLogger)
	manager := prefs.NewManager(blockStore, extractor, slogLogger)
	router := commands.NewRouter(manager, slogLogger)

	clientFactory := provideClientFactory()
	reviewJob := jobs.NewReviewJob(cfg, store, manager, builder, completer, clientFactory, slogLogger)
	commentJob := jobs.NewCommentJob(cfg, router, manager, builder, completer, clientFactory, slogLogger)

	dispatcher := events.NewDispatcher(reviewJob, commentJob, slogLogger)
	srv := server.NewServer(ctx, cfg, dispatcher, slogLogger)

	application := app.NewApp(ctx, cfg, dbConn, srv, slogLogger)

	cleanup := func() {
		dbCleanup()
	}
	return application, cleanup, nil
}
