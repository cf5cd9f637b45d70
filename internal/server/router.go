package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tophbot/toph/internal/config"
	"github.com/tophbot/toph/internal/events"
	"github.com/tophbot/toph/internal/server/handler"
)

// NewRouter creates and configures the HTTP router with middleware and routes.
func NewRouter(cfg *config.Config, dispatcher *events.Dispatcher, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	webhookHandler := handler.NewWebhookHandler(cfg, dispatcher, logger)
	r.Post("/webhook/github", webhookHandler.Handle)

	return r
}
