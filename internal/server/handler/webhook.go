// Package handler provides the HTTP handlers for incoming GitHub webhooks.
package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/tophbot/toph/internal/config"
	"github.com/tophbot/toph/internal/events"
)

// maxPayloadBytes caps webhook bodies; GitHub documents a 25 MB limit.
const maxPayloadBytes = 25 << 20

// WebhookHandler processes incoming webhooks from GitHub. Events are handled
// synchronously within the request, and application failures never surface as
// HTTP errors: GitHub only ever sees 403 for a bad signature, 400 for a
// malformed body, or 200.
type WebhookHandler struct {
	cfg        *config.Config
	dispatcher *events.Dispatcher
	logger     *slog.Logger
}

// NewWebhookHandler creates a webhook handler over the event dispatcher.
func NewWebhookHandler(cfg *config.Config, dispatcher *events.Dispatcher, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		cfg:        cfg,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle processes one GitHub webhook delivery.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Error("could not read webhook body", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "could not read request body"})
		return
	}

	if !VerifySignature(h.cfg.GitHubWebhookSecret, body, r.Header.Get("X-Hub-Signature-256")) {
		h.logger.Error("webhook signature verification failed",
			"delivery_id", r.Header.Get("X-GitHub-Delivery"))
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "invalid signature"})
		return
	}

	if !json.Valid(body) {
		h.logger.Error("webhook body is not valid JSON",
			"delivery_id", r.Header.Get("X-GitHub-Delivery"))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed payload"})
		return
	}

	eventType := events.ParseEventType(r.Header.Get("X-GitHub-Event"))
	if err := h.dispatcher.Dispatch(r.Context(), eventType, body); err != nil {
		// Processing failures are logged and acknowledged; a 5xx would only
		// make GitHub redeliver an event we cannot handle.
		h.logger.Error("event processing failed",
			"error", err,
			"event", eventType.String(),
			"delivery_id", r.Header.Get("X-GitHub-Delivery"),
		)
	}

	if eventType == events.EventPing {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Pong!"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
