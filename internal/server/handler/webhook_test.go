package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tophbot/toph/internal/config"
	"github.com/tophbot/toph/internal/core"
	"github.com/tophbot/toph/internal/events"
)

type stubJob struct {
	runs int
	err  error
}

func (j *stubJob) Run(context.Context, *core.GitHubEvent) error {
	j.runs++
	return j.err
}

func testHandler(secret string) (*WebhookHandler, *stubJob) {
	review := &stubJob{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := events.NewDispatcher(review, &stubJob{}, logger)
	cfg := &config.Config{GitHubWebhookSecret: secret}
	return NewWebhookHandler(cfg, dispatcher, logger), review
}

func webhookRequest(eventType string, body []byte, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/webhook/github", bytes.NewReader(body))
	req.Header.Set("X-GitHub-Event", eventType)
	req.Header.Set("X-GitHub-Delivery", "test-delivery")
	if signature != "" {
		req.Header.Set("X-Hub-Signature-256", signature)
	}
	return req
}

var openedPullRequestBody = []byte(`{
	"action": "opened",
	"pull_request": {
		"number": 42,
		"title": "Add frobnicator",
		"user": {"login": "alice"},
		"head": {"ref": "feature/frob"},
		"base": {"ref": "main"}
	},
	"repository": {
		"name": "widgets",
		"full_name": "acme/widgets",
		"owner": {"login": "acme"}
	},
	"installation": {"id": 99}
}`)

func TestHandle_BadSignatureRejected(t *testing.T) {
	h, review := testHandler("s3cret")

	rec := httptest.NewRecorder()
	h.Handle(rec, webhookRequest("pull_request", openedPullRequestBody, "sha256=bogus"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error": "invalid signature"}`, rec.Body.String())
	assert.Equal(t, 0, review.runs)
}

func TestHandle_MissingSignatureRejected(t *testing.T) {
	h, review := testHandler("s3cret")

	rec := httptest.NewRecorder()
	h.Handle(rec, webhookRequest("pull_request", openedPullRequestBody, ""))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, review.runs)
}

func TestHandle_MalformedBodyRejected(t *testing.T) {
	h, review := testHandler("s3cret")
	body := []byte(`{"action": "opened"`)

	rec := httptest.NewRecorder()
	h.Handle(rec, webhookRequest("pull_request", body, sign("s3cret", body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error": "malformed payload"}`, rec.Body.String())
	assert.Equal(t, 0, review.runs)
}

func TestHandle_SignatureCheckedBeforeBodyParsing(t *testing.T) {
	h, _ := testHandler("s3cret")
	body := []byte(`not even json`)

	rec := httptest.NewRecorder()
	h.Handle(rec, webhookRequest("pull_request", body, "sha256=bogus"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandle_PullRequestProcessedSynchronously(t *testing.T) {
	h, review := testHandler("s3cret")

	rec := httptest.NewRecorder()
	h.Handle(rec, webhookRequest("pull_request", openedPullRequestBody, sign("s3cret", openedPullRequestBody)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
	assert.Equal(t, 1, review.runs)
}

func TestHandle_PingAcknowledged(t *testing.T) {
	h, review := testHandler("s3cret")
	body := []byte(`{"zen": "Keep it logically awesome."}`)

	rec := httptest.NewRecorder()
	h.Handle(rec, webhookRequest("ping", body, sign("s3cret", body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "Pong!"}`, rec.Body.String())
	assert.Equal(t, 0, review.runs)
}

func TestHandle_UnknownEventAcknowledged(t *testing.T) {
	h, review := testHandler("s3cret")
	body := []byte(`{"action": "completed"}`)

	rec := httptest.NewRecorder()
	h.Handle(rec, webhookRequest("workflow_run", body, sign("s3cret", body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, review.runs)
}

func TestHandle_ProcessingFailureStillAcknowledged(t *testing.T) {
	h, review := testHandler("s3cret")
	review.err = errors.New("api unavailable")

	rec := httptest.NewRecorder()
	h.Handle(rec, webhookRequest("pull_request", openedPullRequestBody, sign("s3cret", openedPullRequestBody)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, review.runs)
}

func TestHandle_EmptySecretAcceptsUnsigned(t *testing.T) {
	h, review := testHandler("")

	rec := httptest.NewRecorder()
	h.Handle(rec, webhookRequest("pull_request", openedPullRequestBody, ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, review.runs)
}
