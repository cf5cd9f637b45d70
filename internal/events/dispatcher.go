// Package events maps webhook event types onto handlers. Event processing is
// synchronous within the request: this system deliberately has no job queue.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v73/github"

	"github.com/tophbot/toph/internal/core"
)

// EventType identifies the webhook event types the bot knows about. Using a
// closed enum with an exhaustive switch makes adding an event type a
// compile-time decision instead of a silent map miss.
type EventType int

const (
	EventUnknown EventType = iota
	EventPullRequest
	EventIssueComment
	EventPush
	EventInstallation
	EventPing
)

// ParseEventType maps the X-GitHub-Event header value to an EventType.
func ParseEventType(name string) EventType {
	switch name {
	case "pull_request":
		return EventPullRequest
	case "issue_comment":
		return EventIssueComment
	case "push":
		return EventPush
	case "installation":
		return EventInstallation
	case "ping":
		return EventPing
	default:
		return EventUnknown
	}
}

func (t EventType) String() string {
	switch t {
	case EventPullRequest:
		return "pull_request"
	case EventIssueComment:
		return "issue_comment"
	case EventPush:
		return "push"
	case EventInstallation:
		return "installation"
	case EventPing:
		return "ping"
	default:
		return "unknown"
	}
}

// Dispatcher routes decoded webhook deliveries to the review and comment
// pipelines. Unmapped event types and uninteresting actions are logged
// no-ops, never errors.
type Dispatcher struct {
	reviewJob  core.Job
	commentJob core.Job
	logger     *slog.Logger
}

// NewDispatcher creates a dispatcher over the two processing pipelines.
func NewDispatcher(reviewJob, commentJob core.Job, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{reviewJob: reviewJob, commentJob: commentJob, logger: logger}
}

// Dispatch handles one webhook delivery. A returned error means this event's
// processing failed; the webhook response is unaffected, since GitHub must
// never see a 5xx for recoverable application issues.
func (d *Dispatcher) Dispatch(ctx context.Context, eventType EventType, payload []byte) error {
	switch eventType {
	case EventPullRequest:
		return d.handlePullRequest(ctx, payload)
	case EventIssueComment:
		return d.handleIssueComment(ctx, payload)
	case EventPush:
		return d.handlePush(payload)
	case EventInstallation:
		return d.handleInstallation(payload)
	case EventPing:
		d.logger.Info("received ping event")
		return nil
	case EventUnknown:
		d.logger.Debug("ignoring unhandled webhook event type")
		return nil
	default:
		return nil
	}
}

func (d *Dispatcher) handlePullRequest(ctx context.Context, payload []byte) error {
	var raw github.PullRequestEvent
	if err := json.Unmarshal(payload, &raw); err != nil {
		return fmt.Errorf("could not decode pull_request event: %w", err)
	}

	switch raw.GetAction() {
	case "opened", "synchronize", "reopened":
	default:
		d.logger.Info("ignoring pull_request action", "action", raw.GetAction())
		return nil
	}

	event, err := core.EventFromPullRequest(&raw)
	if err != nil {
		d.logger.Debug("ignoring pull_request event", "reason", err.Error())
		return nil
	}

	d.logger.Info("pull request event received",
		"action", event.Action,
		"repo", event.RepoFullName,
		"pr", event.PRNumber,
		"author", event.PRAuthor,
		"branches", event.HeadRef+" -> "+event.BaseRef,
	)
	return d.reviewJob.Run(ctx, event)
}

func (d *Dispatcher) handleIssueComment(ctx context.Context, payload []byte) error {
	var raw github.IssueCommentEvent
	if err := json.Unmarshal(payload, &raw); err != nil {
		return fmt.Errorf("could not decode issue_comment event: %w", err)
	}

	if raw.GetAction() != "created" {
		d.logger.Debug("ignoring issue_comment action", "action", raw.GetAction())
		return nil
	}

	event, err := core.EventFromIssueComment(&raw)
	if err != nil {
		d.logger.Debug("ignoring issue comment", "reason", err.Error(), "repo", raw.GetRepo().GetFullName())
		return nil
	}
	return d.commentJob.Run(ctx, event)
}

// handlePush logs the delivery and performs no further side effects.
func (d *Dispatcher) handlePush(payload []byte) error {
	var raw github.PushEvent
	if err := json.Unmarshal(payload, &raw); err != nil {
		return fmt.Errorf("could not decode push event: %w", err)
	}

	d.logger.Info("push event received",
		"repo", raw.GetRepo().GetFullName(),
		"ref", raw.GetRef(),
		"head", raw.GetHeadCommit().GetID(),
	)
	return nil
}

// handleInstallation logs a distinct outcome per lifecycle action and
// performs no further side effects.
func (d *Dispatcher) handleInstallation(payload []byte) error {
	var raw github.InstallationEvent
	if err := json.Unmarshal(payload, &raw); err != nil {
		return fmt.Errorf("could not decode installation event: %w", err)
	}

	account := raw.GetInstallation().GetAccount().GetLogin()
	switch raw.GetAction() {
	case "created":
		d.logger.Info("app installed", "account", account, "installation_id", raw.GetInstallation().GetID())
	case "deleted":
		d.logger.Info("app uninstalled", "account", account)
	case "suspend":
		d.logger.Info("app installation suspended", "account", account)
	case "unsuspend":
		d.logger.Info("app installation unsuspended", "account", account)
	default:
		d.logger.Debug("ignoring installation action", "action", raw.GetAction())
	}
	return nil
}
