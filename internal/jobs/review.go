// Package jobs implements the pull request processing pipelines.
package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tophbot/toph/internal/config"
	"github.com/tophbot/toph/internal/core"
	"github.com/tophbot/toph/internal/github"
	"github.com/tophbot/toph/internal/llm"
	"github.com/tophbot/toph/internal/prefs"
	"github.com/tophbot/toph/internal/storage"
)

// ReviewJob performs a full review of a pull request and posts the result as
// a PR comment.
type ReviewJob struct {
	cfg       *config.Config
	store     storage.Store
	manager   *prefs.Manager
	builder   *llm.Builder
	completer core.Completer
	newClient github.ClientFactory
	logger    *slog.Logger
}

// NewReviewJob creates a ReviewJob wired to the given collaborators.
func NewReviewJob(
	cfg *config.Config,
	store storage.Store,
	manager *prefs.Manager,
	builder *llm.Builder,
	completer core.Completer,
	newClient github.ClientFactory,
	logger *slog.Logger,
) core.Job {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if completer == nil {
		panic("completer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ReviewJob{
		cfg:       cfg,
		store:     store,
		manager:   manager,
		builder:   builder,
		completer: completer,
		newClient: newClient,
		logger:    logger,
	}
}

// Run executes the review pipeline for one pull request event.
func (j *ReviewJob) Run(ctx context.Context, event *core.GitHubEvent) error {
	if err := validateEvent(event); err != nil {
		j.logger.Error("invalid review event", "error", err)
		return fmt.Errorf("input validation failed: %w", err)
	}

	j.logger.Info("starting review", "repo", event.RepoFullName, "pr", event.PRNumber)

	if j.cfg.RequireActivation {
		activated, err := j.store.IsRepoActivated(ctx, event.RepoFullName)
		if err != nil {
			return fmt.Errorf("activation check failed: %w", err)
		}
		if !activated {
			j.logger.Info("repository not activated, skipping review", "repo", event.RepoFullName)
			return nil
		}
	}

	ghClient, err := j.newClient(ctx, j.cfg, event.InstallationID, j.logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	files, err := ghClient.ListChangedFiles(ctx, event.RepoOwner, event.RepoName, event.PRNumber, j.cfg.MaxChangedFiles)
	if err != nil {
		return fmt.Errorf("failed to list changed files: %w", err)
	}
	if len(files) == 0 {
		j.logger.Info("pull request has no changed files, skipping review",
			"repo", event.RepoFullName, "pr", event.PRNumber)
		return nil
	}

	prompt, err := j.builder.ReviewPrompt(promptMeta(event), files, j.cfg.ReviewMaxPatchChars)
	if err != nil {
		return fmt.Errorf("failed to build review prompt: %w", err)
	}

	systemPrompt := j.manager.Context(ctx, event.PRAuthor, event.RepoFullName)
	review, err := j.completer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return fmt.Errorf("failed to generate review: %w", err)
	}
	if review == "" {
		j.logger.Warn("model returned an empty review, nothing to post",
			"repo", event.RepoFullName, "pr", event.PRNumber)
		return nil
	}

	if err := ghClient.CreateComment(ctx, event.RepoOwner, event.RepoName, event.PRNumber, review); err != nil {
		return fmt.Errorf("failed to post review comment: %w", err)
	}

	j.logger.Info("review posted", "repo", event.RepoFullName, "pr", event.PRNumber)
	return nil
}

// validateEvent ensures an event carries everything the pipelines need.
func validateEvent(event *core.GitHubEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.RepoOwner == "" {
		return fmt.Errorf("repository owner cannot be empty")
	}
	if event.RepoName == "" {
		return fmt.Errorf("repository name cannot be empty")
	}
	if event.PRNumber <= 0 {
		return fmt.Errorf("pull request number must be positive, got: %d", event.PRNumber)
	}
	if event.InstallationID <= 0 {
		return fmt.Errorf("installation ID must be positive, got: %d", event.InstallationID)
	}
	return nil
}

func promptMeta(event *core.GitHubEvent) llm.PromptMeta {
	return llm.PromptMeta{
		RepoFullName: event.RepoFullName,
		PRTitle:      event.PRTitle,
		PRAuthor:     event.PRAuthor,
		HeadRef:      event.HeadRef,
		BaseRef:      event.BaseRef,
	}
}
