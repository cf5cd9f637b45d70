package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tophbot/toph/internal/commands"
	"github.com/tophbot/toph/internal/config"
	"github.com/tophbot/toph/internal/core"
	"github.com/tophbot/toph/internal/github"
	"github.com/tophbot/toph/internal/llm"
	"github.com/tophbot/toph/internal/prefs"
)

// CommentJob handles bot commands and conversational questions posted as PR
// comments.
type CommentJob struct {
	cfg       *config.Config
	router    *commands.Router
	manager   *prefs.Manager
	builder   *llm.Builder
	completer core.Completer
	newClient github.ClientFactory
	logger    *slog.Logger
}

// NewCommentJob creates a CommentJob wired to the given collaborators.
func NewCommentJob(
	cfg *config.Config,
	router *commands.Router,
	manager *prefs.Manager,
	builder *llm.Builder,
	completer core.Completer,
	newClient github.ClientFactory,
	logger *slog.Logger,
) core.Job {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if router == nil {
		panic("router cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &CommentJob{
		cfg:       cfg,
		router:    router,
		manager:   manager,
		builder:   builder,
		completer: completer,
		newClient: newClient,
		logger:    logger,
	}
}

// Run classifies the comment and either posts a command reply or answers the
// user's question against the PR diff.
func (j *CommentJob) Run(ctx context.Context, event *core.GitHubEvent) error {
	if err := validateEvent(event); err != nil {
		j.logger.Error("invalid comment event", "error", err)
		return fmt.Errorf("input validation failed: %w", err)
	}

	outcome, err := j.router.Route(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to route comment: %w", err)
	}

	if outcome.Reply != "" {
		ghClient, err := j.newClient(ctx, j.cfg, event.InstallationID, j.logger)
		if err != nil {
			return fmt.Errorf("failed to create GitHub client: %w", err)
		}
		if err := ghClient.CreateComment(ctx, event.RepoOwner, event.RepoName, event.PRNumber, outcome.Reply); err != nil {
			return fmt.Errorf("failed to post command reply: %w", err)
		}
		return nil
	}

	if !outcome.RunPipeline {
		return nil
	}
	return j.answerQuestion(ctx, event, outcome.Query)
}

func (j *CommentJob) answerQuestion(ctx context.Context, event *core.GitHubEvent, query string) error {
	j.logger.Info("answering comment question",
		"repo", event.RepoFullName, "pr", event.PRNumber, "commenter", event.Commenter)

	ghClient, err := j.newClient(ctx, j.cfg, event.InstallationID, j.logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	pr, err := ghClient.GetPullRequest(ctx, event.RepoOwner, event.RepoName, event.PRNumber)
	if err != nil {
		return fmt.Errorf("failed to get PR details: %w", err)
	}
	event.PRTitle = pr.GetTitle()
	event.PRAuthor = pr.GetUser().GetLogin()
	event.HeadRef = pr.GetHead().GetRef()
	event.BaseRef = pr.GetBase().GetRef()

	files, err := ghClient.ListChangedFiles(ctx, event.RepoOwner, event.RepoName, event.PRNumber, j.cfg.MaxChangedFiles)
	if err != nil {
		return fmt.Errorf("failed to list changed files: %w", err)
	}

	prompt, err := j.builder.CommentPrompt(promptMeta(event), files, query, j.cfg.CommentMaxPatchChars)
	if err != nil {
		return fmt.Errorf("failed to build comment prompt: %w", err)
	}

	systemPrompt := j.manager.Context(ctx, event.Commenter, event.RepoFullName)
	answer, err := j.completer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return fmt.Errorf("failed to generate answer: %w", err)
	}
	if answer == "" {
		j.logger.Warn("model returned an empty answer, nothing to post",
			"repo", event.RepoFullName, "pr", event.PRNumber)
		return nil
	}

	if err := ghClient.CreateComment(ctx, event.RepoOwner, event.RepoName, event.PRNumber, answer); err != nil {
		return fmt.Errorf("failed to post answer: %w", err)
	}
	return nil
}
