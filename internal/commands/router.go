// Package commands classifies bot commands embedded in PR comments and routes
// them to the preference manager or the conversational pipeline.
package commands

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/tophbot/toph/internal/core"
	"github.com/tophbot/toph/internal/prefs"
)

// Command markers. Matching is case-insensitive substring search.
const (
	InitMarker      = "@toph-bot/init"
	ConfigureMarker = "@toph-bot/configure"
	MentionMarker   = "@toph-bot"
)

// Command is the classification of a comment body.
type Command int

const (
	CommandNone Command = iota
	CommandInit
	CommandConfigure
	CommandInteract
)

func (c Command) String() string {
	switch c {
	case CommandInit:
		return "init"
	case CommandConfigure:
		return "configure"
	case CommandInteract:
		return "interact"
	default:
		return "none"
	}
}

// Detect classifies a comment body. Precedence is fixed: init before
// configure before the generic mention, so a comment containing both the init
// marker and a mention always resolves to init.
func Detect(commentBody string) Command {
	lower := strings.ToLower(commentBody)
	switch {
	case strings.Contains(lower, InitMarker):
		return CommandInit
	case strings.Contains(lower, ConfigureMarker):
		return CommandConfigure
	case strings.Contains(lower, MentionMarker):
		return CommandInteract
	default:
		return CommandNone
	}
}

var mentionRegexp = regexp.MustCompile(`(?i)@toph-bot(/\w+)?`)

// StripMention removes every bot marker from a comment body, leaving the
// user's query text.
func StripMention(commentBody string) string {
	return strings.TrimSpace(mentionRegexp.ReplaceAllString(commentBody, ""))
}

// Outcome is the result of routing one comment.
type Outcome struct {
	// Reply is posted verbatim as a PR comment when non-empty.
	Reply string
	// RunPipeline signals that the conversational review pipeline should run
	// with Query as the user's question.
	RunPipeline bool
	Query       string
}

// Router dispatches detected commands.
type Router struct {
	manager *prefs.Manager
	logger  *slog.Logger
}

// NewRouter creates a command router backed by the given preference manager.
func NewRouter(manager *prefs.Manager, logger *slog.Logger) *Router {
	return &Router{manager: manager, logger: logger}
}

// Route classifies the event's comment body and executes the matching
// command. A None command yields an empty outcome.
func (r *Router) Route(ctx context.Context, event *core.GitHubEvent) (Outcome, error) {
	cmd := Detect(event.CommentBody)
	r.logger.Info("routing comment command",
		"command", cmd.String(),
		"repo", event.RepoFullName,
		"pr", event.PRNumber,
		"commenter", event.Commenter,
	)

	switch cmd {
	case CommandInit:
		reply, err := r.manager.HandleInit(ctx, event.Commenter, event.RepoFullName, event.CommentBody)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Reply: reply}, nil

	case CommandConfigure:
		reply, err := r.manager.HandleConfigure(ctx, event.Commenter, event.RepoFullName, event.CommentBody)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Reply: reply}, nil

	case CommandInteract:
		onboarding, ready, err := r.manager.EnsureInitialized(ctx, event.Commenter, event.RepoFullName)
		if err != nil {
			return Outcome{}, err
		}
		if !ready {
			return Outcome{Reply: onboarding}, nil
		}
		return Outcome{RunPipeline: true, Query: StripMention(event.CommentBody)}, nil

	default:
		return Outcome{}, nil
	}
}
