package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/sevigo/goframe/llms"

	"github.com/tophbot/toph/internal/core"
)

// DefaultCompletionTimeout bounds a single LLM call. An exceeded timeout is a
// recoverable failure for that event, never a process fault.
const DefaultCompletionTimeout = 30 * time.Second

type completer struct {
	model   llms.Model
	timeout time.Duration
	logger  *slog.Logger
}

// NewCompleter wraps a goframe model as a core.Completer. A nil model means
// no credentials are configured; completions then return empty responses and
// callers skip silently.
func NewCompleter(model llms.Model, logger *slog.Logger) core.Completer {
	return &completer{model: model, timeout: DefaultCompletionTimeout, logger: logger}
}

// Complete runs a single completion with a hard timeout. The system prompt,
// when present, is prepended to the user prompt.
func (c *completer) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.model == nil {
		c.logger.Warn("no LLM model configured, skipping completion")
		return "", nil
	}

	prompt := userPrompt
	if systemPrompt != "" {
		prompt = systemPrompt + "\n\n" + userPrompt
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type result struct {
		resp string
		err  error
	}
	resultCh := make(chan result, 1)

	go func() {
		resp, err := c.model.Call(ctx, prompt)
		select {
		case resultCh <- result{resp, err}:
		case <-ctx.Done():
			// Do not block the goroutine if the parent timed out.
		}
	}()

	select {
	case res := <-resultCh:
		return res.resp, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
