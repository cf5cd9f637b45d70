package llm

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete_NilModelSkipsSilently(t *testing.T) {
	c := NewCompleter(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	resp, err := c.Complete(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Empty(t, resp)
}
