package core

import (
	"context"
	"time"
)

// Block is a durable labeled record holding an opaque text value. The
// preference pipeline stores one block per (user, repository) pair.
type Block struct {
	ID          int64
	Label       string
	Value       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BlockStore defines the contract with the durable block storage backend.
//
//go:generate mockgen -destination=../../mocks/mock_block_store.go -package=mocks . BlockStore
type BlockStore interface {
	// FindByLabel returns the block with the given label, or nil if none exists.
	FindByLabel(ctx context.Context, label string) (*Block, error)
	// Create stores a new block.
	Create(ctx context.Context, label, value, description string) (*Block, error)
	// UpdateByPrefix replaces the value of the first block whose label starts
	// with prefix. If no block matches, it creates one under fallbackLabel.
	UpdateByPrefix(ctx context.Context, prefix, fallbackLabel, value string) (*Block, error)
}

// Completer defines the contract with the LLM completion backend. An empty
// response with a nil error means the caller should skip silently.
//
//go:generate mockgen -destination=../../mocks/mock_completer.go -package=mocks . Completer
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Job represents a single, executable unit of work triggered by a GitHubEvent,
// such as a code review or a conversational reply.
type Job interface {
	Run(ctx context.Context, event *GitHubEvent) error
}
