// Package storage implements the Postgres-backed block store that holds
// preference records, plus the optional activation registry.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	// import db drivers
	_ "github.com/lib/pq"

	"github.com/tophbot/toph/internal/core"
)

// Store is the database interface used by the application. It extends
// core.BlockStore with the activation checks for the optional allow-list
// gate.
type Store interface {
	core.BlockStore
	IsUserActivated(ctx context.Context, user string) (bool, error)
	IsRepoActivated(ctx context.Context, repoFullName string) (bool, error)
}

type postgresStore struct {
	db *sqlx.DB
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

// FindByLabel returns the block with the given label, or nil if none exists.
func (s *postgresStore) FindByLabel(ctx context.Context, label string) (*core.Block, error) {
	query := `
		SELECT id, label, value, description, created_at, updated_at
		FROM blocks
		WHERE label = $1`

	var b core.Block
	err := s.db.QueryRowContext(ctx, query, label).
		Scan(&b.ID, &b.Label, &b.Value, &b.Description, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// Create stores a new block.
func (s *postgresStore) Create(ctx context.Context, label, value, description string) (*core.Block, error) {
	query := `
		INSERT INTO blocks (label, value, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, label, value, description, created_at, updated_at`

	now := time.Now()
	var b core.Block
	err := s.db.QueryRowContext(ctx, query, label, value, description, now).
		Scan(&b.ID, &b.Label, &b.Value, &b.Description, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// likeEscaper quotes LIKE metacharacters so a prefix matches literally.
// Labels contain underscores, which LIKE would otherwise treat as
// single-character wildcards and let one user's prefix match another's label.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// UpdateByPrefix replaces the value of the oldest block whose label starts
// with prefix. If no block matches, it creates one under fallbackLabel.
func (s *postgresStore) UpdateByPrefix(ctx context.Context, prefix, fallbackLabel, value string) (*core.Block, error) {
	query := `
		UPDATE blocks
		SET value = $2, updated_at = $3
		WHERE id = (
			SELECT id FROM blocks WHERE label LIKE $1 || '%' ORDER BY id LIMIT 1
		)
		RETURNING id, label, value, description, created_at, updated_at`

	var b core.Block
	err := s.db.QueryRowContext(ctx, query, likeEscaper.Replace(prefix), value, time.Now()).
		Scan(&b.ID, &b.Label, &b.Value, &b.Description, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.Create(ctx, fallbackLabel, value, "")
		}
		return nil, err
	}
	return &b, nil
}

// IsUserActivated reports whether a user is present and enabled in the
// activation registry.
func (s *postgresStore) IsUserActivated(ctx context.Context, user string) (bool, error) {
	return s.activated(ctx, `SELECT enabled FROM authorized_users WHERE user_id = $1`, user)
}

// IsRepoActivated reports whether a repository is present and enabled in the
// activation registry.
func (s *postgresStore) IsRepoActivated(ctx context.Context, repoFullName string) (bool, error) {
	return s.activated(ctx, `SELECT enabled FROM authorized_users WHERE username_repo = $1`, repoFullName)
}

func (s *postgresStore) activated(ctx context.Context, query, key string) (bool, error) {
	var enabled bool
	err := s.db.QueryRowContext(ctx, query, key).Scan(&enabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return enabled, nil
}
