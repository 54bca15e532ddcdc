package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driven"
)

// Ensure StateTokenStore implements the interface.
var _ driven.StateTokenStore = (*StateTokenStore)(nil)

// StateTokenStore implements driven.StateTokenStore using PostgreSQL.
type StateTokenStore struct {
	db *DB
}

// NewStateTokenStore creates a new PostgreSQL-backed state token store.
func NewStateTokenStore(db *DB) *StateTokenStore {
	return &StateTokenStore{db: db}
}

// Save stores a freshly issued state token.
func (s *StateTokenStore) Save(ctx context.Context, token *domain.StateToken) error {
	now := time.Now()
	if token.CreatedAt.IsZero() {
		token.CreatedAt = now
	}
	if token.ExpiresAt.IsZero() {
		token.ExpiresAt = now.Add(domain.StateTokenTTL)
	}

	query := `
		INSERT INTO oauth_state_tokens (value, admin_email, provider, requested_scopes, redirect_uri, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(ctx, query,
		token.Value,
		token.AdminEmail,
		token.Provider,
		token.RequestedScopes,
		token.RedirectURI,
		token.CreatedAt,
		token.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("save state token: %w", err)
	}

	return nil
}

// Consume atomically validates and retires the token. DELETE ... RETURNING
// makes the check and the retire a single round trip: of two racing
// callbacks with the same state, exactly one gets a row back.
func (s *StateTokenStore) Consume(ctx context.Context, value string) (*domain.StateToken, error) {
	query := `
		DELETE FROM oauth_state_tokens
		WHERE value = $1 AND expires_at > NOW()
		RETURNING value, admin_email, provider, requested_scopes, redirect_uri, created_at, expires_at
	`

	var token domain.StateToken
	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&token.Value,
		&token.AdminEmail,
		&token.Provider,
		&token.RequestedScopes,
		&token.RedirectURI,
		&token.CreatedAt,
		&token.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // Unknown, expired, or already consumed
	}
	if err != nil {
		return nil, fmt.Errorf("consume state token: %w", err)
	}

	return &token, nil
}

// Cleanup removes expired tokens.
func (s *StateTokenStore) Cleanup(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM oauth_state_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return fmt.Errorf("cleanup state tokens: %w", err)
	}
	return nil
}
