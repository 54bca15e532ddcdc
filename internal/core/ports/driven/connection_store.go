package driven

import (
	"context"
	"time"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
)

// ConnectionStore persists OAuth connections keyed by (admin email, provider).
// Access and refresh tokens are encrypted as independent blobs. Upserts are
// last-write-wins; a re-authorization replaces the prior connection rather
// than accumulating duplicates.
type ConnectionStore interface {
	// Upsert stores or replaces the connection for (conn.AdminEmail, conn.Provider)
	Upsert(ctx context.Context, conn *domain.Connection) error

	// Get retrieves the active connection with tokens decrypted.
	// Returns nil, nil when no active connection exists.
	Get(ctx context.Context, adminEmail string, provider domain.ProviderID) (*domain.Connection, error)

	// ListByAdmin returns all active connections for an admin, tokens decrypted
	ListByAdmin(ctx context.Context, adminEmail string) ([]*domain.Connection, error)

	// UpdateTokens overwrites the token material after a refresh. An empty
	// refreshToken preserves the stored one (providers that do not rotate).
	UpdateTokens(ctx context.Context, adminEmail string, provider domain.ProviderID, accessToken, refreshToken string, expiresAt *time.Time) error

	// Deactivate marks the connection inactive (logical delete)
	Deactivate(ctx context.Context, adminEmail string, provider domain.ProviderID) error

	// TouchUsed bumps last_used_at
	TouchUsed(ctx context.Context, adminEmail string, provider domain.ProviderID) error

	// TouchSync bumps last_sync_at after a successful profile sync
	TouchSync(ctx context.Context, adminEmail string, provider domain.ProviderID) error
}
