package driving

import (
	"context"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
)

// ConnectionService is the token vault surface: valid-token retrieval with
// refresh-on-demand, status reporting, and disconnection.
type ConnectionService interface {
	// GetValidToken returns a currently valid access token, refreshing
	// in-line when the stored one is within the refresh margin. Fails with
	// domain.ErrNotConnected, domain.ErrReauthorizationRequired, or
	// domain.ErrRefreshTransient.
	GetValidToken(ctx context.Context, authCtx *domain.AuthContext, provider domain.ProviderID) (string, error)

	// Status reports the per-provider connection state for the admin
	Status(ctx context.Context, authCtx *domain.AuthContext) ([]*domain.ConnectionStatus, error)

	// Disconnect deactivates the connection and best-effort revokes the
	// tokens upstream. Local state always reaches "disconnected" even if
	// the provider is unreachable.
	Disconnect(ctx context.Context, authCtx *domain.AuthContext, provider domain.ProviderID) error

	// MarkSynced records a completed profile sync for the connection
	MarkSynced(ctx context.Context, authCtx *domain.AuthContext, provider domain.ProviderID) error
}
