package driven

import (
	"context"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
)

// AppConfigStore persists OAuth application credentials per provider.
// One active configuration per provider; Save supersedes the prior row.
// Client secrets are encrypted before they touch the database.
type AppConfigStore interface {
	// Save upserts the configuration for cfg.Provider (encrypts the secret)
	Save(ctx context.Context, cfg *domain.AppConfig) error

	// Get retrieves the configuration with the secret decrypted.
	// Returns nil, nil when the provider has never been configured.
	Get(ctx context.Context, provider domain.ProviderID) (*domain.AppConfig, error)

	// List returns masked summaries for every provider, configured or not
	List(ctx context.Context) ([]*domain.AppConfigSummary, error)

	// Clear removes the configuration. Existing connections for the
	// provider become orphaned until it is reconfigured.
	Clear(ctx context.Context, provider domain.ProviderID) error
}
