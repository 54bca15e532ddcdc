package driving

import (
	"context"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
)

// AppConfigService manages OAuth application credentials per provider.
type AppConfigService interface {
	// Save validates and stores a configuration, superseding any prior one.
	// Returns the masked summary, never the plaintext secret.
	Save(ctx context.Context, authCtx *domain.AuthContext, req SaveConfigRequest) (*domain.AppConfigSummary, error)

	// Get returns the masked configuration. A never-configured provider
	// yields a summary with Configured=false, not an error, so the UI can
	// render the setup form.
	Get(ctx context.Context, provider domain.ProviderID) (*domain.AppConfigSummary, error)

	// List returns masked summaries for every supported provider
	List(ctx context.Context) ([]*domain.AppConfigSummary, error)

	// Clear removes the configuration for a provider
	Clear(ctx context.Context, provider domain.ProviderID) error

	// Providers returns the catalog of supported providers with their
	// scope metadata and configured flag, for the admin consent form.
	Providers(ctx context.Context) ([]*ProviderCatalogEntry, error)
}

// ProviderCatalogEntry is a provider descriptor annotated with whether the
// application credentials for it have been configured.
// @Description Supported OAuth provider with scope metadata
type ProviderCatalogEntry struct {
	domain.ProviderDescriptor
	Configured bool `json:"configured"`
}

// SaveConfigRequest is the admin configuration form payload.
// @Description OAuth application credentials for one provider
type SaveConfigRequest struct {
	Provider     domain.ProviderID `json:"provider" example:"google"`
	AppName      string            `json:"app_name,omitempty" example:"Portfolio Site"`
	ClientID     string            `json:"client_id"`
	ClientSecret string            `json:"client_secret"`
	RedirectURI  string            `json:"redirect_uri" example:"https://example.com/api/v1/oauth/callback"`
}
