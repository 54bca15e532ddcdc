package driven

import (
	"context"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
)

// TokenResponse is the normalized result of a token endpoint call.
type TokenResponse struct {
	AccessToken  string
	RefreshToken string
	TokenType    string

	// Scope is the granted-scope string exactly as the provider returned
	// it. Empty when the provider does not echo granted scopes.
	Scope string

	// ExpiresIn is seconds-from-now; zero means the provider reported no expiry
	ExpiresIn int
}

// ProviderError is a structured error from a provider token endpoint.
// Callers branch on Code to separate invalid_grant (refresh token dead)
// from transient failures.
type ProviderError struct {
	Code        string
	Description string
}

func (e *ProviderError) Error() string {
	if e.Description != "" {
		return e.Code + ": " + e.Description
	}
	return e.Code
}

// IsInvalidGrant reports whether the provider rejected the grant itself,
// meaning a retry cannot succeed and re-authorization is needed.
func (e *ProviderError) IsInvalidGrant() bool {
	return e.Code == "invalid_grant"
}

// ProviderClient is the closed per-provider variant supplying endpoint URLs
// and response-field mapping. One implementation per provider; adding a
// provider means adding one package, not editing dispatch chains.
type ProviderClient interface {
	// Descriptor returns the static provider description
	Descriptor() *domain.ProviderDescriptor

	// BuildAuthURL constructs the authorization redirect URL
	BuildAuthURL(clientID, redirectURI, state string, scopes []string) string

	// ExchangeCode exchanges an authorization code for tokens
	ExchangeCode(ctx context.Context, clientID, clientSecret, code, redirectURI string) (*TokenResponse, error)

	// RefreshToken obtains a new access token with grant_type=refresh_token
	RefreshToken(ctx context.Context, clientID, clientSecret, refreshToken string) (*TokenResponse, error)

	// RevokeToken best-effort revokes a token server-side. Providers
	// without a revocation endpoint return nil.
	RevokeToken(ctx context.Context, clientID, clientSecret, token string) error

	// FetchProfile retrieves the minimal identity for display
	FetchProfile(ctx context.Context, accessToken string) (*domain.ProfileSummary, error)
}

// ProviderRegistry resolves a ProviderClient for a provider id.
type ProviderRegistry interface {
	// Get returns the client for the provider, or nil if unsupported
	Get(provider domain.ProviderID) ProviderClient

	// Descriptors returns the static descriptors for all providers
	Descriptors() []*domain.ProviderDescriptor
}
