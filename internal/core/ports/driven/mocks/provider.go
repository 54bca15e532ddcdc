package mocks

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driven"
)

// MockProviderClient is a scriptable ProviderClient for testing.
// Set the *Func fields to control responses; unset funcs return zero values.
type MockProviderClient struct {
	desc *domain.ProviderDescriptor

	ExchangeFunc func(ctx context.Context, clientID, clientSecret, code, redirectURI string) (*driven.TokenResponse, error)
	RefreshFunc  func(ctx context.Context, clientID, clientSecret, refreshToken string) (*driven.TokenResponse, error)
	RevokeFunc   func(ctx context.Context, clientID, clientSecret, token string) error
	ProfileFunc  func(ctx context.Context, accessToken string) (*domain.ProfileSummary, error)

	mu            sync.Mutex
	ExchangeCalls int
	RefreshCalls  int
	RevokeCalls   int
}

// NewMockProviderClient creates a client with a minimal descriptor for the
// given provider. The catalog carries one required and one optional scope.
func NewMockProviderClient(id domain.ProviderID) *MockProviderClient {
	return &MockProviderClient{
		desc: &domain.ProviderDescriptor{
			ID:          id,
			DisplayName: id.DisplayName(),
			AuthURL:     fmt.Sprintf("https://auth.%s.test/authorize", id),
			TokenURL:    fmt.Sprintf("https://auth.%s.test/token", id),
			UserInfoURL: fmt.Sprintf("https://api.%s.test/userinfo", id),
			DefaultScopes: []string{
				"openid", "profile",
			},
			ScopeCatalog: []domain.ScopeInfo{
				{Scope: "openid", DisplayName: "OpenID", Required: true},
				{Scope: "profile", DisplayName: "Profile", Required: true},
				{Scope: "extra.scope", DisplayName: "Extra", Required: false},
			},
		},
	}
}

func (m *MockProviderClient) Descriptor() *domain.ProviderDescriptor {
	return m.desc
}

func (m *MockProviderClient) BuildAuthURL(clientID, redirectURI, state string, scopes []string) string {
	params := url.Values{}
	params.Set("client_id", clientID)
	params.Set("redirect_uri", redirectURI)
	params.Set("state", state)
	params.Set("scope", domain.JoinScopes(scopes))
	params.Set("response_type", "code")
	return m.desc.AuthURL + "?" + params.Encode()
}

func (m *MockProviderClient) ExchangeCode(ctx context.Context, clientID, clientSecret, code, redirectURI string) (*driven.TokenResponse, error) {
	m.mu.Lock()
	m.ExchangeCalls++
	m.mu.Unlock()
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, clientID, clientSecret, code, redirectURI)
	}
	return &driven.TokenResponse{AccessToken: "access-" + code, RefreshToken: "refresh-" + code, ExpiresIn: 3600}, nil
}

func (m *MockProviderClient) RefreshToken(ctx context.Context, clientID, clientSecret, refreshToken string) (*driven.TokenResponse, error) {
	m.mu.Lock()
	m.RefreshCalls++
	m.mu.Unlock()
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, clientID, clientSecret, refreshToken)
	}
	return &driven.TokenResponse{AccessToken: "refreshed-access", ExpiresIn: 3600}, nil
}

func (m *MockProviderClient) RevokeToken(ctx context.Context, clientID, clientSecret, token string) error {
	m.mu.Lock()
	m.RevokeCalls++
	m.mu.Unlock()
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, clientID, clientSecret, token)
	}
	return nil
}

func (m *MockProviderClient) FetchProfile(ctx context.Context, accessToken string) (*domain.ProfileSummary, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, accessToken)
	}
	return &domain.ProfileSummary{ID: "profile-1", Name: "Test Owner", Email: "owner@example.com"}, nil
}

// MockRegistry is a ProviderRegistry backed by a map
type MockRegistry struct {
	clients map[domain.ProviderID]*MockProviderClient
}

// NewMockRegistry creates a registry with mock clients for the given providers
func NewMockRegistry(ids ...domain.ProviderID) *MockRegistry {
	clients := make(map[domain.ProviderID]*MockProviderClient, len(ids))
	for _, id := range ids {
		clients[id] = NewMockProviderClient(id)
	}
	return &MockRegistry{clients: clients}
}

func (m *MockRegistry) Get(provider domain.ProviderID) driven.ProviderClient {
	client, ok := m.clients[provider]
	if !ok {
		return nil
	}
	return client
}

func (m *MockRegistry) Descriptors() []*domain.ProviderDescriptor {
	var descs []*domain.ProviderDescriptor
	for _, id := range domain.AllProviders() {
		if client, ok := m.clients[id]; ok {
			descs = append(descs, client.Descriptor())
		}
	}
	return descs
}

// Client returns the mock client for scripting responses
func (m *MockRegistry) Client(provider domain.ProviderID) *MockProviderClient {
	return m.clients[provider]
}
