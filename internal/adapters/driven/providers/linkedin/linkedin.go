// Package linkedin implements the OAuth provider client for LinkedIn.
package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/blackburnd/portfolio-core/internal/adapters/driven/providers/token"
	"github.com/blackburnd/portfolio-core/internal/core/domain"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.ProviderClient = (*Client)(nil)

const (
	authURL     = "https://www.linkedin.com/oauth/v2/authorization"
	tokenURL    = "https://www.linkedin.com/oauth/v2/accessToken"
	revokeURL   = "https://www.linkedin.com/oauth/v2/revoke"
	userInfoURL = "https://api.linkedin.com/v2/userinfo"

	scopeOpenID  = "openid"
	scopeProfile = "profile"
	scopeEmail   = "email"
	scopeShare   = "w_member_social"
)

// Client handles OAuth operations against LinkedIn.
type Client struct {
	httpClient *http.Client

	// Endpoint overrides for tests; empty means the production URLs.
	authEndpoint     string
	tokenEndpoint    string
	revokeEndpoint   string
	userInfoEndpoint string
}

// NewClient creates a LinkedIn provider client.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient:       httpClient,
		authEndpoint:     authURL,
		tokenEndpoint:    tokenURL,
		revokeEndpoint:   revokeURL,
		userInfoEndpoint: userInfoURL,
	}
}

// Descriptor returns the static provider description.
func (c *Client) Descriptor() *domain.ProviderDescriptor {
	return &domain.ProviderDescriptor{
		ID:            domain.ProviderLinkedIn,
		DisplayName:   "LinkedIn",
		AuthURL:       c.authEndpoint,
		TokenURL:      c.tokenEndpoint,
		RevokeURL:     c.revokeEndpoint,
		UserInfoURL:   c.userInfoEndpoint,
		DefaultScopes: []string{scopeOpenID, scopeProfile, scopeEmail},
		ScopeCatalog: []domain.ScopeInfo{
			{Scope: scopeOpenID, DisplayName: "Sign-in", Description: "Confirm your LinkedIn identity", Required: true},
			{Scope: scopeProfile, DisplayName: "Basic profile", Description: "Read your name, headline, and photo", Required: true},
			{Scope: scopeEmail, DisplayName: "Email address", Description: "Read your primary email address", Required: true},
			{Scope: scopeShare, DisplayName: "Share posts", Description: "Publish updates on your behalf", Required: false},
		},
	}
}

// BuildAuthURL constructs the LinkedIn authorization URL.
func (c *Client) BuildAuthURL(clientID, redirectURI, state string, scopes []string) string {
	params := url.Values{
		"client_id":     {clientID},
		"redirect_uri":  {redirectURI},
		"state":         {state},
		"scope":         {strings.Join(scopes, " ")},
		"response_type": {"code"},
	}
	return c.authEndpoint + "?" + params.Encode()
}

// ExchangeCode exchanges an authorization code for tokens. LinkedIn only
// issues refresh tokens to programs enrolled for them; the response field
// is simply absent otherwise.
func (c *Client) ExchangeCode(ctx context.Context, clientID, clientSecret, code, redirectURI string) (*driven.TokenResponse, error) {
	return token.Post(ctx, c.httpClient, c.tokenEndpoint, url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"code":          {code},
		"redirect_uri":  {redirectURI},
	})
}

// RefreshToken obtains a new access token. LinkedIn rotates the refresh
// token on each use, so the response carries a replacement.
func (c *Client) RefreshToken(ctx context.Context, clientID, clientSecret, refreshToken string) (*driven.TokenResponse, error) {
	return token.Post(ctx, c.httpClient, c.tokenEndpoint, url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"refresh_token": {refreshToken},
	})
}

// RevokeToken revokes a token via LinkedIn's revocation endpoint.
func (c *Client) RevokeToken(ctx context.Context, clientID, clientSecret, tok string) error {
	return token.Revoke(ctx, c.httpClient, c.revokeEndpoint, url.Values{
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"token":         {tok},
	})
}

// FetchProfile retrieves the member's identity from the OIDC userinfo
// endpoint; the subject claim is the member id.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*domain.ProfileSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("userinfo returned status %d: %s", resp.StatusCode, string(body))
	}

	var user struct {
		Sub   string `json:"sub"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}

	return &domain.ProfileSummary{
		ID:    user.Sub,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}
