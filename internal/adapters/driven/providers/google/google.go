// Package google implements the OAuth provider client for Google.
package google

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
	authURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	tokenURL    = "https://oauth2.googleapis.com/token"
	revokeURL   = "https://oauth2.googleapis.com/revoke"
	userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	scopeOpenID  = "openid"
	scopeEmail   = "https://www.googleapis.com/auth/userinfo.email"
	scopeProfile = "https://www.googleapis.com/auth/userinfo.profile"
	scopeGmail   = "https://www.googleapis.com/auth/gmail.send"
)

// Client handles OAuth operations against Google.
type Client struct {
	httpClient *http.Client

	// Endpoint overrides for tests; empty means the production URLs.
	authEndpoint     string
	tokenEndpoint    string
	revokeEndpoint   string
	userInfoEndpoint string
}

// NewClient creates a Google provider client.
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
		ID:            domain.ProviderGoogle,
		DisplayName:   "Google",
		AuthURL:       c.authEndpoint,
		TokenURL:      c.tokenEndpoint,
		RevokeURL:     c.revokeEndpoint,
		UserInfoURL:   c.userInfoEndpoint,
		DefaultScopes: []string{scopeOpenID, scopeEmail, scopeProfile},
		ScopeCatalog: []domain.ScopeInfo{
			{Scope: scopeOpenID, DisplayName: "Sign-in", Description: "Confirm your Google identity", Required: true},
			{Scope: scopeEmail, DisplayName: "Email address", Description: "Read your primary email address", Required: true},
			{Scope: scopeProfile, DisplayName: "Basic profile", Description: "Read your name and photo", Required: true},
			{Scope: scopeGmail, DisplayName: "Send mail", Description: "Send contact-form notifications from your account", Required: false},
		},
	}
}

// BuildAuthURL constructs the Google authorization URL. access_type=offline
// with prompt=consent is what makes Google issue a refresh token.
func (c *Client) BuildAuthURL(clientID, redirectURI, state string, scopes []string) string {
	params := url.Values{
		"client_id":     {clientID},
		"redirect_uri":  {redirectURI},
		"state":         {state},
		"scope":         {strings.Join(scopes, " ")},
		"response_type": {"code"},
		"access_type":   {"offline"},
		"prompt":        {"consent"},
	}
	return c.authEndpoint + "?" + params.Encode()
}

// ExchangeCode exchanges an authorization code for tokens.
func (c *Client) ExchangeCode(ctx context.Context, clientID, clientSecret, code, redirectURI string) (*driven.TokenResponse, error) {
	return token.Post(ctx, c.httpClient, c.tokenEndpoint, url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"code":          {code},
		"redirect_uri":  {redirectURI},
	})
}

// RefreshToken obtains a new access token. Google does not rotate refresh
// tokens, so the response usually omits refresh_token.
func (c *Client) RefreshToken(ctx context.Context, clientID, clientSecret, refreshToken string) (*driven.TokenResponse, error) {
	return token.Post(ctx, c.httpClient, c.tokenEndpoint, url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"refresh_token": {refreshToken},
	})
}

// RevokeToken revokes a token. Revoking a refresh token also invalidates
// the access tokens minted from it.
func (c *Client) RevokeToken(ctx context.Context, clientID, clientSecret, tok string) error {
	return token.Revoke(ctx, c.httpClient, c.revokeEndpoint, url.Values{
		"token": {tok},
	})
}

// FetchProfile retrieves the authenticated user's basic identity.
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
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}

	return &domain.ProfileSummary{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}
