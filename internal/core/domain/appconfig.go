package domain

import (
	"strings"
	"time"
)

// AppConfig holds the OAuth application credentials for one provider.
// At most one active configuration exists per provider; saving a new one
// supersedes the prior row.
type AppConfig struct {
	Provider     ProviderID `json:"provider"`
	AppName      string     `json:"app_name"`
	ClientID     string     `json:"client_id"`
	ClientSecret string     `json:"-"` // Never serialize
	RedirectURI  string     `json:"redirect_uri"`
	AdminEmail   string     `json:"admin_email"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsConfigured reports whether the config is usable for an OAuth flow
func (c *AppConfig) IsConfigured() bool {
	return c != nil && c.ClientID != "" && c.ClientSecret != "" && c.RedirectURI != ""
}

// AppConfigSummary is the safe view returned to the admin UI.
// The client secret is masked; the plaintext never reaches the browser.
type AppConfigSummary struct {
	Provider     ProviderID `json:"provider"`
	AppName      string     `json:"app_name,omitempty"`
	ClientID     string     `json:"client_id,omitempty"`
	MaskedSecret string     `json:"client_secret_masked,omitempty"`
	RedirectURI  string     `json:"redirect_uri,omitempty"`
	Configured   bool       `json:"configured"`
	AdminEmail   string     `json:"admin_email,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// ToSummary converts an AppConfig to its masked view
func (c *AppConfig) ToSummary() *AppConfigSummary {
	updated := c.UpdatedAt
	return &AppConfigSummary{
		Provider:     c.Provider,
		AppName:      c.AppName,
		ClientID:     c.ClientID,
		MaskedSecret: MaskSecret(c.ClientSecret),
		RedirectURI:  c.RedirectURI,
		Configured:   c.IsConfigured(),
		AdminEmail:   c.AdminEmail,
		UpdatedAt:    &updated,
	}
}

// MaskSecret keeps the last four characters of a secret for recognition
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
