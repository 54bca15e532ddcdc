package domain

import "time"

// RefreshMargin is how long before expiry a token is considered stale.
// Getting a token inside this window triggers an in-line refresh.
const RefreshMargin = 5 * time.Minute

// Connection is a stored OAuth connection for one (admin, provider) pair.
// Tokens are encrypted at rest; this struct carries the decrypted values
// in memory only.
type Connection struct {
	AdminEmail   string     `json:"admin_email"`
	Provider     ProviderID `json:"provider"`
	ProfileID    string     `json:"profile_id,omitempty"`
	ProfileName  string     `json:"profile_name,omitempty"`
	AccessToken  string     `json:"-"` // Never serialize
	RefreshToken string     `json:"-"` // Never serialize
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`

	// GrantedScopes is exactly what the provider returned, which may differ
	// from RequestedScopes. Both are space-delimited.
	GrantedScopes   string `json:"granted_scopes"`
	RequestedScopes string `json:"requested_scopes"`

	Active     bool       `json:"active"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsExpired checks if the access token has expired
func (c *Connection) IsExpired() bool {
	if c.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*c.ExpiresAt)
}

// NeedsRefresh checks if the token is within RefreshMargin of expiry
func (c *Connection) NeedsRefresh() bool {
	if c.ExpiresAt == nil {
		return false
	}
	return time.Now().Add(RefreshMargin).After(*c.ExpiresAt)
}

// HasScope reports whether the provider granted the given scope
func (c *Connection) HasScope(scope string) bool {
	for _, s := range SplitScopes(c.GrantedScopes) {
		if s == scope {
			return true
		}
	}
	return false
}

// ConnectionStatus is the per-provider state reported to the admin UI.
// The four states (not configured, connected, needs reauthorization,
// transient error) must stay visually distinct, so they are separate flags
// rather than one collapsed string.
type ConnectionStatus struct {
	Provider      ProviderID `json:"provider"`
	Configured    bool       `json:"configured"`
	Connected     bool       `json:"connected"`
	NeedsReauth   bool       `json:"needs_reauth"`
	ProfileID     string     `json:"profile_id,omitempty"`
	ProfileName   string     `json:"profile_name,omitempty"`
	GrantedScopes []string   `json:"granted_scopes,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	LastSyncAt    *time.Time `json:"last_sync_at,omitempty"`
}

// ProfileSummary is the minimal identity payload handed to the popup bridge
type ProfileSummary struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
