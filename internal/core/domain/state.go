package domain

import "time"

// StateTokenTTL is how long an issued state token stays valid
const StateTokenTTL = 10 * time.Minute

// StateToken is the anti-CSRF nonce round-tripped through the provider
// redirect. Single-use: consuming it must be atomic with validation.
type StateToken struct {
	// Value is a cryptographically random string (>= 128 bits entropy)
	Value string `json:"value"`

	// AdminEmail scopes the authorization attempt to the admin who started it
	AdminEmail string `json:"admin_email"`

	Provider ProviderID `json:"provider"`

	// RequestedScopes is the space-delimited scope list sent to the
	// provider, kept so the callback can record requested vs granted.
	RequestedScopes string `json:"requested_scopes"`

	RedirectURI string    `json:"redirect_uri"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IsExpired checks if the state token is past its TTL
func (t *StateToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
