package domain

import "strings"

// ProviderID identifies a supported OAuth provider
type ProviderID string

const (
	ProviderGoogle   ProviderID = "google"
	ProviderLinkedIn ProviderID = "linkedin"
)

// AllProviders lists every supported provider in display order
func AllProviders() []ProviderID {
	return []ProviderID{ProviderGoogle, ProviderLinkedIn}
}

// ParseProviderID validates a provider string from request input
func ParseProviderID(s string) (ProviderID, error) {
	switch ProviderID(strings.ToLower(strings.TrimSpace(s))) {
	case ProviderGoogle:
		return ProviderGoogle, nil
	case ProviderLinkedIn:
		return ProviderLinkedIn, nil
	default:
		return "", ErrUnknownProvider
	}
}

// DisplayName returns a human-readable name for a provider
func (p ProviderID) DisplayName() string {
	switch p {
	case ProviderGoogle:
		return "Google"
	case ProviderLinkedIn:
		return "LinkedIn"
	default:
		return string(p)
	}
}

// ScopeInfo describes a single OAuth scope for the admin consent form
type ScopeInfo struct {
	Scope       string `json:"scope"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// ProviderDescriptor is the static, in-process description of a provider.
// Loaded at startup from the provider client packages; immutable afterwards.
type ProviderDescriptor struct {
	ID            ProviderID  `json:"id"`
	DisplayName   string      `json:"display_name"`
	AuthURL       string      `json:"auth_url"`
	TokenURL      string      `json:"token_url"`
	RevokeURL     string      `json:"revoke_url,omitempty"`
	UserInfoURL   string      `json:"user_info_url"`
	DefaultScopes []string    `json:"default_scopes"`
	ScopeCatalog  []ScopeInfo `json:"scope_catalog"`
}

// RequiredScopes returns the subset of the catalog marked required
func (d *ProviderDescriptor) RequiredScopes() []string {
	var required []string
	for _, s := range d.ScopeCatalog {
		if s.Required {
			required = append(required, s.Scope)
		}
	}
	return required
}

// KnowsScope reports whether the scope appears in the catalog
func (d *ProviderDescriptor) KnowsScope(scope string) bool {
	for _, s := range d.ScopeCatalog {
		if s.Scope == scope {
			return true
		}
	}
	return false
}

// SplitScopes splits a space- or comma-delimited scope string
func SplitScopes(scope string) []string {
	fields := strings.FieldsFunc(scope, func(r rune) bool {
		return r == ' ' || r == ','
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// JoinScopes joins scopes into the canonical space-delimited form
func JoinScopes(scopes []string) string {
	return strings.Join(scopes, " ")
}
