package driving

import (
	"context"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
)

// OAuthFlowService drives the redirect-based authorization-code flow.
type OAuthFlowService interface {
	// Start begins an authorization attempt for the admin in authCtx.
	// It issues a state token and returns the provider authorization URL
	// for the popup window to navigate to.
	Start(ctx context.Context, authCtx *domain.AuthContext, req StartRequest) (*StartResponse, error)

	// Callback handles the provider redirect. The state is consumed before
	// anything else; a failed consume terminates the flow without reaching
	// the token exchange.
	Callback(ctx context.Context, req CallbackRequest) (*CallbackResult, error)
}

// StartRequest selects the provider and optionally a scope subset.
// @Description Request to start an OAuth authorization flow
type StartRequest struct {
	// Provider is the OAuth provider (google or linkedin)
	Provider domain.ProviderID `json:"provider" example:"google"`

	// Scopes optionally narrows the requested scopes. Empty means the
	// provider defaults. Required scopes are always included.
	Scopes []string `json:"scopes,omitempty"`
}

// StartResponse contains the authorization URL for the popup.
// @Description Response containing the OAuth authorization URL
type StartResponse struct {
	// AuthorizationURL is where the popup window should navigate
	AuthorizationURL string `json:"authorization_url"`

	// State is the CSRF token that will round-trip through the provider
	State string `json:"state"`

	// ExpiresAt is when the authorization state expires
	ExpiresAt string `json:"expires_at" example:"2024-01-15T10:10:00Z"`
}

// CallbackRequest carries the query parameters from the provider redirect.
type CallbackRequest struct {
	Code             string `json:"code"`
	State            string `json:"state"`
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// CallbackOutcome is the message type delivered to the opener window.
type CallbackOutcome string

const (
	OutcomeSuccess   CallbackOutcome = "OAUTH_SUCCESS"
	OutcomeCancelled CallbackOutcome = "OAUTH_CANCELLED"
	OutcomeFailed    CallbackOutcome = "OAUTH_FAILED"
)

// CallbackResult is handed to the popup completion bridge.
type CallbackResult struct {
	Outcome  CallbackOutcome        `json:"type"`
	Provider domain.ProviderID      `json:"provider,omitempty"`
	Profile  *domain.ProfileSummary `json:"profile,omitempty"`
	Message  string                 `json:"message,omitempty"`
}
