package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the admin lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrUnknownProvider indicates a provider outside the supported set
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrProviderNotConfigured indicates no active app configuration exists
	// for the provider. This is an admin-action-required state, not an outage.
	ErrProviderNotConfigured = errors.New("provider not configured")

	// ErrStateInvalid indicates the OAuth state parameter failed CSRF
	// validation: unknown, expired, or already consumed. Callers must never
	// reveal which of the three it was.
	ErrStateInvalid = errors.New("oauth state invalid")

	// ErrMalformedCallback indicates the provider callback carried
	// parameters outside the expected shape.
	ErrMalformedCallback = errors.New("malformed oauth callback")

	// ErrUserDeclined indicates the user cancelled or denied consent at the
	// provider. Benign, surfaced as informational.
	ErrUserDeclined = errors.New("user declined authorization")

	// ErrTokenExchangeFailed indicates the code-for-token exchange failed
	// after the bounded retry.
	ErrTokenExchangeFailed = errors.New("token exchange failed")

	// ErrNotConnected indicates no active OAuth connection exists for the
	// admin and provider.
	ErrNotConnected = errors.New("provider not connected")

	// ErrReauthorizationRequired indicates the refresh token is invalid or
	// revoked. Distinct from transient failure: the UI should prompt a
	// reconnect, not a retry.
	ErrReauthorizationRequired = errors.New("reauthorization required")

	// ErrRefreshTransient indicates a network-level refresh failure. The
	// connection is left intact so the next use can retry.
	ErrRefreshTransient = errors.New("transient token refresh failure")

	// ErrTokenExpired indicates the admin auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the admin auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrSessionNotFound indicates the admin session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")
)
