// Package token implements the shared token-endpoint wire protocol used by
// every provider client: form-encoded POST, JSON response, and the OAuth
// error object mapped to a structured ProviderError.
package token

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/blackburnd/portfolio-core/internal/core/ports/driven"
)

// maxResponseBytes bounds how much of a provider response is read.
const maxResponseBytes = 1 << 20

// wireResponse is the raw token endpoint JSON shape shared by providers.
type wireResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	ExpiresIn    int    `json:"expires_in"`
	Error        string `json:"error"`
	ErrorDesc    string `json:"error_description"`
}

// Post sends a form-encoded request to a token endpoint and normalizes the
// response. A structured OAuth error becomes *driven.ProviderError; network
// and malformed-response failures come back as plain errors so callers can
// treat them as transient.
func Post(ctx context.Context, client *http.Client, endpoint string, params url.Values) (*driven.TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read token response: %w", err)
	}

	var wire wireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		if resp.StatusCode >= 300 {
			return nil, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decode token response: %w", err)
	}

	if wire.Error != "" {
		return nil, &driven.ProviderError{Code: wire.Error, Description: wire.ErrorDesc}
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}
	if wire.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}

	return &driven.TokenResponse{
		AccessToken:  wire.AccessToken,
		RefreshToken: wire.RefreshToken,
		TokenType:    wire.TokenType,
		Scope:        wire.Scope,
		ExpiresIn:    wire.ExpiresIn,
	}, nil
}

// Revoke sends a form-encoded revocation request. A 2xx means revoked;
// anything else is reported to the caller, who treats it as best-effort.
func Revoke(ctx context.Context, client *http.Client, endpoint string, params url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("create revoke request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("revoke request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode >= 300 {
		return fmt.Errorf("revoke endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
