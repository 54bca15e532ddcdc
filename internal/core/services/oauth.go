package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driven"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driving"
)

// Ensure oauthFlowService implements OAuthFlowService
var _ driving.OAuthFlowService = (*oauthFlowService)(nil)

// exchangeRetryBackoff is the pause before the single transient-failure retry
// of a token endpoint call.
const exchangeRetryBackoff = 500 * time.Millisecond

// OAuthFlowConfig holds the collaborators of the flow controller.
type OAuthFlowConfig struct {
	// AppConfigStore retrieves OAuth app credentials
	AppConfigStore driven.AppConfigStore

	// StateStore manages anti-CSRF state tokens
	StateStore driven.StateTokenStore

	// ConnectionStore persists completed connections
	ConnectionStore driven.ConnectionStore

	// Registry resolves per-provider clients
	Registry driven.ProviderRegistry

	Logger *slog.Logger
}

// oauthFlowService orchestrates the authorization-code flow.
type oauthFlowService struct {
	appConfigStore  driven.AppConfigStore
	stateStore      driven.StateTokenStore
	connectionStore driven.ConnectionStore
	registry        driven.ProviderRegistry
	logger          *slog.Logger
}

// NewOAuthFlowService creates the authorization flow controller.
func NewOAuthFlowService(cfg OAuthFlowConfig) driving.OAuthFlowService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &oauthFlowService{
		appConfigStore:  cfg.AppConfigStore,
		stateStore:      cfg.StateStore,
		connectionStore: cfg.ConnectionStore,
		registry:        cfg.Registry,
		logger:          logger,
	}
}

// Start begins an authorization attempt: loads the app configuration, issues
// a single-use state token, and builds the provider authorization URL.
func (s *oauthFlowService) Start(ctx context.Context, authCtx *domain.AuthContext, req driving.StartRequest) (*driving.StartResponse, error) {
	client := s.registry.Get(req.Provider)
	if client == nil {
		return nil, domain.ErrUnknownProvider
	}

	cfg, err := s.appConfigStore.Get(ctx, req.Provider)
	if err != nil {
		return nil, fmt.Errorf("get app config: %w", err)
	}
	if !cfg.IsConfigured() {
		return nil, domain.ErrProviderNotConfigured
	}

	desc := client.Descriptor()
	scopes, err := resolveScopes(desc, req.Scopes)
	if err != nil {
		return nil, err
	}

	state, err := generateStateValue()
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(domain.StateTokenTTL)
	token := &domain.StateToken{
		Value:           state,
		AdminEmail:      authCtx.Email,
		Provider:        req.Provider,
		RequestedScopes: domain.JoinScopes(scopes),
		RedirectURI:     cfg.RedirectURI,
		CreatedAt:       now,
		ExpiresAt:       expiresAt,
	}
	if err := s.stateStore.Save(ctx, token); err != nil {
		return nil, fmt.Errorf("save state token: %w", err)
	}

	authURL := client.BuildAuthURL(cfg.ClientID, cfg.RedirectURI, state, scopes)

	s.logger.Info("oauth flow started",
		"provider", req.Provider,
		"admin", authCtx.Email,
		"scopes", token.RequestedScopes)

	return &driving.StartResponse{
		AuthorizationURL: authURL,
		State:            state,
		ExpiresAt:        expiresAt.Format(time.RFC3339),
	}, nil
}

// Callback handles the provider redirect. It always returns a CallbackResult
// for the popup bridge to render; the error accompanies failed outcomes for
// logging and must never reach the browser verbatim.
func (s *oauthFlowService) Callback(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResult, error) {
	if req.State == "" {
		// No state at all: nothing to validate against, reject outright
		return failedResult("", "authorization could not be verified"), domain.ErrMalformedCallback
	}

	// The state is consumed before anything else. A failed consume ends the
	// flow here, even if the code parameter looks valid.
	state, err := s.stateStore.Consume(ctx, req.State)
	if err != nil {
		return failedResult("", "authorization could not be verified"), fmt.Errorf("consume state: %w", err)
	}
	if state == nil {
		s.logger.Warn("oauth state rejected", "reason", "unknown, expired, or replayed")
		return failedResult("", "authorization could not be verified"), domain.ErrStateInvalid
	}

	provider := state.Provider

	if req.Error != "" {
		if isUserDenial(req.Error) {
			s.logger.Info("oauth flow cancelled by user", "provider", provider)
			return &driving.CallbackResult{
				Outcome:  driving.OutcomeCancelled,
				Provider: provider,
				Message:  "authorization was cancelled",
			}, domain.ErrUserDeclined
		}
		s.logger.Warn("oauth provider returned error",
			"provider", provider,
			"error", req.Error,
			"description", req.ErrorDescription)
		return failedResult(provider, "the provider rejected the authorization"), domain.ErrTokenExchangeFailed
	}

	if req.Code == "" {
		return failedResult(provider, "authorization could not be verified"), domain.ErrMalformedCallback
	}

	cfg, err := s.appConfigStore.Get(ctx, provider)
	if err != nil {
		return failedResult(provider, "authorization failed"), fmt.Errorf("get app config: %w", err)
	}
	if !cfg.IsConfigured() {
		return failedResult(provider, "provider is no longer configured"), domain.ErrProviderNotConfigured
	}

	client := s.registry.Get(provider)
	if client == nil {
		return failedResult(provider, "provider is not supported"), domain.ErrUnknownProvider
	}

	token, err := s.exchangeWithRetry(ctx, client, cfg, req.Code, state.RedirectURI)
	if err != nil {
		s.logger.Error("token exchange failed", "provider", provider, "error", err)
		return failedResult(provider, "token exchange failed"), fmt.Errorf("%w: %v", domain.ErrTokenExchangeFailed, err)
	}

	profile, err := client.FetchProfile(ctx, token.AccessToken)
	if err != nil {
		s.logger.Error("profile fetch failed", "provider", provider, "error", err)
		return failedResult(provider, "could not fetch account profile"), fmt.Errorf("fetch profile: %w", err)
	}

	// Store exactly what the provider granted; some providers omit the
	// scope field, in which case the requested set is assumed.
	granted := token.Scope
	if granted == "" {
		granted = state.RequestedScopes
	}

	now := time.Now()
	conn := &domain.Connection{
		AdminEmail:      state.AdminEmail,
		Provider:        provider,
		ProfileID:       profile.ID,
		ProfileName:     profile.Name,
		AccessToken:     token.AccessToken,
		RefreshToken:    token.RefreshToken,
		ExpiresAt:       expiryFromSeconds(token.ExpiresIn),
		GrantedScopes:   granted,
		RequestedScopes: state.RequestedScopes,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.connectionStore.Upsert(ctx, conn); err != nil {
		return failedResult(provider, "could not store the connection"), fmt.Errorf("store connection: %w", err)
	}

	s.logger.Info("oauth connection established",
		"provider", provider,
		"admin", state.AdminEmail,
		"profile", profile.ID,
		"granted_scopes", granted)

	display := profile.Name
	if display == "" {
		display = profile.Email
	}
	if display == "" {
		display = profile.ID
	}

	return &driving.CallbackResult{
		Outcome:  driving.OutcomeSuccess,
		Provider: provider,
		Profile:  profile,
		Message:  fmt.Sprintf("Connected to %s as %s", provider.DisplayName(), display),
	}, nil
}

// exchangeWithRetry performs the code exchange with exactly one retry after
// a transient failure. Structured provider rejections are never retried.
func (s *oauthFlowService) exchangeWithRetry(ctx context.Context, client driven.ProviderClient, cfg *domain.AppConfig, code, redirectURI string) (*driven.TokenResponse, error) {
	token, err := client.ExchangeCode(ctx, cfg.ClientID, cfg.ClientSecret, code, redirectURI)
	if err == nil {
		return token, nil
	}

	var provErr *driven.ProviderError
	if errors.As(err, &provErr) {
		return nil, err
	}

	select {
	case <-time.After(exchangeRetryBackoff):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.logger.Warn("retrying token exchange after transient failure", "error", err)
	return client.ExchangeCode(ctx, cfg.ClientID, cfg.ClientSecret, code, redirectURI)
}

// resolveScopes validates an explicit scope selection against the provider
// catalog and folds in the required scopes; empty selection means defaults.
func resolveScopes(desc *domain.ProviderDescriptor, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return desc.DefaultScopes, nil
	}

	seen := make(map[string]bool, len(requested))
	var scopes []string
	for _, scope := range requested {
		if !desc.KnowsScope(scope) {
			return nil, fmt.Errorf("%w: unknown scope %q for %s", domain.ErrInvalidInput, scope, desc.ID)
		}
		if !seen[scope] {
			seen[scope] = true
			scopes = append(scopes, scope)
		}
	}
	for _, scope := range desc.RequiredScopes() {
		if !seen[scope] {
			seen[scope] = true
			scopes = append(scopes, scope)
		}
	}
	return scopes, nil
}

// generateStateValue produces a 128-bit random hex state value.
func generateStateValue() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// expiryFromSeconds converts a relative expires_in to an absolute timestamp.
func expiryFromSeconds(seconds int) *time.Time {
	if seconds <= 0 {
		return nil
	}
	t := time.Now().Add(time.Duration(seconds) * time.Second)
	return &t
}

// isUserDenial reports whether the provider error means the user declined
// consent rather than something going wrong.
func isUserDenial(code string) bool {
	switch code {
	case "access_denied", "consent_required", "user_cancelled_login", "user_cancelled_authorize":
		return true
	default:
		return false
	}
}

func failedResult(provider domain.ProviderID, message string) *driving.CallbackResult {
	return &driving.CallbackResult{
		Outcome:  driving.OutcomeFailed,
		Provider: provider,
		Message:  message,
	}
}
