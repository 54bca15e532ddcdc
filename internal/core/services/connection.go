package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driven"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driving"
)

// Ensure connectionService implements ConnectionService
var _ driving.ConnectionService = (*connectionService)(nil)

// refreshRetryBackoff is the pause before the single transient-failure retry
// of a refresh call.
const refreshRetryBackoff = 500 * time.Millisecond

// ConnectionServiceConfig holds the collaborators of the token vault.
type ConnectionServiceConfig struct {
	ConnectionStore driven.ConnectionStore
	AppConfigStore  driven.AppConfigStore
	Registry        driven.ProviderRegistry
	Logger          *slog.Logger
}

// connectionService implements the token vault with refresh-on-demand.
// There is no background refresher; the next operation that needs a token
// pays the refresh latency.
type connectionService struct {
	connections driven.ConnectionStore
	appConfigs  driven.AppConfigStore
	registry    driven.ProviderRegistry
	logger      *slog.Logger
}

// NewConnectionService creates the token vault service.
func NewConnectionService(cfg ConnectionServiceConfig) driving.ConnectionService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &connectionService{
		connections: cfg.ConnectionStore,
		appConfigs:  cfg.AppConfigStore,
		registry:    cfg.Registry,
		logger:      logger,
	}
}

// GetValidToken returns a usable access token, refreshing in-line when the
// stored one is within the refresh margin of expiry.
func (s *connectionService) GetValidToken(ctx context.Context, authCtx *domain.AuthContext, provider domain.ProviderID) (string, error) {
	conn, err := s.connections.Get(ctx, authCtx.Email, provider)
	if err != nil {
		return "", fmt.Errorf("get connection: %w", err)
	}
	if conn == nil {
		return "", domain.ErrNotConnected
	}

	if conn.NeedsRefresh() {
		conn, err = s.refresh(ctx, conn)
		if err != nil {
			return "", err
		}
	}

	if err := s.connections.TouchUsed(ctx, authCtx.Email, provider); err != nil {
		s.logger.Warn("failed to bump last_used", "provider", provider, "error", err)
	}

	return conn.AccessToken, nil
}

// refresh exchanges the refresh token for a new access token. On
// invalid_grant the connection is deactivated and reauthorization is
// required; transient failures leave it untouched for the next attempt.
func (s *connectionService) refresh(ctx context.Context, conn *domain.Connection) (*domain.Connection, error) {
	if conn.RefreshToken == "" {
		// Nothing to refresh with; the access token is all there is
		if conn.IsExpired() {
			if err := s.connections.Deactivate(ctx, conn.AdminEmail, conn.Provider); err != nil {
				s.logger.Warn("failed to deactivate connection", "provider", conn.Provider, "error", err)
			}
			return nil, domain.ErrReauthorizationRequired
		}
		return conn, nil
	}

	cfg, err := s.appConfigs.Get(ctx, conn.Provider)
	if err != nil {
		return nil, fmt.Errorf("get app config: %w", err)
	}
	if !cfg.IsConfigured() {
		return nil, domain.ErrProviderNotConfigured
	}

	client := s.registry.Get(conn.Provider)
	if client == nil {
		return nil, domain.ErrUnknownProvider
	}

	token, err := s.refreshWithRetry(ctx, client, cfg, conn.RefreshToken)
	if err != nil {
		var provErr *driven.ProviderError
		if errors.As(err, &provErr) && provErr.IsInvalidGrant() {
			return s.handleInvalidGrant(ctx, conn)
		}
		s.logger.Warn("transient refresh failure", "provider", conn.Provider, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrRefreshTransient, err)
	}

	// Providers differ on refresh token rotation; keep the old one when the
	// response omits a replacement.
	newRefresh := token.RefreshToken
	if newRefresh == "" {
		newRefresh = conn.RefreshToken
	}
	expiresAt := expiryFromSeconds(token.ExpiresIn)

	if err := s.connections.UpdateTokens(ctx, conn.AdminEmail, conn.Provider, token.AccessToken, newRefresh, expiresAt); err != nil {
		return nil, fmt.Errorf("store refreshed tokens: %w", err)
	}

	s.logger.Info("access token refreshed", "provider", conn.Provider, "admin", conn.AdminEmail)

	conn.AccessToken = token.AccessToken
	conn.RefreshToken = newRefresh
	conn.ExpiresAt = expiresAt
	if token.Scope != "" {
		conn.GrantedScopes = token.Scope
	}
	return conn, nil
}

// handleInvalidGrant decides whether an invalid_grant is fatal. Two requests
// racing to refresh the same connection can leave the loser holding a stale
// refresh token; re-reading the stored row detects the winner's result.
func (s *connectionService) handleInvalidGrant(ctx context.Context, conn *domain.Connection) (*domain.Connection, error) {
	current, err := s.connections.Get(ctx, conn.AdminEmail, conn.Provider)
	if err == nil && current != nil && !current.NeedsRefresh() {
		s.logger.Info("concurrent refresh already succeeded", "provider", conn.Provider)
		return current, nil
	}

	s.logger.Warn("refresh token rejected, reauthorization required",
		"provider", conn.Provider,
		"admin", conn.AdminEmail)
	if err := s.connections.Deactivate(ctx, conn.AdminEmail, conn.Provider); err != nil {
		s.logger.Warn("failed to deactivate connection", "provider", conn.Provider, "error", err)
	}
	return nil, domain.ErrReauthorizationRequired
}

// refreshWithRetry performs the refresh with exactly one retry after a
// transient failure. Structured provider rejections are never retried.
func (s *connectionService) refreshWithRetry(ctx context.Context, client driven.ProviderClient, cfg *domain.AppConfig, refreshToken string) (*driven.TokenResponse, error) {
	token, err := client.RefreshToken(ctx, cfg.ClientID, cfg.ClientSecret, refreshToken)
	if err == nil {
		return token, nil
	}

	var provErr *driven.ProviderError
	if errors.As(err, &provErr) {
		return nil, err
	}

	select {
	case <-time.After(refreshRetryBackoff):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return client.RefreshToken(ctx, cfg.ClientID, cfg.ClientSecret, refreshToken)
}

// Status reports the per-provider connection state for the admin.
func (s *connectionService) Status(ctx context.Context, authCtx *domain.AuthContext) ([]*domain.ConnectionStatus, error) {
	conns, err := s.connections.ListByAdmin(ctx, authCtx.Email)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}

	byProvider := make(map[domain.ProviderID]*domain.Connection, len(conns))
	for _, conn := range conns {
		byProvider[conn.Provider] = conn
	}

	var statuses []*domain.ConnectionStatus
	for _, desc := range s.registry.Descriptors() {
		status := &domain.ConnectionStatus{Provider: desc.ID}

		cfg, err := s.appConfigs.Get(ctx, desc.ID)
		if err != nil {
			return nil, fmt.Errorf("get app config: %w", err)
		}
		status.Configured = cfg.IsConfigured()

		if conn, ok := byProvider[desc.ID]; ok {
			status.Connected = conn.Active
			status.ProfileID = conn.ProfileID
			status.ProfileName = conn.ProfileName
			status.GrantedScopes = domain.SplitScopes(conn.GrantedScopes)
			status.ExpiresAt = conn.ExpiresAt
			status.LastSyncAt = conn.LastSyncAt
			// Expired with no refresh token means a silent refresh cannot
			// rescue it; the UI should offer reconnect, not retry.
			status.NeedsReauth = conn.IsExpired() && conn.RefreshToken == ""
		}

		statuses = append(statuses, status)
	}

	return statuses, nil
}

// Disconnect deactivates the connection and best-effort revokes upstream.
func (s *connectionService) Disconnect(ctx context.Context, authCtx *domain.AuthContext, provider domain.ProviderID) error {
	conn, err := s.connections.Get(ctx, authCtx.Email, provider)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	if conn == nil {
		return domain.ErrNotConnected
	}

	// Upstream revocation must never block local disconnection; the local
	// state always reaches "disconnected" even if the provider is down.
	s.revokeUpstream(ctx, conn)

	if err := s.connections.Deactivate(ctx, authCtx.Email, provider); err != nil {
		return fmt.Errorf("deactivate connection: %w", err)
	}

	s.logger.Info("oauth connection disconnected", "provider", provider, "admin", authCtx.Email)
	return nil
}

func (s *connectionService) revokeUpstream(ctx context.Context, conn *domain.Connection) {
	client := s.registry.Get(conn.Provider)
	if client == nil {
		return
	}

	cfg, err := s.appConfigs.Get(ctx, conn.Provider)
	if err != nil || !cfg.IsConfigured() {
		s.logger.Warn("skipping upstream revocation, provider not configured", "provider", conn.Provider)
		return
	}

	token := conn.RefreshToken
	if token == "" {
		token = conn.AccessToken
	}
	if err := client.RevokeToken(ctx, cfg.ClientID, cfg.ClientSecret, token); err != nil {
		s.logger.Warn("upstream token revocation failed", "provider", conn.Provider, "error", err)
	}
}

// MarkSynced records a completed profile sync for the connection.
func (s *connectionService) MarkSynced(ctx context.Context, authCtx *domain.AuthContext, provider domain.ProviderID) error {
	if err := s.connections.TouchSync(ctx, authCtx.Email, provider); err != nil {
		return fmt.Errorf("touch sync: %w", err)
	}
	return nil
}
