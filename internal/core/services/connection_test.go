package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driven"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driven/mocks"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driving"
)

type connectionTestEnv struct {
	appConfigs  *mocks.MockAppConfigStore
	connections *mocks.MockConnectionStore
	registry    *mocks.MockRegistry
	svc         driving.ConnectionService
}

func newTestConnectionService(t *testing.T) *connectionTestEnv {
	t.Helper()
	env := &connectionTestEnv{
		appConfigs:  mocks.NewMockAppConfigStore(),
		connections: mocks.NewMockConnectionStore(),
		registry:    mocks.NewMockRegistry(domain.ProviderGoogle, domain.ProviderLinkedIn),
	}
	env.svc = NewConnectionService(ConnectionServiceConfig{
		ConnectionStore: env.connections,
		AppConfigStore:  env.appConfigs,
		Registry:        env.registry,
	})
	_ = env.appConfigs.Save(context.Background(), &domain.AppConfig{
		Provider:     domain.ProviderGoogle,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "https://portfolio.example.com/api/v1/oauth/callback",
	})
	return env
}

func (env *connectionTestEnv) storeConnection(t *testing.T, expiresIn time.Duration, refreshToken string) {
	t.Helper()
	expiresAt := time.Now().Add(expiresIn)
	err := env.connections.Upsert(context.Background(), &domain.Connection{
		AdminEmail:   "owner@example.com",
		Provider:     domain.ProviderGoogle,
		AccessToken:  "stored-access",
		RefreshToken: refreshToken,
		ExpiresAt:    &expiresAt,
		Active:       true,
	})
	if err != nil {
		t.Fatalf("store connection: %v", err)
	}
}

func TestConnectionService_GetValidToken_FreshToken(t *testing.T) {
	env := newTestConnectionService(t)
	env.storeConnection(t, time.Hour, "stored-refresh")

	token, err := env.svc.GetValidToken(context.Background(), testAuthContext(), domain.ProviderGoogle)
	if err != nil {
		t.Fatalf("GetValidToken failed: %v", err)
	}
	if token != "stored-access" {
		t.Errorf("expected stored token, got %q", token)
	}
	if env.registry.Client(domain.ProviderGoogle).RefreshCalls != 0 {
		t.Error("fresh token must not trigger a refresh")
	}
}

func TestConnectionService_GetValidToken_NotConnected(t *testing.T) {
	env := newTestConnectionService(t)

	_, err := env.svc.GetValidToken(context.Background(), testAuthContext(), domain.ProviderGoogle)
	if !errors.Is(err, domain.ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestConnectionService_GetValidToken_RefreshesNearExpiry(t *testing.T) {
	env := newTestConnectionService(t)
	// Inside the refresh margin but not yet expired
	env.storeConnection(t, time.Minute, "stored-refresh")

	token, err := env.svc.GetValidToken(context.Background(), testAuthContext(), domain.ProviderGoogle)
	if err != nil {
		t.Fatalf("GetValidToken failed: %v", err)
	}
	if token != "refreshed-access" {
		t.Errorf("expected refreshed token, got %q", token)
	}
	if env.registry.Client(domain.ProviderGoogle).RefreshCalls != 1 {
		t.Errorf("expected exactly 1 refresh call, got %d", env.registry.Client(domain.ProviderGoogle).RefreshCalls)
	}
}

func TestConnectionService_Refresh_PreservesRefreshTokenWhenNotRotated(t *testing.T) {
	env := newTestConnectionService(t)
	env.storeConnection(t, time.Minute, "original-refresh")

	// Default mock response carries no refresh token
	if _, err := env.svc.GetValidToken(context.Background(), testAuthContext(), domain.ProviderGoogle); err != nil {
		t.Fatalf("GetValidToken failed: %v", err)
	}

	conn, _ := env.connections.Get(context.Background(), "owner@example.com", domain.ProviderGoogle)
	if conn.RefreshToken != "original-refresh" {
		t.Errorf("refresh token must be preserved when the provider does not rotate, got %q", conn.RefreshToken)
	}
}

func TestConnectionService_Refresh_StoresRotatedRefreshToken(t *testing.T) {
	env := newTestConnectionService(t)
	env.storeConnection(t, time.Minute, "original-refresh")

	env.registry.Client(domain.ProviderGoogle).RefreshFunc = func(ctx context.Context, clientID, clientSecret, refreshToken string) (*driven.TokenResponse, error) {
		return &driven.TokenResponse{AccessToken: "new-access", RefreshToken: "rotated-refresh", ExpiresIn: 3600}, nil
	}

	if _, err := env.svc.GetValidToken(context.Background(), testAuthContext(), domain.ProviderGoogle); err != nil {
		t.Fatalf("GetValidToken failed: %v", err)
	}

	conn, _ := env.connections.Get(context.Background(), "owner@example.com", domain.ProviderGoogle)
	if conn.RefreshToken != "rotated-refresh" {
		t.Errorf("rotated refresh token must be stored, got %q", conn.RefreshToken)
	}
}

func TestConnectionService_Refresh_InvalidGrantDeactivates(t *testing.T) {
	env := newTestConnectionService(t)
	env.storeConnection(t, time.Minute, "dead-refresh")

	env.registry.Client(domain.ProviderGoogle).RefreshFunc = func(ctx context.Context, clientID, clientSecret, refreshToken string) (*driven.TokenResponse, error) {
		return nil, &driven.ProviderError{Code: "invalid_grant"}
	}

	_, err := env.svc.GetValidToken(context.Background(), testAuthContext(), domain.ProviderGoogle)
	if !errors.Is(err, domain.ErrReauthorizationRequired) {
		t.Errorf("expected ErrReauthorizationRequired, got %v", err)
	}

	raw := env.connections.Raw("owner@example.com", domain.ProviderGoogle)
	if raw == nil || raw.Active {
		t.Error("connection must be deactivated after invalid_grant")
	}
}

func TestConnectionService_Refresh_InvalidGrantDetectsConcurrentWinner(t *testing.T) {
	env := newTestConnectionService(t)
	env.storeConnection(t, time.Minute, "stale-refresh")

	client := env.registry.Client(domain.ProviderGoogle)
	client.RefreshFunc = func(ctx context.Context, clientID, clientSecret, refreshToken string) (*driven.TokenResponse, error) {
		// Simulate a concurrent request winning the refresh race before
		// this one's provider call fails
		winnerExpiry := time.Now().Add(time.Hour)
		_ = env.connections.UpdateTokens(ctx, "owner@example.com", domain.ProviderGoogle, "winner-access", "winner-refresh", &winnerExpiry)
		return nil, &driven.ProviderError{Code: "invalid_grant"}
	}

	token, err := env.svc.GetValidToken(context.Background(), testAuthContext(), domain.ProviderGoogle)
	if err != nil {
		t.Fatalf("loser of the refresh race should adopt the winner's token: %v", err)
	}
	if token != "winner-access" {
		t.Errorf("expected winner's token, got %q", token)
	}

	raw := env.connections.Raw("owner@example.com", domain.ProviderGoogle)
	if raw == nil || !raw.Active {
		t.Error("connection must stay active when a concurrent refresh succeeded")
	}
}

func TestConnectionService_Refresh_TransientLeavesConnectionUntouched(t *testing.T) {
	env := newTestConnectionService(t)
	env.storeConnection(t, time.Minute, "stored-refresh")

	attempts := 0
	env.registry.Client(domain.ProviderGoogle).RefreshFunc = func(ctx context.Context, clientID, clientSecret, refreshToken string) (*driven.TokenResponse, error) {
		attempts++
		return nil, errors.New("gateway timeout")
	}

	_, err := env.svc.GetValidToken(context.Background(), testAuthContext(), domain.ProviderGoogle)
	if !errors.Is(err, domain.ErrRefreshTransient) {
		t.Errorf("expected ErrRefreshTransient, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected exactly one retry after a transient failure, got %d attempts", attempts)
	}

	raw := env.connections.Raw("owner@example.com", domain.ProviderGoogle)
	if raw == nil || !raw.Active {
		t.Error("transient failure must leave the connection active")
	}
	if raw.RefreshToken != "stored-refresh" {
		t.Error("transient failure must leave the stored tokens untouched")
	}
}

func TestConnectionService_Refresh_NoRefreshTokenExpired(t *testing.T) {
	env := newTestConnectionService(t)
	env.storeConnection(t, -time.Minute, "")

	_, err := env.svc.GetValidToken(context.Background(), testAuthContext(), domain.ProviderGoogle)
	if !errors.Is(err, domain.ErrReauthorizationRequired) {
		t.Errorf("expected ErrReauthorizationRequired, got %v", err)
	}

	raw := env.connections.Raw("owner@example.com", domain.ProviderGoogle)
	if raw == nil || raw.Active {
		t.Error("expired connection without refresh token must be deactivated")
	}
}

func TestConnectionService_Status(t *testing.T) {
	env := newTestConnectionService(t)
	expired := time.Now().Add(-time.Minute)
	_ = env.connections.Upsert(context.Background(), &domain.Connection{
		AdminEmail:    "owner@example.com",
		Provider:      domain.ProviderGoogle,
		AccessToken:   "access",
		RefreshToken:  "",
		ExpiresAt:     &expired,
		GrantedScopes: "openid profile",
		ProfileName:   "Site Owner",
		Active:        true,
	})

	statuses, err := env.svc.Status(context.Background(), testAuthContext())
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("expected a status per provider, got %d", len(statuses))
	}

	byProvider := make(map[domain.ProviderID]*domain.ConnectionStatus)
	for _, status := range statuses {
		byProvider[status.Provider] = status
	}

	google := byProvider[domain.ProviderGoogle]
	if !google.Configured || !google.Connected {
		t.Errorf("google should be configured and connected: %+v", google)
	}
	if !google.NeedsReauth {
		t.Error("expired connection without refresh token must report needs_reauth")
	}
	if len(google.GrantedScopes) != 2 {
		t.Errorf("expected granted scopes in status, got %v", google.GrantedScopes)
	}

	linkedin := byProvider[domain.ProviderLinkedIn]
	if linkedin.Configured || linkedin.Connected {
		t.Errorf("linkedin should be unconfigured and disconnected: %+v", linkedin)
	}
}

func TestConnectionService_Disconnect(t *testing.T) {
	env := newTestConnectionService(t)
	env.storeConnection(t, time.Hour, "stored-refresh")

	if err := env.svc.Disconnect(context.Background(), testAuthContext(), domain.ProviderGoogle); err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}

	raw := env.connections.Raw("owner@example.com", domain.ProviderGoogle)
	if raw == nil || raw.Active {
		t.Error("connection must be deactivated after disconnect")
	}
	if env.registry.Client(domain.ProviderGoogle).RevokeCalls == 0 {
		t.Error("disconnect should attempt upstream revocation")
	}
}

func TestConnectionService_Disconnect_RevocationFailureStillDisconnects(t *testing.T) {
	env := newTestConnectionService(t)
	env.storeConnection(t, time.Hour, "stored-refresh")

	env.registry.Client(domain.ProviderGoogle).RevokeFunc = func(ctx context.Context, clientID, clientSecret, token string) error {
		return errors.New("revocation endpoint down")
	}

	if err := env.svc.Disconnect(context.Background(), testAuthContext(), domain.ProviderGoogle); err != nil {
		t.Fatalf("Disconnect must succeed despite revocation failure: %v", err)
	}

	raw := env.connections.Raw("owner@example.com", domain.ProviderGoogle)
	if raw == nil || raw.Active {
		t.Error("local state must reach disconnected even when revocation fails")
	}
}

func TestConnectionService_Disconnect_NotConnected(t *testing.T) {
	env := newTestConnectionService(t)

	err := env.svc.Disconnect(context.Background(), testAuthContext(), domain.ProviderGoogle)
	if !errors.Is(err, domain.ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestConnectionService_MarkSynced(t *testing.T) {
	env := newTestConnectionService(t)
	env.storeConnection(t, time.Hour, "stored-refresh")

	if err := env.svc.MarkSynced(context.Background(), testAuthContext(), domain.ProviderGoogle); err != nil {
		t.Fatalf("MarkSynced failed: %v", err)
	}

	conn, _ := env.connections.Get(context.Background(), "owner@example.com", domain.ProviderGoogle)
	if conn.LastSyncAt == nil {
		t.Error("expected last_sync_at to be set")
	}
}
