package integration

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driven"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driven/mocks"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driving"
	"github.com/blackburnd/portfolio-core/internal/core/services"
)

func TestOAuthLifecycle(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

// world carries the wired services and per-scenario results. A fresh one is
// built before every scenario.
type world struct {
	appConfigStore  *mocks.MockAppConfigStore
	stateStore      *mocks.MockStateTokenStore
	connectionStore *mocks.MockConnectionStore
	registry        *mocks.MockRegistry

	oauthService      driving.OAuthFlowService
	connectionService driving.ConnectionService
	appConfigService  driving.AppConfigService

	authCtx *domain.AuthContext

	start          *driving.StartResponse
	callbackResult *driving.CallbackResult
	callbackErr    error
	token          string
	tokenErr       error
}

func (w *world) reset() {
	w.appConfigStore = mocks.NewMockAppConfigStore()
	w.stateStore = mocks.NewMockStateTokenStore()
	w.connectionStore = mocks.NewMockConnectionStore()
	w.registry = mocks.NewMockRegistry(domain.ProviderGoogle, domain.ProviderLinkedIn)

	w.oauthService = services.NewOAuthFlowService(services.OAuthFlowConfig{
		AppConfigStore:  w.appConfigStore,
		StateStore:      w.stateStore,
		ConnectionStore: w.connectionStore,
		Registry:        w.registry,
	})
	w.connectionService = services.NewConnectionService(services.ConnectionServiceConfig{
		ConnectionStore: w.connectionStore,
		AppConfigStore:  w.appConfigStore,
		Registry:        w.registry,
	})
	w.appConfigService = services.NewAppConfigService(w.appConfigStore, w.registry, nil)

	w.authCtx = &domain.AuthContext{
		AdminID:   "admin-1",
		Email:     "owner@example.com",
		Name:      "Owner",
		SessionID: "session-1",
	}

	w.start = nil
	w.callbackResult = nil
	w.callbackErr = nil
	w.token = ""
	w.tokenErr = nil
}

func (w *world) theGoogleCredentialsAreConfigured() error {
	_, err := w.appConfigService.Save(context.Background(), w.authCtx, driving.SaveConfigRequest{
		Provider:     domain.ProviderGoogle,
		AppName:      "Portfolio Site",
		ClientID:     "client-id-123",
		ClientSecret: "client-secret-456",
		RedirectURI:  "https://example.com/api/v1/oauth/callback",
	})
	return err
}

func (w *world) theAdminStartsAnAuthorizationFor(provider string) error {
	id, err := domain.ParseProviderID(provider)
	if err != nil {
		return err
	}
	w.start, err = w.oauthService.Start(context.Background(), w.authCtx, driving.StartRequest{Provider: id})
	return err
}

func (w *world) theProviderRedirectsBackWithAValidCode() error {
	if w.start == nil {
		return errors.New("no authorization was started")
	}
	w.callbackResult, w.callbackErr = w.oauthService.Callback(context.Background(), driving.CallbackRequest{
		Code:  "test-code",
		State: w.start.State,
	})
	return nil
}

func (w *world) theProviderRedirectsBackWithTheSameStateAgain() error {
	w.callbackResult, w.callbackErr = w.oauthService.Callback(context.Background(), driving.CallbackRequest{
		Code:  "test-code",
		State: w.start.State,
	})
	return nil
}

func (w *world) theProviderRedirectsBackWithError(errCode string) error {
	if w.start == nil {
		return errors.New("no authorization was started")
	}
	w.callbackResult, w.callbackErr = w.oauthService.Callback(context.Background(), driving.CallbackRequest{
		State: w.start.State,
		Error: errCode,
	})
	return nil
}

func (w *world) theCallbackOutcomeIs(outcome string) error {
	if w.callbackResult == nil {
		return fmt.Errorf("no callback result, err: %v", w.callbackErr)
	}
	if string(w.callbackResult.Outcome) != outcome {
		return fmt.Errorf("outcome = %q, want %q", w.callbackResult.Outcome, outcome)
	}
	return nil
}

func (w *world) theCallbackFailsWithoutReachingTheTokenExchangeTwice() error {
	if !errors.Is(w.callbackErr, domain.ErrStateInvalid) {
		return fmt.Errorf("err = %v, want ErrStateInvalid", w.callbackErr)
	}
	calls := w.registry.Client(domain.ProviderGoogle).ExchangeCalls
	if calls != 1 {
		return fmt.Errorf("exchange calls = %d, want 1", calls)
	}
	return nil
}

func (w *world) anActiveConnectionExists(provider string) error {
	id, err := domain.ParseProviderID(provider)
	if err != nil {
		return err
	}
	conn, err := w.connectionStore.Get(context.Background(), w.authCtx.Email, id)
	if err != nil {
		return err
	}
	if conn == nil {
		return fmt.Errorf("no active %s connection", provider)
	}
	return nil
}

func (w *world) noConnectionExists(provider string) error {
	id, err := domain.ParseProviderID(provider)
	if err != nil {
		return err
	}
	conn, err := w.connectionStore.Get(context.Background(), w.authCtx.Email, id)
	if err != nil {
		return err
	}
	if conn != nil {
		return fmt.Errorf("found an active %s connection", provider)
	}
	return nil
}

func (w *world) theGrantedScopesEqualTheRequestedScopes() error {
	conn, err := w.connectionStore.Get(context.Background(), w.authCtx.Email, domain.ProviderGoogle)
	if err != nil {
		return err
	}
	if conn == nil {
		return errors.New("no active google connection")
	}
	if conn.GrantedScopes == "" || conn.GrantedScopes != conn.RequestedScopes {
		return fmt.Errorf("granted = %q, requested = %q", conn.GrantedScopes, conn.RequestedScopes)
	}
	return nil
}

func (w *world) anActiveConnectionNearExpiry(provider string) error {
	if err := w.theAdminStartsAnAuthorizationFor(provider); err != nil {
		return err
	}
	if err := w.theProviderRedirectsBackWithAValidCode(); err != nil {
		return err
	}
	if w.callbackErr != nil {
		return w.callbackErr
	}
	id, _ := domain.ParseProviderID(provider)
	conn := w.connectionStore.Raw(w.authCtx.Email, id)
	if conn == nil {
		return errors.New("connection was not stored")
	}
	soon := time.Now().Add(time.Minute)
	conn.ExpiresAt = &soon
	return nil
}

func (w *world) theProviderRejectsTheRefreshTokenWith(code string) error {
	w.registry.Client(domain.ProviderGoogle).RefreshFunc = func(ctx context.Context, clientID, clientSecret, refreshToken string) (*driven.TokenResponse, error) {
		return nil, &driven.ProviderError{Code: code, Description: "token has been revoked"}
	}
	return nil
}

func (w *world) theProviderRevocationEndpointIsUnreachable() error {
	w.registry.Client(domain.ProviderGoogle).RevokeFunc = func(ctx context.Context, clientID, clientSecret, token string) error {
		return errors.New("connection refused")
	}
	return nil
}

func (w *world) theAdminRequestsAValidTokenFor(provider string) error {
	id, err := domain.ParseProviderID(provider)
	if err != nil {
		return err
	}
	w.token, w.tokenErr = w.connectionService.GetValidToken(context.Background(), w.authCtx, id)
	return nil
}

func (w *world) theTokenComesFromARefreshCall() error {
	if w.tokenErr != nil {
		return w.tokenErr
	}
	if w.token != "refreshed-access" {
		return fmt.Errorf("token = %q, want the refreshed one", w.token)
	}
	if calls := w.registry.Client(domain.ProviderGoogle).RefreshCalls; calls != 1 {
		return fmt.Errorf("refresh calls = %d, want 1", calls)
	}
	return nil
}

func (w *world) theStoredRefreshTokenIsPreserved() error {
	conn := w.connectionStore.Raw(w.authCtx.Email, domain.ProviderGoogle)
	if conn == nil {
		return errors.New("connection was not stored")
	}
	if conn.RefreshToken != "refresh-test-code" {
		return fmt.Errorf("refresh token = %q, want the original", conn.RefreshToken)
	}
	return nil
}

func (w *world) theRequestFailsRequiringReauthorization() error {
	if !errors.Is(w.tokenErr, domain.ErrReauthorizationRequired) {
		return fmt.Errorf("err = %v, want ErrReauthorizationRequired", w.tokenErr)
	}
	return nil
}

func (w *world) theAdminDisconnects(provider string) error {
	id, err := domain.ParseProviderID(provider)
	if err != nil {
		return err
	}
	return w.connectionService.Disconnect(context.Background(), w.authCtx, id)
}

func initializeScenario(ctx *godog.ScenarioContext) {
	w := &world{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		w.reset()
		return ctx, nil
	})

	ctx.Step(`^the google application credentials are configured$`, w.theGoogleCredentialsAreConfigured)
	ctx.Step(`^the admin starts an authorization for "([^"]*)"$`, w.theAdminStartsAnAuthorizationFor)
	ctx.Step(`^the provider redirects back with a valid code$`, w.theProviderRedirectsBackWithAValidCode)
	ctx.Step(`^the provider redirects back with the same state again$`, w.theProviderRedirectsBackWithTheSameStateAgain)
	ctx.Step(`^the provider redirects back with error "([^"]*)"$`, w.theProviderRedirectsBackWithError)
	ctx.Step(`^the callback outcome is "([^"]*)"$`, w.theCallbackOutcomeIs)
	ctx.Step(`^the callback fails without reaching the token exchange twice$`, w.theCallbackFailsWithoutReachingTheTokenExchangeTwice)
	ctx.Step(`^an active "([^"]*)" connection exists$`, w.anActiveConnectionExists)
	ctx.Step(`^no "([^"]*)" connection exists$`, w.noConnectionExists)
	ctx.Step(`^the granted scopes equal the requested scopes$`, w.theGrantedScopesEqualTheRequestedScopes)
	ctx.Step(`^an active "([^"]*)" connection whose access token is near expiry$`, w.anActiveConnectionNearExpiry)
	ctx.Step(`^the provider rejects the refresh token with "([^"]*)"$`, w.theProviderRejectsTheRefreshTokenWith)
	ctx.Step(`^the provider revocation endpoint is unreachable$`, w.theProviderRevocationEndpointIsUnreachable)
	ctx.Step(`^the admin requests a valid token for "([^"]*)"$`, w.theAdminRequestsAValidTokenFor)
	ctx.Step(`^the token comes from a refresh call$`, w.theTokenComesFromARefreshCall)
	ctx.Step(`^the stored refresh token is preserved$`, w.theStoredRefreshTokenIsPreserved)
	ctx.Step(`^the request fails requiring reauthorization$`, w.theRequestFailsRequiringReauthorization)
	ctx.Step(`^the admin disconnects "([^"]*)"$`, w.theAdminDisconnects)
}
