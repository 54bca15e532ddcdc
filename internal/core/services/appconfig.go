package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driven"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driving"
)

// Ensure appConfigService implements AppConfigService
var _ driving.AppConfigService = (*appConfigService)(nil)

// appConfigService implements the AppConfigService interface.
type appConfigService struct {
	store    driven.AppConfigStore
	registry driven.ProviderRegistry
	logger   *slog.Logger
}

// NewAppConfigService creates a new app configuration service.
func NewAppConfigService(store driven.AppConfigStore, registry driven.ProviderRegistry, logger *slog.Logger) driving.AppConfigService {
	if logger == nil {
		logger = slog.Default()
	}
	return &appConfigService{
		store:    store,
		registry: registry,
		logger:   logger,
	}
}

// Save validates and upserts the single active configuration for a provider.
func (s *appConfigService) Save(ctx context.Context, authCtx *domain.AuthContext, req driving.SaveConfigRequest) (*domain.AppConfigSummary, error) {
	if s.registry.Get(req.Provider) == nil {
		return nil, domain.ErrUnknownProvider
	}
	if strings.TrimSpace(req.ClientID) == "" || strings.TrimSpace(req.ClientSecret) == "" {
		return nil, fmt.Errorf("%w: client id and secret are required", domain.ErrInvalidInput)
	}
	if err := validateRedirectURI(req.RedirectURI); err != nil {
		return nil, err
	}

	now := time.Now()
	cfg := &domain.AppConfig{
		Provider:     req.Provider,
		AppName:      strings.TrimSpace(req.AppName),
		ClientID:     strings.TrimSpace(req.ClientID),
		ClientSecret: req.ClientSecret,
		RedirectURI:  strings.TrimSpace(req.RedirectURI),
		AdminEmail:   authCtx.Email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("save app config: %w", err)
	}

	s.logger.Info("oauth app configured",
		"provider", cfg.Provider,
		"admin", authCtx.Email)

	return cfg.ToSummary(), nil
}

// Get returns the masked configuration, or an unconfigured summary.
func (s *appConfigService) Get(ctx context.Context, provider domain.ProviderID) (*domain.AppConfigSummary, error) {
	if s.registry.Get(provider) == nil {
		return nil, domain.ErrUnknownProvider
	}

	cfg, err := s.store.Get(ctx, provider)
	if err != nil {
		return nil, fmt.Errorf("get app config: %w", err)
	}
	if cfg == nil {
		// Not configured is a state the UI renders, not an error
		return &domain.AppConfigSummary{Provider: provider, Configured: false}, nil
	}

	return cfg.ToSummary(), nil
}

// List returns summaries for every supported provider, configured or not.
func (s *appConfigService) List(ctx context.Context) ([]*domain.AppConfigSummary, error) {
	stored, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list app configs: %w", err)
	}

	byProvider := make(map[domain.ProviderID]*domain.AppConfigSummary, len(stored))
	for _, summary := range stored {
		byProvider[summary.Provider] = summary
	}

	var summaries []*domain.AppConfigSummary
	for _, desc := range s.registry.Descriptors() {
		if summary, ok := byProvider[desc.ID]; ok {
			summaries = append(summaries, summary)
			continue
		}
		summaries = append(summaries, &domain.AppConfigSummary{Provider: desc.ID, Configured: false})
	}

	return summaries, nil
}

// Providers returns descriptors for the closed provider set, annotated
// with the configured flag.
func (s *appConfigService) Providers(ctx context.Context) ([]*driving.ProviderCatalogEntry, error) {
	stored, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list app configs: %w", err)
	}

	configured := make(map[domain.ProviderID]bool, len(stored))
	for _, summary := range stored {
		configured[summary.Provider] = summary.Configured
	}

	var entries []*driving.ProviderCatalogEntry
	for _, desc := range s.registry.Descriptors() {
		entries = append(entries, &driving.ProviderCatalogEntry{
			ProviderDescriptor: *desc,
			Configured:         configured[desc.ID],
		})
	}

	return entries, nil
}

// Clear removes the configuration for a provider.
func (s *appConfigService) Clear(ctx context.Context, provider domain.ProviderID) error {
	if s.registry.Get(provider) == nil {
		return domain.ErrUnknownProvider
	}

	if err := s.store.Clear(ctx, provider); err != nil {
		return fmt.Errorf("clear app config: %w", err)
	}

	s.logger.Info("oauth app configuration cleared", "provider", provider)
	return nil
}

// validateRedirectURI rejects redirect URIs that are not absolute http(s) URLs.
func validateRedirectURI(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: redirect uri must be an absolute http(s) URL", domain.ErrInvalidInput)
	}
	return nil
}
