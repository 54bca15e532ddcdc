package mocks

import (
	"context"
	"sync"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
)

// MockAppConfigStore is a mock implementation of AppConfigStore for testing
type MockAppConfigStore struct {
	mu      sync.RWMutex
	configs map[domain.ProviderID]*domain.AppConfig
}

// NewMockAppConfigStore creates a new MockAppConfigStore
func NewMockAppConfigStore() *MockAppConfigStore {
	return &MockAppConfigStore{
		configs: make(map[domain.ProviderID]*domain.AppConfig),
	}
}

func (m *MockAppConfigStore) Save(ctx context.Context, cfg *domain.AppConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *cfg
	m.configs[cfg.Provider] = &copied
	return nil
}

func (m *MockAppConfigStore) Get(ctx context.Context, provider domain.ProviderID) (*domain.AppConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg, ok := m.configs[provider]
	if !ok {
		return nil, nil
	}
	copied := *cfg
	return &copied, nil
}

func (m *MockAppConfigStore) List(ctx context.Context) ([]*domain.AppConfigSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var summaries []*domain.AppConfigSummary
	for _, cfg := range m.configs {
		summaries = append(summaries, cfg.ToSummary())
	}
	return summaries, nil
}

func (m *MockAppConfigStore) Clear(ctx context.Context, provider domain.ProviderID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.configs[provider]; !ok {
		return domain.ErrNotFound
	}
	delete(m.configs, provider)
	return nil
}
