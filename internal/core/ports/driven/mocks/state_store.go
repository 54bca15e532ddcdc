package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
)

// MockStateTokenStore is a mock implementation of StateTokenStore for testing
type MockStateTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*domain.StateToken

	// ConsumeCalls counts Consume invocations, consumed or not
	ConsumeCalls int
}

// NewMockStateTokenStore creates a new MockStateTokenStore
func NewMockStateTokenStore() *MockStateTokenStore {
	return &MockStateTokenStore{
		tokens: make(map[string]*domain.StateToken),
	}
}

func (m *MockStateTokenStore) Save(ctx context.Context, token *domain.StateToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token.Value] = token
	return nil
}

func (m *MockStateTokenStore) Consume(ctx context.Context, value string) (*domain.StateToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConsumeCalls++
	token, ok := m.tokens[value]
	if !ok {
		return nil, nil
	}
	delete(m.tokens, value)
	if token.IsExpired() {
		return nil, nil
	}
	return token, nil
}

func (m *MockStateTokenStore) Cleanup(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for value, token := range m.tokens {
		if now.After(token.ExpiresAt) {
			delete(m.tokens, value)
		}
	}
	return nil
}

// Len reports the number of stored tokens
func (m *MockStateTokenStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}
