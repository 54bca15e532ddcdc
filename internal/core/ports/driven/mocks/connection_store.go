package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
)

type connectionKey struct {
	adminEmail string
	provider   domain.ProviderID
}

// MockConnectionStore is a mock implementation of ConnectionStore for testing
type MockConnectionStore struct {
	mu          sync.Mutex
	connections map[connectionKey]*domain.Connection

	// UpdateTokensCalls counts UpdateTokens invocations
	UpdateTokensCalls int
}

// NewMockConnectionStore creates a new MockConnectionStore
func NewMockConnectionStore() *MockConnectionStore {
	return &MockConnectionStore{
		connections: make(map[connectionKey]*domain.Connection),
	}
}

func (m *MockConnectionStore) Upsert(ctx context.Context, conn *domain.Connection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *conn
	copied.Active = true
	m.connections[connectionKey{conn.AdminEmail, conn.Provider}] = &copied
	return nil
}

func (m *MockConnectionStore) Get(ctx context.Context, adminEmail string, provider domain.ProviderID) (*domain.Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conn, ok := m.connections[connectionKey{adminEmail, provider}]
	if !ok || !conn.Active {
		return nil, nil
	}
	copied := *conn
	return &copied, nil
}

func (m *MockConnectionStore) ListByAdmin(ctx context.Context, adminEmail string) ([]*domain.Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var conns []*domain.Connection
	for key, conn := range m.connections {
		if key.adminEmail == adminEmail && conn.Active {
			copied := *conn
			conns = append(conns, &copied)
		}
	}
	return conns, nil
}

func (m *MockConnectionStore) UpdateTokens(ctx context.Context, adminEmail string, provider domain.ProviderID, accessToken, refreshToken string, expiresAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateTokensCalls++
	conn, ok := m.connections[connectionKey{adminEmail, provider}]
	if !ok {
		return domain.ErrNotFound
	}
	conn.AccessToken = accessToken
	if refreshToken != "" {
		conn.RefreshToken = refreshToken
	}
	conn.ExpiresAt = expiresAt
	conn.UpdatedAt = time.Now()
	return nil
}

func (m *MockConnectionStore) Deactivate(ctx context.Context, adminEmail string, provider domain.ProviderID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	conn, ok := m.connections[connectionKey{adminEmail, provider}]
	if !ok {
		return domain.ErrNotFound
	}
	conn.Active = false
	return nil
}

func (m *MockConnectionStore) TouchUsed(ctx context.Context, adminEmail string, provider domain.ProviderID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	conn, ok := m.connections[connectionKey{adminEmail, provider}]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	conn.LastUsedAt = &now
	return nil
}

func (m *MockConnectionStore) TouchSync(ctx context.Context, adminEmail string, provider domain.ProviderID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	conn, ok := m.connections[connectionKey{adminEmail, provider}]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	conn.LastSyncAt = &now
	return nil
}

// Raw returns the stored connection without the active filter, for
// asserting on deactivated rows
func (m *MockConnectionStore) Raw(adminEmail string, provider domain.ProviderID) *domain.Connection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connections[connectionKey{adminEmail, provider}]
}
