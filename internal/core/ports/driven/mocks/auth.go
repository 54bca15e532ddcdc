package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
)

// MockAuthAdapter is a mock implementation of AuthAdapter for testing.
// Passwords are compared in plain text and tokens are transparent strings.
type MockAuthAdapter struct{}

// NewMockAuthAdapter creates a new MockAuthAdapter
func NewMockAuthAdapter() *MockAuthAdapter {
	return &MockAuthAdapter{}
}

func (m *MockAuthAdapter) HashPassword(password string) (string, error) {
	return password, nil
}

func (m *MockAuthAdapter) VerifyPassword(password, hash string) bool {
	return password == hash
}

func (m *MockAuthAdapter) GenerateToken(claims *domain.TokenClaims) (string, error) {
	return fmt.Sprintf("token|%s|%s|%s", claims.AdminID, claims.Email, claims.SessionID), nil
}

func (m *MockAuthAdapter) ParseToken(token string) (*domain.TokenClaims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 4 || parts[0] != "token" {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.TokenClaims{
		AdminID:   parts[1],
		Email:     parts[2],
		SessionID: parts[3],
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}, nil
}

// MockAdminStore is a mock implementation of AdminStore for testing
type MockAdminStore struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.Admin
}

// NewMockAdminStore creates a new MockAdminStore
func NewMockAdminStore() *MockAdminStore {
	return &MockAdminStore{byEmail: make(map[string]*domain.Admin)}
}

func (m *MockAdminStore) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	admin, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return admin, nil
}

func (m *MockAdminStore) Save(ctx context.Context, admin *domain.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byEmail[admin.Email] = admin
	return nil
}

func (m *MockAdminStore) UpdateLastLogin(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, admin := range m.byEmail {
		if admin.ID == id {
			now := time.Now()
			admin.LastLoginAt = &now
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockSessionStore is a mock implementation of SessionStore for testing
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewMockSessionStore creates a new MockSessionStore
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[string]*domain.Session)}
}

func (m *MockSessionStore) Save(ctx context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
