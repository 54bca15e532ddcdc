package driven

import (
	"context"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
)

// SessionStore persists admin sessions.
type SessionStore interface {
	// Save stores a session
	Save(ctx context.Context, session *domain.Session) error

	// Get retrieves a session by ID
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Delete removes a session (logout)
	Delete(ctx context.Context, id string) error
}

// AdminStore persists administrator accounts.
type AdminStore interface {
	// GetByEmail retrieves an admin by email
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)

	// Save upserts an admin account
	Save(ctx context.Context, admin *domain.Admin) error

	// UpdateLastLogin bumps last_login_at
	UpdateLastLogin(ctx context.Context, id string) error
}
