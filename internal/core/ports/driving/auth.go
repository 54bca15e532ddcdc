package driving

import (
	"context"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
)

// AuthService handles admin authentication.
type AuthService interface {
	// Authenticate validates credentials and creates a session
	Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// ValidateToken validates a JWT and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)

	// Logout invalidates the session
	Logout(ctx context.Context, sessionID string) error
}
