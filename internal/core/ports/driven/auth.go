package driven

import "github.com/blackburnd/portfolio-core/internal/core/domain"

// AuthAdapter handles password hashing and admin token operations.
type AuthAdapter interface {
	// HashPassword generates a password hash
	HashPassword(password string) (string, error)

	// VerifyPassword checks a password against a hash
	VerifyPassword(password, hash string) bool

	// GenerateToken creates a signed JWT from claims
	GenerateToken(claims *domain.TokenClaims) (string, error)

	// ParseToken validates a JWT and returns its claims
	ParseToken(token string) (*domain.TokenClaims, error)
}
