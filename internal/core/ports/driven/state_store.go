package driven

import (
	"context"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
)

// StateTokenStore persists short-lived anti-CSRF state tokens.
// Tokens are single-use and expire after domain.StateTokenTTL.
type StateTokenStore interface {
	// Save persists a freshly issued state token, unused.
	Save(ctx context.Context, token *domain.StateToken) error

	// Consume atomically validates and retires a state token. It returns
	// the token only if it exists, is unexpired, and has not been consumed
	// before; the check and the retire happen in a single round trip so two
	// racing callbacks cannot both succeed. Unknown, expired, or replayed
	// values return nil, nil.
	Consume(ctx context.Context, value string) (*domain.StateToken, error)

	// Cleanup removes expired tokens. Called periodically from main.
	Cleanup(ctx context.Context) error
}
