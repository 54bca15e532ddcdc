package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driven"
)

// Ensure StateTokenStore implements the interface.
var _ driven.StateTokenStore = (*StateTokenStore)(nil)

// statePrefix namespaces state token keys.
const statePrefix = "oauth:state:"

// StateTokenStore implements driven.StateTokenStore using Redis.
// Tokens expire via Redis TTL; Consume uses GETDEL so validation and
// retirement are one atomic command.
type StateTokenStore struct {
	client *redis.Client
}

// NewStateTokenStore creates a new Redis-backed state token store.
func NewStateTokenStore(client *redis.Client) *StateTokenStore {
	return &StateTokenStore{client: client}
}

// Save stores a freshly issued state token with TTL.
func (s *StateTokenStore) Save(ctx context.Context, token *domain.StateToken) error {
	now := time.Now()
	if token.CreatedAt.IsZero() {
		token.CreatedAt = now
	}
	if token.ExpiresAt.IsZero() {
		token.ExpiresAt = now.Add(domain.StateTokenTTL)
	}

	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		// Already expired, nothing to store
		return nil
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshal state token: %w", err)
	}

	if err := s.client.Set(ctx, statePrefix+token.Value, data, ttl).Err(); err != nil {
		return fmt.Errorf("save state token: %w", err)
	}
	return nil
}

// Consume atomically validates and retires the token. GETDEL guarantees a
// single winner when two callbacks race on the same state.
func (s *StateTokenStore) Consume(ctx context.Context, value string) (*domain.StateToken, error) {
	data, err := s.client.GetDel(ctx, statePrefix+value).Bytes()
	if err == redis.Nil {
		return nil, nil // Unknown, expired, or already consumed
	}
	if err != nil {
		return nil, fmt.Errorf("consume state token: %w", err)
	}

	var token domain.StateToken
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("decode state token: %w", err)
	}

	// TTL normally handles expiry; the payload timestamp is checked too in
	// case of clock drift between writer and redis.
	if token.IsExpired() {
		return nil, nil
	}

	return &token, nil
}

// Cleanup is a no-op: Redis TTL evicts expired tokens.
func (s *StateTokenStore) Cleanup(ctx context.Context) error {
	return nil
}
