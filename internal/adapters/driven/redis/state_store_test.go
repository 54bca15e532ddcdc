package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
)

// setupTestStateStore creates a test Redis client and StateTokenStore
func setupTestStateStore(t *testing.T) (*StateTokenStore, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewStateTokenStore(client)

	return store, mr, func() {
		client.Close()
		mr.Close()
	}
}

func testStateToken(value string) *domain.StateToken {
	now := time.Now()
	return &domain.StateToken{
		Value:           value,
		AdminEmail:      "owner@example.com",
		Provider:        domain.ProviderGoogle,
		RequestedScopes: "openid profile",
		RedirectURI:     "https://portfolio.example.com/api/v1/oauth/callback",
		CreatedAt:       now,
		ExpiresAt:       now.Add(domain.StateTokenTTL),
	}
}

func TestStateTokenStore_SaveAndConsume(t *testing.T) {
	store, _, cleanup := setupTestStateStore(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.Save(ctx, testStateToken("state-abc")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	token, err := store.Consume(ctx, "state-abc")
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if token == nil {
		t.Fatal("expected token, got nil")
	}
	if token.AdminEmail != "owner@example.com" {
		t.Errorf("AdminEmail: got %q", token.AdminEmail)
	}
	if token.Provider != domain.ProviderGoogle {
		t.Errorf("Provider: got %q", token.Provider)
	}
	if token.RequestedScopes != "openid profile" {
		t.Errorf("RequestedScopes: got %q", token.RequestedScopes)
	}
}

func TestStateTokenStore_ConsumeIsSingleUse(t *testing.T) {
	store, _, cleanup := setupTestStateStore(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.Save(ctx, testStateToken("state-once")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	first, err := store.Consume(ctx, "state-once")
	if err != nil || first == nil {
		t.Fatalf("first consume should succeed: token=%v err=%v", first, err)
	}

	second, err := store.Consume(ctx, "state-once")
	if err != nil {
		t.Fatalf("replayed consume must not error: %v", err)
	}
	if second != nil {
		t.Error("replayed consume must return nil")
	}
}

func TestStateTokenStore_ConsumeUnknown(t *testing.T) {
	store, _, cleanup := setupTestStateStore(t)
	defer cleanup()

	token, err := store.Consume(context.Background(), "never-issued")
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if token != nil {
		t.Error("unknown state must return nil, nil")
	}
}

func TestStateTokenStore_ExpiredByTTL(t *testing.T) {
	store, mr, cleanup := setupTestStateStore(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.Save(ctx, testStateToken("state-ttl")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// miniredis TTLs advance manually
	mr.FastForward(domain.StateTokenTTL + time.Second)

	token, err := store.Consume(ctx, "state-ttl")
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if token != nil {
		t.Error("expired state must return nil, nil")
	}
}

func TestStateTokenStore_SaveAlreadyExpired(t *testing.T) {
	store, mr, cleanup := setupTestStateStore(t)
	defer cleanup()

	expired := testStateToken("state-dead")
	expired.ExpiresAt = time.Now().Add(-time.Minute)

	if err := store.Save(context.Background(), expired); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if mr.Exists(statePrefix + "state-dead") {
		t.Error("already-expired token must not be stored")
	}
}
