package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestConnection_IsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"no expiry", nil, false},
		{"future", timePtr(time.Now().Add(time.Hour)), false},
		{"past", timePtr(time.Now().Add(-time.Minute)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &Connection{ExpiresAt: tt.expiresAt}
			if got := conn.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConnection_NeedsRefresh(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"no expiry", nil, false},
		{"well before margin", timePtr(time.Now().Add(time.Hour)), false},
		{"inside margin", timePtr(time.Now().Add(RefreshMargin - time.Minute)), true},
		{"already expired", timePtr(time.Now().Add(-time.Minute)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &Connection{ExpiresAt: tt.expiresAt}
			if got := conn.NeedsRefresh(); got != tt.want {
				t.Errorf("NeedsRefresh() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConnection_HasScope(t *testing.T) {
	conn := &Connection{GrantedScopes: "openid profile email"}

	if !conn.HasScope("profile") {
		t.Error("expected granted scope to be found")
	}
	if conn.HasScope("w_member_social") {
		t.Error("ungranted scope must not be found")
	}
	if conn.HasScope("prof") {
		t.Error("scope matching must be exact, not prefix")
	}
}

func TestConnection_TokensNeverSerialize(t *testing.T) {
	conn := &Connection{
		AdminEmail:   "owner@example.com",
		Provider:     ProviderGoogle,
		AccessToken:  "super-secret-access",
		RefreshToken: "super-secret-refresh",
	}

	data, err := json.Marshal(conn)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "super-secret") {
		t.Errorf("token material leaked into JSON: %s", data)
	}
}

func TestStateToken_IsExpired(t *testing.T) {
	fresh := &StateToken{ExpiresAt: time.Now().Add(StateTokenTTL)}
	if fresh.IsExpired() {
		t.Error("fresh token must not be expired")
	}

	stale := &StateToken{ExpiresAt: time.Now().Add(-time.Second)}
	if !stale.IsExpired() {
		t.Error("past-TTL token must be expired")
	}
}
