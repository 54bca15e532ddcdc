package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseProviderID(t *testing.T) {
	tests := []struct {
		input   string
		want    ProviderID
		wantErr bool
	}{
		{"google", ProviderGoogle, false},
		{"linkedin", ProviderLinkedIn, false},
		{"GOOGLE", ProviderGoogle, false},
		{" linkedin ", ProviderLinkedIn, false},
		{"github", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseProviderID(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownProvider) {
					t.Errorf("expected ErrUnknownProvider, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseProviderID(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitScopes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"space delimited", "openid profile email", []string{"openid", "profile", "email"}},
		{"comma delimited", "openid,profile", []string{"openid", "profile"}},
		{"mixed and padded", " openid, profile  email ", []string{"openid", "profile", "email"}},
		{"empty", "", nil},
		{"only separators", " , ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitScopes(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitScopes(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestProviderDescriptor_RequiredScopes(t *testing.T) {
	desc := &ProviderDescriptor{
		ScopeCatalog: []ScopeInfo{
			{Scope: "openid", Required: true},
			{Scope: "profile", Required: true},
			{Scope: "optional.scope", Required: false},
		},
	}

	required := desc.RequiredScopes()
	if !reflect.DeepEqual(required, []string{"openid", "profile"}) {
		t.Errorf("RequiredScopes() = %v", required)
	}

	if !desc.KnowsScope("optional.scope") {
		t.Error("catalog scope not recognized")
	}
	if desc.KnowsScope("rogue.scope") {
		t.Error("non-catalog scope must not be recognized")
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"abcd", "****"},
		{"ab", "**"},
		{"supersecret", "*******cret"},
	}

	for _, tt := range tests {
		if got := MaskSecret(tt.input); got != tt.want {
			t.Errorf("MaskSecret(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestAppConfig_IsConfigured(t *testing.T) {
	var nilCfg *AppConfig
	if nilCfg.IsConfigured() {
		t.Error("nil config must not be configured")
	}

	if (&AppConfig{ClientID: "id"}).IsConfigured() {
		t.Error("config without a secret must not be configured")
	}

	full := &AppConfig{ClientID: "id", ClientSecret: "secret", RedirectURI: "https://example.com/cb"}
	if !full.IsConfigured() {
		t.Error("complete config must be configured")
	}
}
