package config

import (
	"testing"
	"time"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"secretKey": map[string]any{
			"signing": "",
		},
		"auth": map[string]any{
			"defaultRole": "user",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "SECRETKEY_SIGNING", want: "secretKey.signing"},
		{envKey: "AUTH_DEFAULTROLE", want: "auth.defaultRole"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.DefaultRole(); got != "admin" {
		t.Fatalf("DefaultRole() = %q, want %q", got, "admin")
	}
	if got := cfg.AccessTokenTTL(); got != 30*time.Minute {
		t.Fatalf("AccessTokenTTL() = %v, want %v", got, 30*time.Minute)
	}
	if got := cfg.CredentialBackend(); got != "postgres" {
		t.Fatalf("CredentialBackend() = %q, want %q", got, "postgres")
	}

	cfg.Auth = &AuthConfig{
		DefaultRole:       "user",
		AccessTokenTTL:    time.Minute,
		CredentialBackend: "memory",
	}

	if got := cfg.DefaultRole(); got != "user" {
		t.Fatalf("DefaultRole() = %q, want %q", got, "user")
	}
	if got := cfg.AccessTokenTTL(); got != time.Minute {
		t.Fatalf("AccessTokenTTL() = %v, want %v", got, time.Minute)
	}
	if got := cfg.CredentialBackend(); got != "memory" {
		t.Fatalf("CredentialBackend() = %q, want %q", got, "memory")
	}
}
