package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "")
	t.Setenv("AUTH_REVOCATION_UNKNOWN_POLICY", "")
	t.Setenv("AUTH_LEGACY_OWNER_POLICY", "")
	t.Setenv("AUTH_VERIFY_SIGNATURES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, LedgerBackendPostgres, cfg.Ledger.Backend)
	assert.Equal(t, UnknownPolicyAllow, cfg.Auth.RevocationUnknownPolicy)
	assert.Equal(t, LegacyOwnerLocked, cfg.Auth.LegacyOwnerPolicy)
	assert.False(t, cfg.Auth.VerifySignatures)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "Redis")
	t.Setenv("AUTH_REVOCATION_UNKNOWN_POLICY", "deny")
	t.Setenv("AUTH_LEGACY_OWNER_POLICY", "open")
	t.Setenv("AUTH_VERIFY_SIGNATURES", "true")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, LedgerBackendRedis, cfg.Ledger.Backend)
	assert.Equal(t, UnknownPolicyDeny, cfg.Auth.RevocationUnknownPolicy)
	assert.Equal(t, LegacyOwnerOpen, cfg.Auth.LegacyOwnerPolicy)
	assert.True(t, cfg.Auth.VerifySignatures)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
}

func TestLoad_RejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "ledger backend", key: "LEDGER_BACKEND", val: "dynamo"},
		{name: "unknown policy", key: "AUTH_REVOCATION_UNKNOWN_POLICY", val: "maybe"},
		{name: "legacy policy", key: "AUTH_LEGACY_OWNER_POLICY", val: "admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	assert.Equal(t, time.Duration(0), AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
	assert.Equal(t, 5*time.Second, AppConfig{RequestTimeoutSeconds: 5}.RequestTimeout())
}
