package auth

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libris/config"
	"libris/internal/domain/entity"
)

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Signing = secret

	return cfg
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_signing_secret_key_very_long_for_testing"), newTestLogger())
	require.NoError(t, err)

	token, err := svc.Issue("alice", entity.RoleAdmin, time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, entity.RoleAdmin, claims.AccountRole())
}

func TestJWTService_DefaultTTL(t *testing.T) {
	cfg := newTestConfig("test_signing_secret_key_very_long_for_testing")
	svc, err := NewJWTService(cfg, newTestLogger())
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, svc.AccessTokenTTL())

	token, err := svc.Issue("bob", entity.RoleUser, svc.AccessTokenTTL())
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username())
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_NonPositiveTTLIsNotExtended(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_signing_secret_key_very_long_for_testing"), newTestLogger())
	require.NoError(t, err)

	// Issue never substitutes the default: a zero ttl expires at issuance
	// and must not survive verification.
	for _, ttl := range []time.Duration{0, -time.Minute} {
		token, err := svc.Issue("alice", entity.RoleUser, ttl)
		require.NoError(t, err)

		claims, err := svc.Verify(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	}
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_signing_secret_key_very_long_for_testing"), newTestLogger())
	require.NoError(t, err)

	// Already in the past; expiry is strictly enforced inside Verify.
	token, err := svc.Issue("alice", entity.RoleUser, -time.Minute)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_signing_secret_key_very_long_for_testing"), newTestLogger())
	require.NoError(t, err)

	claims, err := svc.Verify("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTestConfig("first_secret_key_very_long_for_testing"), newTestLogger())
	require.NoError(t, err)

	verifier, err := NewJWTService(newTestConfig("second_secret_key_very_long_for_testing"), newTestLogger())
	require.NoError(t, err)

	token, err := issuer.Issue("alice", entity.RoleUser, time.Minute)
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecretInProduction(t *testing.T) {
	cfg := newTestConfig("")
	cfg.Env.Env = "production"

	svc, err := NewJWTService(cfg, newTestLogger())
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "signing secret must be provided")
}

func TestJWTService_EmptySecretFallsBackOutsideProduction(t *testing.T) {
	cfg := newTestConfig("")
	cfg.Env.Env = "local"

	svc, err := NewJWTService(cfg, newTestLogger())
	require.NoError(t, err)

	token, err := svc.Issue("alice", entity.RoleUser, time.Minute)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
}
