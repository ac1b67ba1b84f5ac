package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("AUTH_ENABLED", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, StoreFile, cfg.StoreBackend)
	assert.False(t, cfg.AuthEnabled)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, "key", cfg.GeminiAPIKey)
}

func TestLoad_RejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_RejectsPortOutOfRange(t *testing.T) {
	cfg := &Config{Port: 70000, StoreBackend: StoreMemory}
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsUnknownBackend(t *testing.T) {
	cfg := &Config{Port: 8080, StoreBackend: "redis"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_PostgresRequiresDatabaseURL(t *testing.T) {
	cfg := &Config{Port: 8080, StoreBackend: StorePostgres}
	assert.Error(t, cfg.Validate())

	cfg.DatabaseURL = "postgres://localhost/studio"
	assert.NoError(t, cfg.Validate())
}

func TestNewJWTConfig_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTConfig()
	assert.Error(t, err)
}

func TestNewJWTConfig_DefaultsExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfig_RejectsZeroHours(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	_, err := NewJWTConfig()
	assert.Error(t, err)
}
