package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/civic")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.App.Port)
	assert.Equal(t, 720, cfg.Auth.TokenTTLHours)
	assert.Equal(t, 720*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.CORS.AllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingSecretIsFatal(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/civic")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}

func TestValidate_MissingDSN(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("POSTGRES_DSN", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}

func TestValidate_AdminSeedRequiresPassword(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/civic")
	t.Setenv("ADMIN_EMAIL", "admin@x.com")
	t.Setenv("ADMIN_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}

func TestLoad_CORSOriginList(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/civic")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:8080, https://civic.example.org")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:8080", "https://civic.example.org"}, cfg.CORS.AllowedOrigins)
}
