package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/pos")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 12*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "KES", cfg.CurrencySymbol)
	assert.Equal(t, 15*time.Minute, cfg.IdempotencySweepInterval)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_URL=postgres://file/pos\nJWT_SECRET=from-file\nCURRENCY_SYMBOL=NGN\nPORT=9090\n"), 0o600))

	t.Setenv("PORT", "7070")
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")
	t.Setenv("CURRENCY_SYMBOL", "")
	os.Unsetenv("CURRENCY_SYMBOL")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://file/pos", cfg.DatabaseURL)
	assert.Equal(t, "NGN", cfg.CurrencySymbol)
	assert.Equal(t, 7070, cfg.Port, "environment wins over .env")
}
