package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, driver, dsn, user, password, libDir string) {
	t.Helper()
	t.Setenv("DB_DRIVER", driver)
	t.Setenv("DB_DSN", dsn)
	t.Setenv("DB_USER", user)
	t.Setenv("DB_PASSWORD", password)
	t.Setenv("DB_LIB_DIR", libDir)
}

func TestLoad(t *testing.T) {
	setEnv(t, "", "adb.example.com:1522/svc", "scott", "tiger", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "oracle", cfg.Driver, "driver defaults to oracle")
	assert.Equal(t, "adb.example.com:1522/svc", cfg.DSN)
	assert.Equal(t, "scott", cfg.User)
	assert.Equal(t, "tiger", cfg.Password)
	assert.Empty(t, cfg.WalletDir)
}

func TestLoadPostgresDriver(t *testing.T) {
	setEnv(t, "postgres", "host=localhost dbname=x", "scott", "tiger", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Driver)
}

func TestLoadMissingValues(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		dsn     string
		user    string
		pass    string
		wantErr string
	}{
		{"missing dsn", "", "", "scott", "tiger", "DB_DSN"},
		{"missing user", "", "dsn", "", "tiger", "DB_USER"},
		{"missing password", "", "dsn", "scott", "", "DB_PASSWORD"},
		{"unsupported driver", "mysql", "dsn", "scott", "tiger", "DB_DRIVER"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setEnv(t, tc.driver, tc.dsn, tc.user, tc.pass, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadWalletDir(t *testing.T) {
	dir := t.TempDir()
	setEnv(t, "", "dsn", "scott", "tiger", dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.WalletDir)
}

func TestLoadWalletDirMissing(t *testing.T) {
	setEnv(t, "", "dsn", "scott", "tiger", filepath.Join(t.TempDir(), "nope"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_LIB_DIR")
}
