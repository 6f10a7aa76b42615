package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	clearEnv(t)

	v, cfg, err := Load(Options{HomeDir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, BackendTOML, cfg.Backend)
	assert.Equal(t, 60*24*time.Hour, cfg.SessionWindow)
	assert.Equal(t, defaultRemoteBaseURL, cfg.RemoteBaseURL)
	assert.Equal(t, 5.0, cfg.PushRate)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.StoreDir)
	assert.Equal(t, BackendTOML, v.GetString(KeyStoreBackend))
}

func TestLoadReadsConfigFileFromHome(t *testing.T) {
	clearEnv(t)

	home := t.TempDir()
	dir := filepath.Join(home, configDirName)
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[store]
dir = "/tmp/oc-data"
backend = "sqlite"

[session]
window = "720h"

[remote]
base_url = "https://api.example.test/v1/"
`), 0o600))

	v, cfg, err := Load(Options{HomeDir: home})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/oc-data", cfg.StoreDir)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, 720*time.Hour, cfg.SessionWindow)
	assert.Equal(t, "https://api.example.test/v1", cfg.RemoteBaseURL)
	assert.Equal(t, "/tmp/oc-data", v.GetString(KeyStoreDir))
}

func TestLoadEnvOverridesConfigFile(t *testing.T) {
	clearEnv(t)

	file := filepath.Join(t.TempDir(), "oc.toml")
	require.NoError(t, os.WriteFile(file, []byte("[store]\nbackend = \"sqlite\"\n"), 0o600))

	t.Setenv("OC_STORE_BACKEND", "toml")
	t.Setenv("OC_STORE_DIR", "/srv/cache")
	t.Setenv("OC_SESSION_WINDOW", "48h")
	t.Setenv("OC_SYNC_PUSH_RATE", "0.5")

	v, cfg, err := Load(Options{File: file})
	require.NoError(t, err)

	assert.Equal(t, BackendTOML, cfg.Backend)
	assert.Equal(t, "/srv/cache", cfg.StoreDir)
	assert.Equal(t, 48*time.Hour, cfg.SessionWindow)
	assert.Equal(t, 0.5, cfg.PushRate)
	assert.Equal(t, "/srv/cache", v.GetString(KeyStoreDir))
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)

	t.Setenv("OC_STORE_BACKEND", "postgres")
	_, _, err := Load(Options{HomeDir: t.TempDir()})
	assert.ErrorContains(t, err, `unsupported store backend "postgres"`)

	t.Setenv("OC_STORE_BACKEND", "")
	t.Setenv("OC_SESSION_WINDOW", "soon")
	_, _, err = Load(Options{HomeDir: t.TempDir()})
	assert.ErrorContains(t, err, "parse env:")
}

func TestLoadFailsOnMissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, _, err := Load(Options{File: filepath.Join(t.TempDir(), "missing.toml")})
	assert.ErrorContains(t, err, "read config:")
}

func clearEnv(t *testing.T) {
	t.Helper()

	for _, name := range []string{
		"OC_STORE_DIR", "OC_STORE_BACKEND", "OC_SESSION_WINDOW", "OC_REMOTE_BASE_URL",
		"OC_SYNC_PUSH_RATE", "OC_LOG_LEVEL", "OC_LOG_FILE",
	} {
		t.Setenv(name, "")
	}
}
