package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
storage:
  endpoint: "minio.internal:9000"
  accessKey: "ak"
  secretKey: "sk"
  useSSL: true
log:
  level: "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "minio.internal:9000", cfg.Storage.Endpoint)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched fields keep their defaults.
	assert.Equal(t, 10*time.Second, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
storage:
  endpoint: "from-file:9000"
  accessKey: "file-ak"
  secretKey: "file-sk"
`)

	t.Setenv("GATEWAY_STORE_ENDPOINT", "from-env:9000")
	t.Setenv("GATEWAY_STORE_ACCESS_KEY", "env-ak")
	t.Setenv("GATEWAY_STORE_USE_SSL", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env:9000", cfg.Storage.Endpoint)
	assert.Equal(t, "env-ak", cfg.Storage.AccessKey)
	assert.Equal(t, "file-sk", cfg.Storage.SecretKey)
	assert.True(t, cfg.Storage.UseSSL)
}

func TestLoad_MissingCredentials(t *testing.T) {
	path := writeConfig(t, `
storage:
  endpoint: "minio:9000"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access key")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_NoFileEnvOnly(t *testing.T) {
	t.Setenv("GATEWAY_STORE_ACCESS_KEY", "ak")
	t.Setenv("GATEWAY_STORE_SECRET_KEY", "sk")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestStoreConfig(t *testing.T) {
	cfg := Default()
	cfg.Storage.AccessKey = "ak"
	cfg.Storage.SecretKey = "sk"
	cfg.Storage.Region = "us-east-1"

	sc := cfg.StoreConfig()
	assert.Equal(t, "localhost:9000", sc.Endpoint)
	assert.Equal(t, "ak", sc.AccessKey)
	assert.Equal(t, "us-east-1", sc.Region)
}
