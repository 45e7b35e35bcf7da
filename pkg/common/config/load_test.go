package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fystack/kv-gateway/pkg/common/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, enum.KVStoreTypeRedis, cfg.KVStore.Type)
	assert.Equal(t, "localhost:6379", cfg.KVStore.Redis.Addr())
	assert.Equal(t, "flask-app", cfg.ServiceName)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Server.Port)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 8080
  request_timeout: 500ms
kvstore:
  type: badger
  badger:
    directory: /tmp/kvgw
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.Server.RequestTimeout)
	assert.Equal(t, enum.KVStoreTypeBadger, cfg.KVStore.Type)
	assert.Equal(t, "/tmp/kvgw", cfg.KVStore.Badger.Directory)
	// unset fields still filled from defaults
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "flask-app", cfg.ServiceName)
}

func TestLoad_EnvOverridesWin(t *testing.T) {
	path := writeConfig(t, `
kvstore:
  type: redis
  redis:
    host: redis.internal
    port: 6380
`)

	t.Setenv("REDIS_HOST", "redis.override")
	t.Setenv("REDIS_PORT", "7000")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "redis.override:7000", cfg.KVStore.Redis.Addr())
	assert.Equal(t, "production", cfg.Environment)
}

func TestLoad_InvalidRedisPortEnv(t *testing.T) {
	t.Setenv("REDIS_PORT", "not-a-port")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoad_RejectsUnknownStoreType(t *testing.T) {
	path := writeConfig(t, `
kvstore:
  type: etcd
`)

	_, err := Load(path)
	assert.Error(t, err)
}
