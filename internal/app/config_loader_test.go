package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, 2, config.Download.ConcurrentLimit)
	assert.Equal(t, time.Duration(0), config.Download.FetchTimeout)
	assert.NotEmpty(t, config.Instagram.PageUserAgent)
	assert.True(t, config.History.Enabled)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
download:
  base_dir: /tmp/media
  concurrent_limit: 4
  fetch_timeout: 30s
history:
  enabled: false
`), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "/tmp/media", config.Download.BaseDir)
	assert.Equal(t, 4, config.Download.ConcurrentLimit)
	assert.Equal(t, 30*time.Second, config.Download.FetchTimeout)
	assert.False(t, config.History.Enabled)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 0\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidConcurrency(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("download:\n  concurrent_limit: 0\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("SMDL_TEST_ROOT", "/data")
	assert.Equal(t, "/data/media", expandPath("$SMDL_TEST_ROOT/media"))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "media"), expandPath("~/media"))
}
