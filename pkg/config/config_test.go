package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, 5*time.Minute, cfg.Charts.CacheTTL)
	assert.Equal(t, ModeDevelopment, cfg.Logger.Mode)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 20, cfg.Notices.InboxLimit)
	assert.NoError(t, cfg.Validate())
}

func TestDecode(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
server:
  addr: "127.0.0.1:9000"
theme: dark
charts:
  cache_ttl: 30s
  assets_host: https://cdn.example.com/echarts/
logger:
  mode: production
  level: warn
  file_enable: true
`))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 30*time.Second, cfg.Charts.CacheTTL)
	assert.Equal(t, "https://cdn.example.com/echarts/", cfg.Charts.AssetsHost)
	assert.Equal(t, "logs/commerce-admin.log", cfg.Logger.Filename)
	assert.Equal(t, 64, cfg.Logger.MaxSizeMB)
}

func TestDecodeEmptyUsesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeRejectsInvalidInput(t *testing.T) {
	cases := map[string]string{
		"unknown key":  "colour: blue\n",
		"bad theme":    "theme: sepia\n",
		"bad mode":     "logger:\n  mode: noisy\n",
		"bad level":    "logger:\n  level: trace\n",
		"negative ttl": "charts:\n  cache_ttl: -1s\n",
		"malformed":    "server: [\n",
	}
	for name, doc := range cases {
		_, err := Decode(strings.NewReader(doc))
		assert.Error(t, err, name)
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "admin.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dark\n"), 0o600))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
