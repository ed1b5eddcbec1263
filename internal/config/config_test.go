package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 50, cfg.Hunt.MaxPages)
	require.Equal(t, "AB", cfg.Hunt.TierFilter)
	require.False(t, cfg.Hunt.IncludeUS)
	require.Equal(t, "json,csv", cfg.Hunt.ExportTo)
	require.Equal(t, 800, cfg.HTTP.RateLimitMs)
	require.Equal(t, 15000, cfg.HTTP.TimeoutMs)
	require.Equal(t, "Mozilla/5.0 (compatible; HunterBot/1.0)", cfg.HTTP.UserAgent)
	require.Equal(t, "http://localhost:3789", cfg.Server.URL)
	require.Equal(t, 3789, cfg.Server.Port)
	require.Equal(t, "manual", cfg.Ponds.Mode)
	require.True(t, cfg.Logging.Development)
	require.Empty(t, cfg.Logging.Level)

	require.Equal(t, 800*time.Millisecond, cfg.RateLimit())
	require.Equal(t, 15*time.Second, cfg.Timeout())
}

func TestLoadWithFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	configYAML := `
hunt:
  max_pages: 10
  tier_filter: ABC
  remote_only: true
  use_server: true
http:
  rate_limit_ms: 200
  user_agent: leadscout-test/1.0
server:
  url: http://localhost:4000
  port: 4000
ponds:
  refresh: true
  mode: serper
`
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 10, cfg.Hunt.MaxPages)
	require.Equal(t, "ABC", cfg.Hunt.TierFilter)
	require.True(t, cfg.Hunt.RemoteOnly)
	require.True(t, cfg.Hunt.UseServer)
	require.Equal(t, 200, cfg.HTTP.RateLimitMs)
	require.Equal(t, "leadscout-test/1.0", cfg.HTTP.UserAgent)
	require.Equal(t, "http://localhost:4000", cfg.Server.URL)
	require.True(t, cfg.Ponds.Refresh)
	require.Equal(t, "serper", cfg.Ponds.Mode)

	// Unset keys keep their defaults.
	require.Equal(t, 15000, cfg.HTTP.TimeoutMs)
	require.Equal(t, "data/deny.domains.txt", cfg.Paths.DenyDomains)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Hunt.TierFilter = "ABCD"
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Hunt.MaxPages = 0
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.HTTP.TimeoutMs = 0
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Server.Port = 0
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Ponds.Mode = "bing"
	require.Error(t, cfg.Validate())
}
