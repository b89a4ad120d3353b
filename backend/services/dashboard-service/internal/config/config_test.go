package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:8080", cfg.HTTPAddress())
	require.Equal(t, 5000*time.Millisecond, cfg.RefreshInterval())
	require.Equal(t, 30*time.Second, cfg.PingInterval())
	require.Equal(t, 10*time.Second, cfg.WriteTimeout())
	require.False(t, cfg.Debug)
	require.False(t, cfg.MirrorEnabled())
	require.Equal(t, "airwatch:readings", cfg.Redis.Channel)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	body := "http:\n  host: 0.0.0.0\n  port: \"9000\"\nrefresh:\n  intervalMs: 2000\nredis:\n  addr: localhost:6379\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DASHBOARD_HTTP_PORT", "9100")
	t.Setenv("DASHBOARD_DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:9100", cfg.HTTPAddress())
	require.Equal(t, 2*time.Second, cfg.RefreshInterval())
	require.True(t, cfg.Debug)
	require.True(t, cfg.MirrorEnabled())
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	for _, port := range []string{"http", "0", "70000"} {
		t.Setenv("DASHBOARD_HTTP_PORT", port)
		_, err := Load()
		require.ErrorContains(t, err, "invalid http port", port)
	}
}

func TestLoadNonPositiveRefreshFallsBack(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DASHBOARD_REFRESH_MS", "-5")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 5*time.Second, cfg.RefreshInterval())
}

func TestHTTPAddressAcceptsColonPort(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DASHBOARD_HTTP_HOST", "")
	t.Setenv("DASHBOARD_HTTP_PORT", ":8050")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8050", cfg.HTTPAddress())
}

func TestLoadBlankMirrorChannelFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	body := "redis:\n  addr: localhost:6379\n  channel: \"  \"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, defaultMirrorChannel, cfg.Redis.Channel)
}
