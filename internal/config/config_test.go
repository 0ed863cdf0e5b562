package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bridgectl/bridgectl/internal/discovery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDiscovery(t *testing.T, rec *discovery.Record) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agentic_debugger.json")
	require.NoError(t, discovery.Write(path, rec))
	return path
}

func TestApplyDiscovery(t *testing.T) {
	t.Run("fills everything from discovery", func(t *testing.T) {
		path := writeDiscovery(t, &discovery.Record{
			Port:          56233,
			DefaultAPIKey: "bridge-key",
			KeyHeader:     "X-Debugger-Key",
		})

		cfg := &Config{DiscoveryFile: path}
		require.NoError(t, cfg.applyDiscovery())

		assert.Equal(t, "http://localhost:56233", cfg.Endpoint)
		assert.Equal(t, "ws://localhost:56233/ws", cfg.WebSocketURL)
		assert.Equal(t, "bridge-key", cfg.APIKey)
		assert.Equal(t, "X-Debugger-Key", cfg.KeyHeader)
	})

	t.Run("explicit values win over discovery", func(t *testing.T) {
		path := writeDiscovery(t, &discovery.Record{
			Port:          56233,
			DefaultAPIKey: "bridge-key",
			KeyHeader:     "X-Debugger-Key",
		})

		cfg := &Config{
			DiscoveryFile: path,
			Endpoint:      "http://localhost:9999",
		}
		require.NoError(t, cfg.applyDiscovery())

		assert.Equal(t, "http://localhost:9999", cfg.Endpoint)
		assert.Equal(t, "bridge-key", cfg.APIKey)
	})

	t.Run("discovery skipped when endpoint and key are set", func(t *testing.T) {
		cfg := &Config{
			DiscoveryFile: filepath.Join(t.TempDir(), "missing.json"),
			Endpoint:      "http://localhost:9999",
			APIKey:        "explicit-key",
		}
		require.NoError(t, cfg.applyDiscovery())

		assert.Equal(t, "X-Api-Key", cfg.KeyHeader)
		assert.Equal(t, "ws://localhost:9999/ws", cfg.WebSocketURL)
	})

	t.Run("missing discovery file surfaces an error", func(t *testing.T) {
		cfg := &Config{DiscoveryFile: filepath.Join(t.TempDir(), "missing.json")}
		err := cfg.applyDiscovery()
		assert.ErrorContains(t, err, "bridge not discovered")
	})
}

func TestDeriveWebSocketURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		want     string
	}{
		{name: "http endpoint", endpoint: "http://localhost:56233", want: "ws://localhost:56233/ws"},
		{name: "https endpoint", endpoint: "https://bridge.example.com", want: "wss://bridge.example.com/ws"},
		{name: "trailing slash", endpoint: "http://localhost:56233/", want: "ws://localhost:56233/ws"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveWebSocketURL(tt.endpoint))
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeDiscovery(t, &discovery.Record{
		Port:          56233,
		DefaultAPIKey: "bridge-key",
		KeyHeader:     "X-Debugger-Key",
	})

	t.Setenv("BRIDGECTL_DISCOVERY_FILE", path)
	t.Setenv("BRIDGECTL_API_KEY", "env-key")
	// Isolate from any real config file in the home directory
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "http://localhost:56233", cfg.Endpoint)
	assert.Equal(t, "X-Debugger-Key", cfg.KeyHeader)

	_ = os.Unsetenv("BRIDGECTL_DISCOVERY_FILE")
}
