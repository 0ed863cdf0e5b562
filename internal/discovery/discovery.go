// Package discovery reads the bridge's discovery record: a JSON file the
// bridge writes into the OS temp directory advertising its port, API key,
// and the header name the key must be sent in.
package discovery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bridgectl/bridgectl/internal/constants"
)

// Record is the discovery file content. It is read once at process start and
// immutable for the process lifetime.
type Record struct {
	Port          int    `json:"port"`
	DefaultAPIKey string `json:"defaultApiKey"`
	KeyHeader     string `json:"keyHeader"`
}

// DefaultPath returns the well-known discovery file location.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), constants.DiscoveryFileName)
}

// Read loads and validates the discovery record from the given path.
// An empty path falls back to the well-known location.
func Read(path string) (*Record, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the well-known discovery file
	if err != nil {
		return nil, fmt.Errorf("failed to read discovery file %s: %w", path, err)
	}

	var rec Record
	if err = json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("invalid discovery file %s: %w", path, err)
	}

	if rec.Port <= 0 || rec.Port > 65535 {
		return nil, fmt.Errorf("discovery file %s has invalid port: %d", path, rec.Port)
	}
	if rec.KeyHeader == "" {
		rec.KeyHeader = constants.DefaultKeyHeader
	}

	return &rec, nil
}

// BaseURL returns the bridge's HTTP endpoint.
func (r *Record) BaseURL() string {
	return fmt.Sprintf("http://localhost:%d", r.Port)
}

// WebSocketURL returns the bridge's event stream endpoint.
func (r *Record) WebSocketURL() string {
	return fmt.Sprintf("ws://localhost:%d/ws", r.Port)
}

// Write persists the record to the given path. Used by the bridge simulator
// so that agents can discover it the same way they discover the real bridge.
func Write(path string, rec *Record) error {
	if path == "" {
		path = DefaultPath()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal discovery record: %w", err)
	}

	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write discovery file %s: %w", path, err)
	}

	return nil
}
