package sessions

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bridgectl/bridgectl/internal/api"
	"github.com/bridgectl/bridgectl/internal/constants"

	"gopkg.in/yaml.v3"
)

// SessionLoader handles loading and discovery of session files.
type SessionLoader struct{}

// NewSessionLoader creates a new SessionLoader.
func NewSessionLoader() *SessionLoader {
	return &SessionLoader{}
}

// GetSessionDir returns the path to the session directory.
// Checks current working directory first, falls back to home directory.
func (l *SessionLoader) GetSessionDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	sessionDir := filepath.Join(cwd, constants.SessionDirName)
	if _, statErr := os.Stat(sessionDir); statErr == nil {
		return sessionDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	sessionDir = filepath.Join(homeDir, constants.SessionDirName)
	return sessionDir, nil
}

// ListSessions scans the session directory for YAML files and returns session names.
// Returns empty list if directory doesn't exist.
func (l *SessionLoader) ListSessions() ([]string, error) {
	sessionDir, err := l.GetSessionDir()
	if err != nil {
		return []string{}, nil
	}

	if _, statErr := os.Stat(sessionDir); os.IsNotExist(statErr) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(sessionDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read session directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if slices.Contains(constants.SessionFileExtensions, ext) {
			name := strings.TrimSuffix(entry.Name(), ext)
			names = append(names, name)
		}
	}

	return names, nil
}

// LoadSession loads and parses a session YAML file by name.
func (l *SessionLoader) LoadSession(name string) (*api.Session, error) {
	sessionDir, err := l.GetSessionDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get session directory: %w", err)
	}

	var sessionPath string
	var found bool
	for _, ext := range constants.SessionFileExtensions {
		candidatePath := filepath.Join(sessionDir, name+ext)
		if _, statErr := os.Stat(candidatePath); statErr == nil {
			sessionPath = candidatePath
			found = true
			break
		}
	}

	if !found {
		return nil, fmt.Errorf("session not found: %s", name)
	}

	data, readErr := os.ReadFile(sessionPath) //nolint:gosec // G304: sessionPath is validated before use
	if readErr != nil {
		return nil, fmt.Errorf("failed to read session file: %w", readErr)
	}

	var session api.Session
	if unmarshalErr := yaml.Unmarshal(data, &session); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse session YAML in %s: %w", sessionPath, unmarshalErr)
	}

	if validateErr := l.validateSession(&session); validateErr != nil {
		return nil, fmt.Errorf("invalid session %s: %w", name, validateErr)
	}

	return &session, nil
}

// validateSession validates that a session has required fields.
func (l *SessionLoader) validateSession(s *api.Session) error {
	if len(s.Commands) == 0 {
		return errors.New("commands must not be empty")
	}
	for i, cmd := range s.Commands {
		if cmd.Action == "" {
			return fmt.Errorf("command %d: action must not be empty", i)
		}
	}
	return nil
}
