package shared

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Session records the currently logged-in operator between CLI invocations.
type Session struct {
	Callsign string    `toml:"callsign"`
	Token    string    `toml:"token"`
	LoggedIn time.Time `toml:"logged_in"`
}

// SessionPath returns the session file location for the given data config.
func SessionPath(cfg DataConfig) string {
	return filepath.Join(cfg.Dir, cfg.SessionFile)
}

// SaveSession writes the session file, creating the data directory if needed.
func SaveSession(cfg DataConfig, callsign string) (*Session, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	session := &Session{
		Callsign: strings.ToUpper(strings.TrimSpace(callsign)),
		Token:    GenerateID(),
		LoggedIn: time.Now().UTC(),
	}

	f, err := os.OpenFile(SessionPath(cfg), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create session file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(session); err != nil {
		return nil, fmt.Errorf("failed to write session: %w", err)
	}

	return session, nil
}

// LoadSession reads the session file. Returns ErrNotLoggedIn when absent or empty.
func LoadSession(cfg DataConfig) (*Session, error) {
	data, err := os.ReadFile(SessionPath(cfg))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := toml.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if session.Callsign == "" {
		return nil, ErrNotLoggedIn
	}

	return &session, nil
}

// ClearSession removes the session file. Missing files are not an error.
func ClearSession(cfg DataConfig) error {
	err := os.Remove(SessionPath(cfg))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
