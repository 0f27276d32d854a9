// Package session persists the upstream API credentials between restarts.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoSession is returned when no session has been saved yet.
var ErrNoSession = errors.New("no session available")

// Session holds the bearer token used against the upstream finance API.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id,omitempty"`
}

// Validate checks that the session is usable.
func (s Session) Validate() error {
	if s.Token == "" {
		return fmt.Errorf("session token cannot be empty")
	}
	return nil
}

// Store keeps the session in a JSON file so a restart does not lose it.
type Store struct {
	path string
	mu   sync.RWMutex
}

// NewStore creates a file-backed session store at the given path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the current session from disk.
func (s *Store) Load() (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, ErrNoSession
		}
		return Session{}, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("failed to parse session file: %w", err)
	}
	if err := sess.Validate(); err != nil {
		return Session{}, ErrNoSession
	}

	return sess, nil
}

// Save writes the session to disk, creating parent directories as needed.
func (s *Store) Save(sess Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	// Session file holds a credential, keep it owner-only
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Clear removes the saved session. Clearing a missing session is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
