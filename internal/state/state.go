// Package state persists local console state under ~/.scout.
//
// Responsibilities: chat-control preferences (model, temperature) shared by
// the CLI and the TUI. The prefs file is guarded with an advisory file lock
// so two console instances cannot clobber each other's writes.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/koopa0/scout/internal/log"
)

const (
	stateDir  = ".scout"
	prefsFile = "prefs.json"
	lockFile  = "prefs.lock"
)

// ErrLocked indicates another console instance holds the prefs lock.
var ErrLocked = errors.New("preferences file is locked by another process")

// ChatPrefs are the locally persisted chat controls.
type ChatPrefs struct {
	ModelName   string  `json:"model_name"`
	Temperature float64 `json:"temperature"`
}

// Store reads and writes console state files.
type Store struct {
	dir    string
	logger log.Logger
}

// NewStore creates a Store rooted at ~/.scout, creating the directory if
// needed.
func NewStore(logger log.Logger) (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	dir := filepath.Join(home, stateDir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Store{dir: dir, logger: logger}, nil
}

// NewStoreAt creates a Store rooted at an explicit directory. Used by tests.
func NewStoreAt(dir string, logger log.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Store{dir: dir, logger: logger}, nil
}

// LoadPrefs reads the persisted chat preferences.
// Returns (nil, nil) when no preferences have been saved yet.
func (s *Store) LoadPrefs() (*ChatPrefs, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, prefsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no saved prefs is not an error
		}
		return nil, fmt.Errorf("reading prefs file: %w", err)
	}

	var prefs ChatPrefs
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("parsing prefs file: %w", err)
	}
	return &prefs, nil
}

// SavePrefs writes the chat preferences under the advisory lock.
// Returns ErrLocked when another instance holds the lock.
func (s *Store) SavePrefs(prefs ChatPrefs) error {
	lock := flock.New(filepath.Join(s.dir, lockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring prefs lock: %w", err)
	}
	if !locked {
		return ErrLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release prefs lock", "error", err)
		}
	}()

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding prefs: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, prefsFile), data, 0o644); err != nil {
		return fmt.Errorf("writing prefs file: %w", err)
	}
	return nil
}
