package state

import (
	"fmt"
	"os"
	"path/filepath"
)

// profileFileName is the file the last-started profile is written to,
// under the knup home directory.
const profileFileName = "cluster-profile"

// Store is a small key-less persistence interface for the last-started
// cluster profile. It is injected into the lifecycle controller rather
// than read ad hoc so tests can substitute an in-memory implementation.
type Store interface {
	// Load returns the persisted profile string. The second return is
	// false when no profile has been saved (or the file is unreadable);
	// that case is not an error.
	Load() (string, bool)

	// Save persists the profile string, creating parent directories as
	// needed. A failed save is fatal to the caller.
	Save(profile string) error

	// Clear removes any persisted profile. Clearing an absent profile
	// is not an error.
	Clear() error
}

// FileStore persists the profile to a single text file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, profileFileName)}
}

// DefaultDir returns the knup state directory, honoring KNUP_HOME.
func DefaultDir() (string, error) {
	if dir := os.Getenv("KNUP_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".knup"), nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load implements Store.
func (s *FileStore) Load() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Save implements Store.
func (s *FileStore) Save(profile string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(profile), 0o644); err != nil {
		return fmt.Errorf("failed to write cluster profile: %w", err)
	}
	return nil
}

// Clear implements Store.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cluster profile: %w", err)
	}
	return nil
}
