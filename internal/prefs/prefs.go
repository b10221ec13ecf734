// Package prefs persists the single user-preferences record.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/ihiteshsharma/mcp-servers/internal/paths"
)

// Preferences is the user-preferences record applied as defaults to
// commands that omit the corresponding field.
type Preferences struct {
	ExportFormat string  `json:"export_format,omitempty"`
	ExportScale  float64 `json:"export_scale,omitempty"`
	DeviceFrame  string  `json:"device_frame,omitempty"`
	Theme        string  `json:"theme,omitempty"`
}

// Store reads and writes the preferences file.
type Store struct {
	path string
}

// NewStore creates a store backed by path. An empty path uses the
// default XDG location.
func NewStore(path string) *Store {
	if path == "" {
		path = paths.PrefsFile()
	}
	return &Store{path: path}
}

// Load returns the saved preferences, or the zero record when no file
// exists yet.
func (s *Store) Load() (Preferences, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Preferences{}, nil
		}
		return Preferences{}, fmt.Errorf("reading preferences: %w", err)
	}

	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("parsing preferences %s: %w", s.path, err)
	}
	return p, nil
}

// Save writes the record, serializing concurrent writers with an
// exclusive file lock.
func (s *Store) Save(p Preferences) error {
	if err := paths.EnsureDir(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("creating preferences dir: %w", err)
	}

	lockFile, err := os.OpenFile(s.path+".lock", os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("opening preferences lock: %w", err)
	}
	defer lockFile.Close()

	if err := unix.Flock(int(lockFile.Fd()), unix.LOCK_EX); err != nil {
		return fmt.Errorf("locking %s: %w", s.path, err)
	}
	defer unix.Flock(int(lockFile.Fd()), unix.LOCK_UN) //nolint:errcheck

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(s.path, data, 0600)
}
