// Package doze persists wakeup gesture preferences.
package doze

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// DefaultPath is the preference file used by the power service.
const DefaultPath = "/var/lib/oncd/doze.json"

// Settings holds persisted wake preferences.
type Settings struct {
	// WakeGesture enables waking the device by double tapping the screen.
	WakeGesture bool `json:"wake_gesture"`
}

// A Store reads and writes [Settings] at a fixed path.
type Store struct {
	path string
}

// NewStore returns a Store persisting settings at path.
func NewStore(path string) *Store { return &Store{path} }

// Path returns the preference file path.
func (s *Store) Path() string { return s.path }

// Load reads settings from the store. A missing preference file yields the
// zero value of [Settings].
func (s *Store) Load() (Settings, error) {
	var settings Settings
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return settings, err
	}
	if err = json.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("cannot parse %q: %w", s.path, err)
	}
	return settings, nil
}

// Save writes settings to the store, creating the parent directory if
// necessary. Concurrent writers are excluded via a lock file kept next to the
// preference file.
func (s *Store) Save(settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}

	lock, err := os.OpenFile(s.path+".lock", os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return err
	}
	defer lock.Close()
	if err = flock(lock, unix.LOCK_EX); err != nil {
		return err
	}
	defer func() { _ = flock(lock, unix.LOCK_UN) }()

	data, err := json.MarshalIndent(&settings, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	// the rename makes the write atomic for concurrent readers
	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// flock locks or unlocks f, retrying on EINTR.
func flock(f *os.File, how int) (err error) {
	op := "Flock"
	switch how {
	case unix.LOCK_EX:
		op = "Lock"
	case unix.LOCK_UN:
		op = "Unlock"
	}

	for {
		err = unix.Flock(int(f.Fd()), how)
		if !errors.Is(err, unix.EINTR) {
			break
		}
	}
	if err != nil {
		return &fs.PathError{Op: op, Path: f.Name(), Err: err}
	}
	return nil
}
