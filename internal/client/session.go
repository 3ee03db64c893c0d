package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Session is the device-local display state: what the last action was and the
// strings to show without a round trip. It is optimistic cache, not truth —
// the server's table is authoritative.
type Session struct {
	LastAction   string `json:"last_action"` // "checkin", "checkout" or empty
	LastCheckIn  string `json:"last_check_in"`
	LastCheckOut string `json:"last_check_out"`
	TodayHours   string `json:"today_hours"`
	SavedDateKey string `json:"saved_date_key"`
}

// Rollover clears stale display fields when the session was saved on a
// different date, and stamps the new date key. Returns true if it cleared.
func (s *Session) Rollover(todayKey string) bool {
	if s.SavedDateKey == todayKey {
		return false
	}
	*s = Session{SavedDateKey: todayKey}
	return true
}

// Storage persists the session between invocations.
type Storage interface {
	Load() (Session, error)
	Save(Session) error
}

// FileStorage keeps the session as a JSON file under ~/.staffclock/.
type FileStorage struct {
	path string
}

func NewFileStorage() (*FileStorage, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}
	return &FileStorage{path: filepath.Join(home, ".staffclock", "session.json")}, nil
}

// NewFileStorageAt uses an explicit path.
func NewFileStorageAt(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load returns the persisted session, or a zero session if none exists yet.
func (f *FileStorage) Load() (Session, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("error reading session file %s: %w", f.path, err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		// A corrupt session is only cached display state; start fresh.
		return Session{}, nil
	}
	return s, nil
}

// Save writes the session with a temp-file-and-rename so a crash mid-write
// cannot leave a torn file.
func (f *FileStorage) Save(s Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("error creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling session: %w", err)
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("error writing session temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("error renaming session temp file: %w", err)
	}
	return nil
}
