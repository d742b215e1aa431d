package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Keys owned by exactly one component each. No component may write a key
// it does not own.
const (
	KeySession       = "session"
	KeyItinerary     = "itinerary"
	KeyRecentWeather = "recent-weather-searches"
	KeyDraftBlogs    = "draft-blogs"
	KeySavedBlogIDs  = "saved-blog-ids"
)

var ErrNotFound = errors.New("store: key not found")

// Store is the durable per-profile key-value store backing session,
// itinerary draft and recent-search state across restarts. Each key is a
// single JSON document in its own file; a file that fails to parse is
// reported as absent, never as a fatal error.
type Store struct {
	dir string
}

func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("store: empty data directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Get(key string, out any) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return ErrNotFound
	}
	if err := json.Unmarshal(data, out); err != nil {
		// Corrupt payloads degrade to "absent".
		return ErrNotFound
	}
	return nil
}

func (s *Store) Put(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("store: commit %s: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("store: delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
