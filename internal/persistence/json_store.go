package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// JSONStore keeps one file per player under a data directory. It is the
// development-mode store; deployments use PostgresStore.
type JSONStore struct {
	mu  sync.Mutex
	dir string
}

// NewJSONStore creates the data directory if needed.
func NewJSONStore(dir string) (*JSONStore, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &JSONStore{dir: dir}, nil
}

// SavePlayer writes the record atomically via a temp file rename.
func (s *JSONStore) SavePlayer(record *PlayerRecord) error {
	if record == nil || record.ID == "" {
		return fmt.Errorf("record has no player id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	record.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal player %s: %w", record.ID, err)
	}

	path := s.playerPath(record.ID)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write player %s: %w", record.ID, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace player %s: %w", record.ID, err)
	}
	return nil
}

// LoadPlayer reads a record, returning ErrNotFound when the file is absent.
func (s *JSONStore) LoadPlayer(playerID string) (*PlayerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.playerPath(playerID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read player %s: %w", playerID, err)
	}
	var record PlayerRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode player %s: %w", playerID, err)
	}
	return &record, nil
}

// Close is a no-op for the file-backed store.
func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) playerPath(playerID string) string {
	// Session ids are UUIDs, but sanitize anyway so a crafted id cannot
	// escape the data directory.
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, playerID)
	return filepath.Join(s.dir, safe+".json")
}
