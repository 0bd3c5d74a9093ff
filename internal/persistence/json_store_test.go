package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dungeondelve/server/internal/stats"
)

func TestJSONStoreRoundTrip(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	defer store.Close()

	snapshot := stats.Snapshot{Health: 40, MaxHealth: 100, Coins: 77, RunsWon: 2, RunsLost: 1, EnemiesDefeated: 9}
	if err := store.SavePlayer(FromSnapshot("player-1", snapshot)); err != nil {
		t.Fatalf("SavePlayer: %v", err)
	}

	loaded, err := store.LoadPlayer("player-1")
	if err != nil {
		t.Fatalf("LoadPlayer: %v", err)
	}
	if loaded.Snapshot() != snapshot {
		t.Fatalf("round trip mismatch: %+v vs %+v", loaded.Snapshot(), snapshot)
	}
	if loaded.UpdatedAt.IsZero() {
		t.Fatalf("save should stamp UpdatedAt")
	}
}

func TestJSONStoreMissingPlayer(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	if _, err := store.LoadPlayer("nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestJSONStoreOverwrite(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	first := stats.Snapshot{Health: 100, MaxHealth: 100}
	second := stats.Snapshot{Health: 60, MaxHealth: 100, Coins: 12}
	if err := store.SavePlayer(FromSnapshot("p", first)); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.SavePlayer(FromSnapshot("p", second)); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := store.LoadPlayer("p")
	if err != nil {
		t.Fatalf("LoadPlayer: %v", err)
	}
	if loaded.Snapshot() != second {
		t.Fatalf("expected the later record, got %+v", loaded.Snapshot())
	}
}

func TestJSONStoreRejectsEmptyID(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	if err := store.SavePlayer(&PlayerRecord{}); err == nil {
		t.Fatalf("record without an id should be rejected")
	}
}

func TestJSONStoreSanitizesIDs(t *testing.T) {
	dir := t.TempDir()
	store, err := NewJSONStore(dir)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	hostile := "../escape"
	if err := store.SavePlayer(FromSnapshot(hostile, stats.Snapshot{Health: 1, MaxHealth: 1})); err != nil {
		t.Fatalf("SavePlayer: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one file inside the data dir, got %d", len(entries))
	}
	if _, err := os.Stat(filepath.Join(dir, "..", "escape.json")); err == nil {
		t.Fatalf("hostile id escaped the data directory")
	}
	if _, err := store.LoadPlayer(hostile); err != nil {
		t.Fatalf("sanitized id should still round trip: %v", err)
	}
}
