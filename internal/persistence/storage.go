package persistence

import (
	"errors"
	"time"

	"dungeondelve/server/internal/stats"
)

// ErrNotFound is returned when no record exists for the requested player.
var ErrNotFound = errors.New("persistence: player not found")

// PlayerRecord is the durable shape of a player's cumulative statistics.
// Dungeon layouts are never persisted; only the ledger survives across runs.
type PlayerRecord struct {
	ID              string    `json:"id"`
	Health          int       `json:"health"`
	MaxHealth       int       `json:"maxHealth"`
	Coins           int       `json:"coins"`
	RunsWon         int       `json:"runsWon"`
	RunsLost        int       `json:"runsLost"`
	EnemiesDefeated int       `json:"enemiesDefeated"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FromSnapshot builds a record from a ledger snapshot.
func FromSnapshot(id string, snapshot stats.Snapshot) *PlayerRecord {
	return &PlayerRecord{
		ID:              id,
		Health:          snapshot.Health,
		MaxHealth:       snapshot.MaxHealth,
		Coins:           snapshot.Coins,
		RunsWon:         snapshot.RunsWon,
		RunsLost:        snapshot.RunsLost,
		EnemiesDefeated: snapshot.EnemiesDefeated,
	}
}

// Snapshot converts the record back into ledger form.
func (r *PlayerRecord) Snapshot() stats.Snapshot {
	return stats.Snapshot{
		Health:          r.Health,
		MaxHealth:       r.MaxHealth,
		Coins:           r.Coins,
		RunsWon:         r.RunsWon,
		RunsLost:        r.RunsLost,
		EnemiesDefeated: r.EnemiesDefeated,
	}
}

// Storage defines the interface for player-stat persistence.
type Storage interface {
	SavePlayer(record *PlayerRecord) error
	LoadPlayer(playerID string) (*PlayerRecord, error)
	Close() error
}
