package persistence

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore persists player records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens the connection and ensures the schema exists.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS players (
		id TEXT PRIMARY KEY,
		health INTEGER NOT NULL,
		max_health INTEGER NOT NULL,
		coins INTEGER NOT NULL,
		runs_won INTEGER NOT NULL,
		runs_lost INTEGER NOT NULL,
		enemies_defeated INTEGER NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SavePlayer upserts the record.
func (s *PostgresStore) SavePlayer(record *PlayerRecord) error {
	if record == nil || record.ID == "" {
		return fmt.Errorf("record has no player id")
	}

	query := `
	INSERT INTO players (id, health, max_health, coins, runs_won, runs_lost, enemies_defeated)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id)
	DO UPDATE SET
		health = $2, max_health = $3, coins = $4,
		runs_won = $5, runs_lost = $6, enemies_defeated = $7,
		updated_at = NOW()
	`

	_, err := s.db.Exec(query,
		record.ID, record.Health, record.MaxHealth, record.Coins,
		record.RunsWon, record.RunsLost, record.EnemiesDefeated)
	if err != nil {
		return fmt.Errorf("save player %s: %w", record.ID, err)
	}
	return nil
}

// LoadPlayer fetches a record by id, returning ErrNotFound for new players.
func (s *PostgresStore) LoadPlayer(playerID string) (*PlayerRecord, error) {
	query := `
	SELECT id, health, max_health, coins, runs_won, runs_lost, enemies_defeated, updated_at
	FROM players WHERE id = $1
	`

	var record PlayerRecord
	err := s.db.QueryRow(query, playerID).Scan(
		&record.ID, &record.Health, &record.MaxHealth, &record.Coins,
		&record.RunsWon, &record.RunsLost, &record.EnemiesDefeated, &record.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load player %s: %w", playerID, err)
	}
	return &record, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
