// Package persist stores world snapshots in SQLite so a simulation can
// resume across server restarts.
package persist

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ryholmdahl/groblins/internal/world"
)

// ErrNoSave reports that the database holds no snapshot yet.
var ErrNoSave = errors.New("persist: no saved world")

// DB wraps a SQLite connection for snapshot storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		tick INTEGER NOT NULL,
		seed TEXT NOT NULL,
		snapshot_json TEXT NOT NULL,
		saved_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveSnapshot overwrites the stored world with the given snapshot.
func (db *DB) SaveSnapshot(s world.Snapshot, savedAt int64) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT OR REPLACE INTO saves
		(id, tick, seed, snapshot_json, saved_at)
		VALUES (1, ?, ?, ?, ?)`,
		s.Tick, s.Seed, string(data), savedAt,
	)
	if err != nil {
		return fmt.Errorf("insert save: %w", err)
	}

	return tx.Commit()
}

// LoadSnapshot returns the stored world, or ErrNoSave when the
// database is empty.
func (db *DB) LoadSnapshot() (world.Snapshot, error) {
	var raw string
	err := db.conn.Get(&raw, "SELECT snapshot_json FROM saves WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return world.Snapshot{}, ErrNoSave
	}
	if err != nil {
		return world.Snapshot{}, fmt.Errorf("load save: %w", err)
	}

	var s world.Snapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return world.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return s, nil
}

// SaveMeta stores a key-value pair in world metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value; missing keys return sql.ErrNoRows.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}
