// Package sqlitestore persists ledger snapshots in a SQLite database. It
// keeps every saved snapshot, so the history of a plan can be audited even
// though the ledger itself only ever needs the latest one.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/averch/dcaplan"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	saved_at   TEXT NOT NULL,
	data       TEXT NOT NULL
);
`

// Store implements dcaplan.Store over a SQLite database file. Use ":memory:"
// as the path for a throwaway store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database and its schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Load returns the most recently saved snapshot, or the default one when the
// table is empty.
func (s *Store) Load(ctx context.Context) (*dcaplan.Snapshot, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return dcaplan.DefaultSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	snap := &dcaplan.Snapshot{}
	if err := json.Unmarshal([]byte(data), snap); err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	return snap, nil
}

// Save appends a new snapshot row.
func (s *Store) Save(ctx context.Context, snap *dcaplan.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (saved_at, data) VALUES (?, ?)`,
		time.Now().UTC().Format(time.RFC3339), string(data))
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// History returns the save timestamps, newest first, for auditing.
func (s *Store) History(ctx context.Context) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT saved_at FROM snapshots ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var stamps []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		stamps = append(stamps, t)
	}
	return stamps, rows.Err()
}

var _ dcaplan.Store = (*Store)(nil)
