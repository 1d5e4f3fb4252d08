package missionlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS mission_log (
  id TEXT PRIMARY KEY,
  ts INTEGER NOT NULL,
  user TEXT NOT NULL,
  action TEXT NOT NULL,
  details TEXT NOT NULL
);
`

// SQLiteWriter records mission log entries in a SQLite database so a
// facilitator can query past exercises with plain SQL.
type SQLiteWriter struct {
	db *sql.DB
}

// NewSQLiteWriter opens (or creates) the database at path and ensures the
// mission_log table exists.
func NewSQLiteWriter(path string) (*SQLiteWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	dsn := fmt.Sprintf("file:%s?cache=shared", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init mission_log schema: %w", err)
	}
	return &SQLiteWriter{db: db}, nil
}

// Write inserts a single entry.
func (w *SQLiteWriter) Write(e Entry) error {
	_, err := w.db.Exec(
		`INSERT OR IGNORE INTO mission_log (id, ts, user, action, details) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Timestamp.UnixMilli(), e.User, string(e.Action), e.Details,
	)
	return err
}

// WriteBatch inserts multiple entries in one transaction.
func (w *SQLiteWriter) WriteBatch(entries []Entry) error {
	tx, err := w.db.Begin()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO mission_log (id, ts, user, action, details) VALUES (?, ?, ?, ?, ?)`,
			e.ID, e.Timestamp.UnixMilli(), e.User, string(e.Action), e.Details,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Load returns all recorded entries in insertion order.
func (w *SQLiteWriter) Load() ([]Entry, error) {
	rows, err := w.db.Query(`SELECT id, ts, user, action, details FROM mission_log ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ms int64
		var action string
		if err := rows.Scan(&e.ID, &ms, &e.User, &action, &e.Details); err != nil {
			continue
		}
		e.Timestamp = time.UnixMilli(ms).UTC()
		e.Action = Action(action)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database handle.
func (w *SQLiteWriter) Close() error {
	return w.db.Close()
}
