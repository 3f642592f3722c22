// Package journal keeps a local record of tool invocations and REST
// writes in a SQLite database under the state directory. Writes are
// best-effort: callers log failures and move on.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const dbFilename = "journal.db"

// Entry is one recorded invocation.
type Entry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"` // "tool" or "rest"
	Name      string    `json:"name"`
	Detail    string    `json:"detail,omitempty"`
}

// Journal wraps the SQLite handle.
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal database under statePath.
func Open(statePath string) (*Journal, error) {
	if err := os.MkdirAll(statePath, 0755); err != nil {
		return nil, fmt.Errorf("journal: create state dir: %w", err)
	}

	path := filepath.Join(statePath, dbFilename)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: ping database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: migrate: %w", err)
	}
	return j, nil
}

// Close closes the database handle.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) migrate() error {
	const schema = `CREATE TABLE IF NOT EXISTS entries (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        ts TEXT NOT NULL,
        kind TEXT NOT NULL,
        name TEXT NOT NULL,
        detail TEXT NOT NULL DEFAULT ''
    );
    CREATE INDEX IF NOT EXISTS idx_entries_ts ON entries(ts);`

	_, err := j.db.Exec(schema)
	return err
}

// Record appends an entry with the current timestamp.
func (j *Journal) Record(kind, name, detail string) error {
	_, err := j.db.Exec(
		`INSERT INTO entries (ts, kind, name, detail) VALUES (?, ?, ?, ?)`,
		time.Now().Format(time.RFC3339), kind, name, detail,
	)
	return err
}

// Recent returns up to n entries, newest first.
func (j *Journal) Recent(n int) ([]Entry, error) {
	rows, err := j.db.Query(
		`SELECT id, ts, kind, name, detail FROM entries ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Today returns entries recorded since local midnight, newest first.
func (j *Journal) Today() ([]Entry, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	rows, err := j.db.Query(
		`SELECT id, ts, kind, name, detail FROM entries WHERE ts >= ? ORDER BY id DESC`,
		midnight.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.Kind, &e.Name, &e.Detail); err != nil {
			return nil, err
		}
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			e.Timestamp = parsed
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
