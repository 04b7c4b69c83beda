// Package store provides a SQLite-backed letter store.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/benjaminschreck/go-mailmacro/pkg/letter"
)

// ErrNotFound is returned when no letter has the requested ID.
var ErrNotFound = errors.New("letter not found")

const schema = `
CREATE TABLE IF NOT EXISTS letters (
	id       TEXT PRIMARY KEY,
	data     TEXT NOT NULL,
	saved_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS letters_saved_at ON letters (saved_at DESC);
`

// Store persists letters in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite letter store and creates its table when missing.
// ":memory:" opens a private in-memory store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save inserts or replaces a letter, stamping SavedAt. A letter without an ID
// gets its content-hash ID. The stored letter is returned.
func (s *Store) Save(ctx context.Context, l letter.Letter) (letter.Letter, error) {
	if err := ctx.Err(); err != nil {
		return letter.Letter{}, err
	}
	if s == nil || s.sqlDB == nil {
		return letter.Letter{}, fmt.Errorf("storage is not configured")
	}
	if err := l.Validate(); err != nil {
		return letter.Letter{}, err
	}
	if strings.TrimSpace(l.ID) == "" {
		id, err := letter.GenerateID(l)
		if err != nil {
			return letter.Letter{}, err
		}
		l.ID = id
	}
	l.SavedAt = fromMillis(toMillis(s.now()))

	data, err := json.Marshal(l)
	if err != nil {
		return letter.Letter{}, fmt.Errorf("marshal letter: %w", err)
	}
	_, err = s.sqlDB.ExecContext(ctx, `
		INSERT INTO letters (id, data, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		l.ID, string(data), toMillis(l.SavedAt))
	if err != nil {
		return letter.Letter{}, fmt.Errorf("save letter %s: %w", l.ID, err)
	}
	return l, nil
}

// Get returns one letter by ID.
func (s *Store) Get(ctx context.Context, id string) (letter.Letter, error) {
	if err := ctx.Err(); err != nil {
		return letter.Letter{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT data FROM letters WHERE id = ?`, id)

	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return letter.Letter{}, ErrNotFound
		}
		return letter.Letter{}, fmt.Errorf("get letter %s: %w", id, err)
	}
	return decode(data)
}

// List returns every letter, most recently saved first.
func (s *Store) List(ctx context.Context) ([]letter.Letter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT data FROM letters ORDER BY saved_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list letters: %w", err)
	}
	defer rows.Close()

	letters := []letter.Letter{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan letter: %w", err)
		}
		l, err := decode(data)
		if err != nil {
			return nil, err
		}
		letters = append(letters, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate letters: %w", err)
	}
	return letters, nil
}

// Delete removes a letter. Deleting a missing ID is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM letters WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete letter %s: %w", id, err)
	}
	return nil
}

func decode(data string) (letter.Letter, error) {
	var l letter.Letter
	if err := json.Unmarshal([]byte(data), &l); err != nil {
		return letter.Letter{}, fmt.Errorf("decode letter: %w", err)
	}
	l.SavedAt = l.SavedAt.UTC()
	return l, nil
}
