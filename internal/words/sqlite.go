package words

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite serves words from the words table.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite { return &SQLite{db: db} }

// FetchWord picks a random row. An empty table yields ErrNoWordAvailable.
func (s *SQLite) FetchWord(ctx context.Context) (Entry, error) {
	var e Entry
	err := s.db.QueryRowContext(ctx,
		`SELECT word, COALESCE(definition, '') FROM words ORDER BY RANDOM() LIMIT 1`,
	).Scan(&e.Word, &e.Definition)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNoWordAvailable
	}
	if err != nil {
		return Entry{}, fmt.Errorf("words: query: %w", err)
	}
	return e, nil
}

// Add inserts entries after normalising them; existing words are left alone.
// Returns how many rows were inserted.
func (s *SQLite) Add(ctx context.Context, entries []Entry) (int, error) {
	entries = Normalize(entries)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	added := 0
	for _, e := range entries {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO words (word, definition) VALUES (?, NULLIF(?, ''))`,
			e.Word, e.Definition)
		if err != nil {
			return 0, fmt.Errorf("words: insert %q: %w", e.Word, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

// Count returns the number of stored words.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM words`).Scan(&n)
	return n, err
}
