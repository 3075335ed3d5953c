package score

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite stores scores in the scores table and resolves display names
// from users for the leaderboard.
type SQLite struct {
	db *sql.DB
}

// NewSQLiteStore returns a Store backed by the scores table of db.
func NewSQLiteStore(db *sql.DB) *SQLite { return &SQLite{db: db} }

func (s *SQLite) Score(ctx context.Context, playerID string) (int, error) {
	if playerID == "" {
		return 0, ErrUnknownPlayer
	}
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT score FROM scores WHERE player_id=?`, playerID).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("score: read %s: %w", playerID, err)
	}
	return n, nil
}

func (s *SQLite) Increment(ctx context.Context, playerID string) error {
	if playerID == "" {
		return ErrUnknownPlayer
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scores (player_id, score, updated_at) VALUES (?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(player_id) DO UPDATE SET score = score + 1, updated_at = CURRENT_TIMESTAMP`,
		playerID)
	if err != nil {
		return fmt.Errorf("score: increment %s: %w", playerID, err)
	}
	return nil
}

func (s *SQLite) Leaderboard(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.player_id, COALESCE(u.username, ''), s.score
		FROM scores s
		LEFT JOIN users u ON u.id = s.player_id
		ORDER BY s.score DESC, s.updated_at ASC, s.player_id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.PlayerID, &e.DisplayName, &e.Score); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
