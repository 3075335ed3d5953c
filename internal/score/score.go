// Package score persists player scores: one point per won round.
//
// The game core never touches a Store directly. It emits a
// game.ScoreIntent on the win edge and the Dispatcher carries it out in the
// background; failures are logged and never retried.
package score

import (
	"context"
	"errors"
)

// ErrUnknownPlayer is returned for an empty player ID.
var ErrUnknownPlayer = errors.New("score: unknown player")

// Entry is one leaderboard row.
type Entry struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName,omitempty"`
	Score       int    `json:"score"`
}

// Store reads and increments player scores.
type Store interface {
	// Score returns the player's current score; unknown players have 0.
	Score(ctx context.Context, playerID string) (int, error)

	// Increment adds one point.
	Increment(ctx context.Context, playerID string) error

	// Leaderboard returns the top players by score, highest first.
	Leaderboard(ctx context.Context, limit int) ([]Entry, error)
}
