// internal/game/types.go
//
// Core type definitions for the Hangman session state machine.
// Defines:
//   - Status: lifecycle of a round (awaiting_word → in_progress → won/lost).
//   - Cell:   one position of the masked board.
//   - Player: externally owned identity referenced by a session.
//   - Event:  observable transitions for the presentation layer.
//   - Outcome/ScoreIntent: result of applying a letter.

package game

// MaxMisses is the miss budget for a round.
const MaxMisses = 6

// Placeholder masks letters that have not been guessed yet.
const Placeholder = '_'

// Status represents where a session is in its lifecycle.
type Status string

const (
	StatusAwaitingWord Status = "awaiting_word" // no round started yet
	StatusInProgress   Status = "in_progress"
	StatusWon          Status = "won"
	StatusLost         Status = "lost"
)

// Terminal reports whether no further letters are evaluated in this status.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// Cell is a single character position of the secret word.
type Cell struct {
	Char     rune // the secret character
	Revealed bool // true once Char has been guessed
}

// Rune returns the character to show: the secret character when revealed,
// otherwise Placeholder.
func (c Cell) Rune() rune {
	if c.Revealed {
		return c.Char
	}
	return Placeholder
}

// Player is the identity a session plays for. It is owned by the identity
// provider; Score is read at round start and never modified here.
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Score       int    `json:"score"`
}

// ScoreIntent asks the score store to add one point for PlayerID.
type ScoreIntent struct {
	PlayerID string
}

// EventKind names an observable session transition.
type EventKind string

const (
	EventRoundStarted EventKind = "round_started"
	EventHit          EventKind = "hit"
	EventMiss         EventKind = "miss"
	EventWin          EventKind = "win"
	EventLoss         EventKind = "loss"
)

// Event is delivered synchronously to session subscribers.
type Event struct {
	Kind      EventKind `json:"kind"`
	Letter    string    `json:"letter,omitempty"`
	Status    Status    `json:"status"`
	MissCount int       `json:"missCount"`
	Remaining int       `json:"remaining"`
}

// Outcome describes the effect of a GuessLetter call.
type Outcome struct {
	Status  Status       // status after the call
	Changed bool         // false for ignored (duplicate, post-game, pre-round) letters
	Hit     bool         // letter is part of the secret word
	Intent  *ScoreIntent // non-nil only on the transition into StatusWon with a player present
}
