// internal/game/engine.go
//
// Core state machine for a single Hangman session.
// Responsibilities:
//   - Start rounds from a provider-supplied word (validated, lower-cased).
//   - Evaluate letter guesses, counting misses against MaxMisses.
//   - Track state transitions: in_progress → won/lost, exactly once per round.
//   - Emit a score intent on the win edge and events to subscribers.
//
// Notes:
//   - A Session performs no I/O. Word fetching, identity and score
//     persistence belong to the caller.
//   - A Session is not safe for concurrent use; callers serialise access.
package game

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Listener receives session events synchronously. It must not call back
// into the session.
type Listener func(Event)

// Session holds the state of the current round.
type Session struct {
	ID string // caller-assigned round identifier

	word       []rune
	definition string
	guessed    map[rune]struct{}
	order      []rune // guessed letters in arrival order
	misses     int
	status     Status
	player     *Player

	listeners map[int]Listener
	nextSub   int
}

// NewSession returns a session waiting for its first word.
func NewSession() *Session {
	return &Session{
		guessed:   make(map[rune]struct{}),
		status:    StatusAwaitingWord,
		listeners: make(map[int]Listener),
	}
}

// NewRound starts a round with word. An empty definition means none.
// On ErrInvalidWord the session keeps its previous state.
func (s *Session) NewRound(word, definition string) error {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return ErrInvalidWord
	}
	s.word = []rune(word)
	s.definition = strings.TrimSpace(definition)
	s.guessed = make(map[rune]struct{})
	s.order = nil
	s.misses = 0
	s.status = StatusInProgress
	s.emit(EventRoundStarted, "")
	return nil
}

// Restart discards the current round and starts a new one. Anything the
// previous round already emitted stays committed.
func (s *Session) Restart(word, definition string) error {
	return s.NewRound(word, definition)
}

// GuessLetter applies a single-character guess.
//
// Letters arriving while no round is in progress, or that were already
// guessed, are ignored: the outcome reports Changed=false and the state is
// untouched. Input that is not exactly one character returns ErrInvalidLetter.
//
// After a letter is recorded the loss condition is checked before the win
// condition. Both cannot hold at once because a hit never adds a miss.
func (s *Session) GuessLetter(letter string) (Outcome, error) {
	if utf8.RuneCountInString(letter) != 1 {
		return Outcome{Status: s.status}, ErrInvalidLetter
	}
	r, _ := utf8.DecodeRuneInString(letter)
	r = unicode.ToLower(r)

	if s.status != StatusInProgress {
		return Outcome{Status: s.status}, nil
	}
	if _, seen := s.guessed[r]; seen {
		return Outcome{Status: s.status, Hit: s.contains(r)}, nil
	}

	s.guessed[r] = struct{}{}
	s.order = append(s.order, r)
	hit := s.contains(r)
	if hit {
		s.emit(EventHit, string(r))
	} else {
		s.misses++
		s.emit(EventMiss, string(r))
	}

	out := Outcome{Changed: true, Hit: hit}
	switch {
	case s.misses >= MaxMisses:
		s.status = StatusLost
		s.emit(EventLoss, string(r))
	case s.allRevealed():
		s.status = StatusWon
		if s.player != nil && s.player.ID != "" {
			out.Intent = &ScoreIntent{PlayerID: s.player.ID}
		}
		s.emit(EventWin, string(r))
	}
	out.Status = s.status
	return out, nil
}

// Display yields one cell per character of the secret word. The sequence is
// computed from the live state each time it is ranged over.
func (s *Session) Display() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, r := range s.word {
			_, ok := s.guessed[r]
			if !yield(Cell{Char: r, Revealed: ok}) {
				return
			}
		}
	}
}

// Masked renders Display as a string, e.g. "c_t".
func (s *Session) Masked() string {
	var b strings.Builder
	for c := range s.Display() {
		b.WriteRune(c.Rune())
	}
	return b.String()
}

// RemainingAttempts is MaxMisses minus the misses so far, never negative.
func (s *Session) RemainingAttempts() int {
	return max(MaxMisses-s.misses, 0)
}

// Status is the lifecycle state of the current round.
func (s *Session) Status() Status { return s.status }

// MissCount is the number of guessed letters absent from the word.
func (s *Session) MissCount() int { return s.misses }

// Word returns the secret word. Callers must not reveal it before the round ends.
func (s *Session) Word() string { return string(s.word) }

// Definition is the optional hint supplied with the word; may be empty.
func (s *Session) Definition() string { return s.definition }

// Guessed returns the guessed letters in the order they were first played.
func (s *Session) Guessed() []string {
	out := make([]string, len(s.order))
	for i, r := range s.order {
		out[i] = string(r)
	}
	return out
}

// HasGuessed reports whether letter was already played this round.
func (s *Session) HasGuessed(letter rune) bool {
	_, ok := s.guessed[unicode.ToLower(letter)]
	return ok
}

// SetPlayer updates the identity the session plays for; nil signs out.
// A win only emits a score intent when a player is set at that moment.
func (s *Session) SetPlayer(p *Player) { s.player = p }

// Player returns the identity the session plays for, or nil for guests.
func (s *Session) Player() *Player { return s.player }

// Subscribe registers l for future events and returns a function that
// removes it.
func (s *Session) Subscribe(l Listener) (unsubscribe func()) {
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = l
	return func() { delete(s.listeners, id) }
}

// Watched reports whether any subscriber is attached.
func (s *Session) Watched() bool { return len(s.listeners) > 0 }

func (s *Session) emit(kind EventKind, letter string) {
	if len(s.listeners) == 0 {
		return
	}
	ev := Event{
		Kind:      kind,
		Letter:    letter,
		Status:    s.status,
		MissCount: s.misses,
		Remaining: s.RemainingAttempts(),
	}
	for _, l := range s.listeners {
		l(ev)
	}
}

// contains reports whether r occurs in the secret word.
func (s *Session) contains(r rune) bool {
	for _, w := range s.word {
		if w == r {
			return true
		}
	}
	return false
}

// allRevealed reports whether every character of the word has been guessed.
func (s *Session) allRevealed() bool {
	for _, r := range s.word {
		if _, ok := s.guessed[r]; !ok {
			return false
		}
	}
	return true
}
