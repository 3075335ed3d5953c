package game

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func play(t *testing.T, s *Session, letters string) []Outcome {
	t.Helper()
	var outs []Outcome
	for _, r := range letters {
		out, err := s.GuessLetter(string(r))
		if err != nil {
			t.Fatalf("guess %q: %v", r, err)
		}
		outs = append(outs, out)
	}
	return outs
}

func TestWinScenario(t *testing.T) {
	is := is.New(t)
	s := NewSession()
	s.SetPlayer(&Player{ID: "p1", DisplayName: "Pat"})
	is.NoErr(s.NewRound("cat", "a feline"))

	outs := play(t, s, "cat")
	is.Equal(outs[0].Status, StatusInProgress)
	is.Equal(outs[1].Status, StatusInProgress)
	is.Equal(outs[2].Status, StatusWon)
	is.Equal(s.MissCount(), 0)

	intents := 0
	for _, o := range outs {
		if o.Intent != nil {
			intents++
			is.Equal(o.Intent.PlayerID, "p1")
		}
	}
	is.Equal(intents, 1)
	is.Equal(s.Snapshot().Definition, "a feline")
}

func TestLossScenario(t *testing.T) {
	is := is.New(t)
	s := NewSession()
	s.SetPlayer(&Player{ID: "p1"})
	is.NoErr(s.NewRound("dog", ""))

	outs := play(t, s, "xyzqwv")
	for i, o := range outs[:5] {
		is.Equal(o.Status, StatusInProgress) // still playing before the sixth miss
		is.Equal(s.RemainingAttempts() <= MaxMisses-(i+1), true)
	}
	is.Equal(outs[5].Status, StatusLost)
	is.Equal(s.MissCount(), MaxMisses)
	is.Equal(s.RemainingAttempts(), 0)
	for _, o := range outs {
		is.Equal(o.Intent, nil)
	}
}

func TestDuplicateLetterIsIgnored(t *testing.T) {
	is := is.New(t)
	s := NewSession()
	is.NoErr(s.NewRound("bee", ""))

	first, err := s.GuessLetter("b")
	is.NoErr(err)
	is.True(first.Changed)

	second, err := s.GuessLetter("b")
	is.NoErr(err)
	is.True(!second.Changed)
	is.Equal(s.Guessed(), []string{"b"})
	is.Equal(s.MissCount(), 0)

	miss, _ := s.GuessLetter("z")
	is.True(miss.Changed)
	again, _ := s.GuessLetter("Z")
	is.True(!again.Changed)
	is.Equal(s.MissCount(), 1) // a repeated miss is not counted twice
}

func TestGuessBeforeRoundIsNoop(t *testing.T) {
	is := is.New(t)
	s := NewSession()

	out, err := s.GuessLetter("a")
	is.NoErr(err)
	is.Equal(out.Status, StatusAwaitingWord)
	is.True(!out.Changed)
	is.Equal(s.Guessed(), []string{})
	is.Equal(s.MissCount(), 0)
}

func TestNewRoundRejectsEmptyWord(t *testing.T) {
	is := is.New(t)
	s := NewSession()

	is.Equal(s.NewRound("", ""), ErrInvalidWord)
	is.Equal(s.NewRound("   \t", ""), ErrInvalidWord)
	is.Equal(s.Status(), StatusAwaitingWord)

	is.NoErr(s.NewRound("moon", ""))
	play(t, s, "mx")
	is.Equal(s.NewRound("", ""), ErrInvalidWord)
	// previous round untouched
	is.Equal(s.Word(), "moon")
	is.Equal(s.Guessed(), []string{"m", "x"})
	is.Equal(s.MissCount(), 1)
	is.Equal(s.Status(), StatusInProgress)
}

func TestInvalidLetter(t *testing.T) {
	is := is.New(t)
	s := NewSession()
	is.NoErr(s.NewRound("cat", ""))

	for _, in := range []string{"", "ab", "ca"} {
		out, err := s.GuessLetter(in)
		is.Equal(err, ErrInvalidLetter)
		is.Equal(out.Status, StatusInProgress)
	}
	is.Equal(s.Guessed(), []string{})
}

func TestCaseInsensitive(t *testing.T) {
	is := is.New(t)
	s := NewSession()
	is.NoErr(s.NewRound("Cat", ""))
	is.Equal(s.Word(), "cat")

	out, err := s.GuessLetter("C")
	is.NoErr(err)
	is.True(out.Hit)
	is.Equal(s.Masked(), "c__")

	dup, _ := s.GuessLetter("c")
	is.True(!dup.Changed)
}

func TestTerminalStateIsFrozen(t *testing.T) {
	is := is.New(t)
	s := NewSession()
	s.SetPlayer(&Player{ID: "p1"})
	is.NoErr(s.NewRound("ox", ""))
	outs := play(t, s, "ox")
	is.Equal(outs[1].Status, StatusWon)
	is.True(outs[1].Intent != nil)

	for _, r := range "abcoxyz" {
		out, err := s.GuessLetter(string(r))
		is.NoErr(err)
		is.True(!out.Changed)
		is.Equal(out.Intent, nil) // no second score intent
		is.Equal(out.Status, StatusWon)
	}
	is.Equal(s.Guessed(), []string{"o", "x"})
	is.Equal(s.MissCount(), 0)
}

func TestWinWithoutPlayerEmitsNoIntent(t *testing.T) {
	is := is.New(t)
	s := NewSession()
	is.NoErr(s.NewRound("a", ""))
	out, err := s.GuessLetter("a")
	is.NoErr(err)
	is.Equal(out.Status, StatusWon)
	is.Equal(out.Intent, nil)
}

func TestDisplay(t *testing.T) {
	is := is.New(t)
	s := NewSession()
	is.NoErr(s.NewRound("noon", ""))
	is.Equal(s.Masked(), "____")

	play(t, s, "o")
	var cells []Cell
	for c := range s.Display() {
		cells = append(cells, c)
	}
	is.Equal(cells, []Cell{{'n', false}, {'o', true}, {'o', true}, {'n', false}})

	// the sequence is restartable and reflects later guesses
	play(t, s, "n")
	is.Equal(s.Masked(), "noon")

	// early stop
	n := 0
	for range s.Display() {
		n++
		if n == 2 {
			break
		}
	}
	is.Equal(n, 2)
}

func TestRestartReplacesRound(t *testing.T) {
	is := is.New(t)
	s := NewSession()
	is.NoErr(s.NewRound("dog", ""))
	play(t, s, "xyzqwv")
	is.Equal(s.Status(), StatusLost)

	is.NoErr(s.Restart("cat", "a feline"))
	is.Equal(s.Status(), StatusInProgress)
	is.Equal(s.MissCount(), 0)
	is.Equal(s.Guessed(), []string{})
	is.Equal(s.RemainingAttempts(), MaxMisses)
}

func TestEvents(t *testing.T) {
	is := is.New(t)
	s := NewSession()
	var kinds []EventKind
	unsub := s.Subscribe(func(e Event) { kinds = append(kinds, e.Kind) })

	is.NoErr(s.NewRound("hi", ""))
	play(t, s, "hzi")
	is.Equal(kinds, []EventKind{EventRoundStarted, EventHit, EventMiss, EventHit, EventWin})

	kinds = nil
	is.NoErr(s.NewRound("a", ""))
	play(t, s, "bcdefg")
	is.Equal(kinds[len(kinds)-1], EventLoss)

	unsub()
	kinds = nil
	is.NoErr(s.NewRound("a", ""))
	is.Equal(len(kinds), 0)
}

func TestSnapshotHidesWordUntilEnd(t *testing.T) {
	is := is.New(t)
	s := NewSession()
	is.NoErr(s.NewRound("cat", "a feline"))
	play(t, s, "a")

	snap := s.Snapshot()
	is.Equal(snap.Word, "")
	is.Equal(snap.Definition, "")
	is.Equal(snap.Masked, "_a_")
	is.Equal(len(snap.Keyboard), 26)
	is.True(snap.Keyboard[0].Guessed)
	is.True(!snap.Keyboard[1].Guessed)

	play(t, s, "ct")
	snap = s.Snapshot()
	is.Equal(snap.Word, "cat")
	is.Equal(snap.Definition, "a feline")
}

// TestRandomPlayInvariants drives many rounds with random letters and checks
// the session invariants after every call.
func TestRandomPlayInvariants(t *testing.T) {
	is := is.New(t)
	rng := rand.New(rand.NewPCG(1, 2))
	words := []string{"cat", "dog", "bee", "hangman", "queue", "rhythm", "abcdefghij", "zz"}

	for round := 0; round < 500; round++ {
		s := NewSession()
		s.SetPlayer(&Player{ID: "p"})
		word := words[rng.IntN(len(words))]
		is.NoErr(s.NewRound(word, ""))

		intents := 0
		for i := 0; i < 40; i++ {
			letter := string(rune('a' + rng.IntN(26)))
			if rng.IntN(4) == 0 {
				letter = strings.ToUpper(letter)
			}
			before := s.Status()
			out, err := s.GuessLetter(letter)
			is.NoErr(err)
			if out.Intent != nil {
				intents++
				is.Equal(before, StatusInProgress)
			}
			if before.Terminal() {
				is.True(!out.Changed)
			}

			is.True(s.MissCount() <= MaxMisses)
			misses := 0
			for _, g := range s.Guessed() {
				if !strings.Contains(word, g) {
					misses++
				}
			}
			is.Equal(misses, s.MissCount())
			is.Equal(s.Status() == StatusLost, s.MissCount() >= MaxMisses)
			is.Equal(s.Masked() == word, s.Status() == StatusWon)
		}
		is.True(intents <= 1)
		is.Equal(intents == 1, s.Status() == StatusWon)
	}
}

func TestPlayerChangesMidRound(t *testing.T) {
	is := is.New(t)

	// signed in after the round started: the win scores for the new player
	s := NewSession()
	is.NoErr(s.NewRound("ab", ""))
	play(t, s, "a")
	s.SetPlayer(&Player{ID: "p1"})
	out := play(t, s, "b")[0]
	is.Equal(out.Status, StatusWon)
	is.True(out.Intent != nil)
	is.Equal(out.Intent.PlayerID, "p1")

	// signed out before the winning letter: no intent
	s = NewSession()
	s.SetPlayer(&Player{ID: "p1"})
	is.NoErr(s.NewRound("ab", ""))
	play(t, s, "a")
	s.SetPlayer(nil)
	out = play(t, s, "b")[0]
	is.Equal(out.Status, StatusWon)
	is.Equal(out.Intent, nil)

	// switched accounts: the player present at the win is credited
	s = NewSession()
	s.SetPlayer(&Player{ID: "p1"})
	is.NoErr(s.NewRound("ab", ""))
	play(t, s, "a")
	s.SetPlayer(&Player{ID: "p2"})
	out = play(t, s, "b")[0]
	is.Equal(out.Intent.PlayerID, "p2")
}
