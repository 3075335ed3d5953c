// internal/words/words.go
//
// Word provider for the game.
//
// Responsibilities:
//   - Define the Provider contract the server queries for each new round.
//   - Parse and normalise word lists ("word|definition" per line).
//   - Serve random entries from an in-memory list (embedded default or file).
//
// Sources (selected by WORDS_SOURCE in main):
//   embedded  assets/words.txt compiled into the binary
//   file      WORDS_FILE=/path/to/words.txt, same line format
//   sqlite    the words table (see sqlite.go)
//   remote    a JSON endpoint (see remote.go)
//
// Constraints:
//   • Words are trimmed, lower-cased and must be letters only.
//   • Duplicates keep the first definition seen.
//   • An empty source yields ErrNoWordAvailable; there is no fallback word.

package words

import (
	"bufio"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/robalobadob/hangman/assets"
)

// ErrNoWordAvailable is returned when a provider has nothing to hand out.
var ErrNoWordAvailable = errors.New("words: no word available")

// Entry is a secret word and its optional definition.
type Entry struct {
	Word       string `json:"word"`
	Definition string `json:"definition,omitempty"`
}

// Provider supplies words for new rounds.
type Provider interface {
	FetchWord(ctx context.Context) (Entry, error)
}

// List is an in-memory Provider picking uniformly at random.
type List struct {
	entries []Entry
}

// NewList normalises entries and wraps them in a List.
func NewList(entries []Entry) *List {
	return &List{entries: Normalize(entries)}
}

// FetchWord returns a cryptographically random entry.
func (l *List) FetchWord(ctx context.Context) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	if len(l.entries) == 0 {
		return Entry{}, ErrNoWordAvailable
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.entries))))
	if err != nil {
		return Entry{}, fmt.Errorf("words: pick: %w", err)
	}
	return l.entries[n.Int64()], nil
}

// Entries returns the normalised entries in list order.
func (l *List) Entries() []Entry { return l.entries }

// Len is the number of distinct words loaded.
func (l *List) Len() int { return len(l.entries) }

// Embedded loads the default list compiled into the binary.
func Embedded() (*List, error) {
	f, err := assets.OpenWords()
	if err != nil {
		return nil, fmt.Errorf("words: embedded list: %w", err)
	}
	defer f.Close()
	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("words: embedded list: %w", err)
	}
	return NewList(entries), nil
}

// LoadFile reads a word file from disk.
func LoadFile(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	return NewList(entries), nil
}

// Parse reads "word|definition" lines, skipping blanks and '#' comments.
// Entries are returned as written; NewList normalises them.
func Parse(r io.Reader) ([]Entry, error) {
	var out []Entry
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, parseLine(line))
	}
	return out, sc.Err()
}

func parseLine(line string) Entry {
	word, def, _ := strings.Cut(line, "|")
	return Entry{Word: word, Definition: strings.TrimSpace(def)}
}

// Normalize lower-cases words, drops invalid ones and removes duplicates.
func Normalize(entries []Entry) []Entry {
	cleaned := lo.Map(entries, func(e Entry, _ int) Entry {
		return Entry{
			Word:       strings.ToLower(strings.TrimSpace(e.Word)),
			Definition: strings.TrimSpace(e.Definition),
		}
	})
	valid := lo.Filter(cleaned, func(e Entry, _ int) bool { return IsValidWord(e.Word) })
	return lo.UniqBy(valid, func(e Entry) string { return e.Word })
}

// IsValidWord reports whether w is a non-empty run of letters.
func IsValidWord(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
