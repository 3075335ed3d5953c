// internal/daily/daily.go
//
// Daily challenge: every player gets the same secret word for a UTC day.
// The word index is derived from HMAC-SHA256(salt, YYYY-MM-DD) so it is
// stable for the day and not guessable without the salt.

package daily

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/hangman/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes are plenty for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Provider is a words.Provider that always returns today's word.
type Provider struct {
	list *words.List
	salt string
	now  func() time.Time
}

func NewProvider(list *words.List, salt string) *Provider {
	return &Provider{list: list, salt: salt, now: time.Now}
}

// Today returns the date key, the index into the list and the entry for now.
func (p *Provider) Today() (date string, idx int, e words.Entry, err error) {
	now := p.now().UTC()
	date = DateKey(now)
	entries := p.list.Entries()
	if len(entries) == 0 {
		return date, 0, words.Entry{}, words.ErrNoWordAvailable
	}
	idx = WordIndex(now, p.salt, len(entries))
	return date, idx, entries[idx], nil
}

// FetchWord implements words.Provider.
func (p *Provider) FetchWord(ctx context.Context) (words.Entry, error) {
	if err := ctx.Err(); err != nil {
		return words.Entry{}, err
	}
	_, _, e, err := p.Today()
	return e, err
}
