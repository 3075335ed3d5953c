package daily

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/robalobadob/hangman/internal/database"
	"github.com/robalobadob/hangman/internal/words"
)

func TestWordIndexIsStablePerDay(t *testing.T) {
	is := is.New(t)
	morning := time.Date(2026, 3, 14, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)

	is.Equal(WordIndex(morning, "salt", 97), WordIndex(evening, "salt", 97))
	is.Equal(WordIndex(morning, "salt", 0), 0)
	for d := 0; d < 60; d++ {
		idx := WordIndex(morning.AddDate(0, 0, d), "salt", 7)
		is.True(idx >= 0 && idx < 7)
	}
	is.Equal(DateKey(evening), "2026-03-14")
}

func TestProvider(t *testing.T) {
	is := is.New(t)
	list := words.NewList([]words.Entry{{Word: "alpha"}, {Word: "bravo"}, {Word: "charlie"}})
	p := NewProvider(list, "pepper")
	day := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return day }

	date, idx, e, err := p.Today()
	is.NoErr(err)
	is.Equal(date, "2026-01-02")
	is.Equal(e, list.Entries()[idx])

	for i := 0; i < 5; i++ {
		got, err := p.FetchWord(context.Background())
		is.NoErr(err)
		is.Equal(got, e)
	}

	_, err = NewProvider(words.NewList(nil), "x").FetchWord(context.Background())
	is.True(errors.Is(err, words.ErrNoWordAvailable))
}

func TestStore(t *testing.T) {
	is := is.New(t)
	db, err := database.OpenAndMigrate(filepath.Join(t.TempDir(), "daily.db"))
	is.NoErr(err)
	defer db.Close()

	s := NewStore(db)
	ctx := context.Background()
	const date = "2026-01-02"

	played, err := s.AlreadyPlayed(ctx, "u1", date)
	is.NoErr(err)
	is.True(!played)

	is.NoErr(s.InsertResult(ctx, Result{UserID: "u1", Date: date, Misses: 2, Won: true, ElapsedMs: 9000}))
	is.NoErr(s.InsertResult(ctx, Result{UserID: "u1", Date: date, Misses: 0, Won: true, ElapsedMs: 1})) // ignored
	is.NoErr(s.InsertResult(ctx, Result{UserID: "u2", Date: date, Misses: 2, Won: true, ElapsedMs: 4000}))
	is.NoErr(s.InsertResult(ctx, Result{UserID: "u3", Date: date, Misses: 6, Won: false, ElapsedMs: 100}))
	is.NoErr(s.InsertResult(ctx, Result{UserID: "u4", Date: date, Misses: 1, Won: true, ElapsedMs: 20000}))

	played, err = s.AlreadyPlayed(ctx, "u1", date)
	is.NoErr(err)
	is.True(played)

	rows, err := s.Leaderboard(ctx, date, 0)
	is.NoErr(err)
	is.Equal(rows, []LBRow{
		{UserID: "u4", Misses: 1, ElapsedMs: 20000},
		{UserID: "u2", Misses: 2, ElapsedMs: 4000},
		{UserID: "u1", Misses: 2, ElapsedMs: 9000},
	})
}
