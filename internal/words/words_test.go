package words

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/robalobadob/hangman/internal/database"
)

func TestParseAndNormalize(t *testing.T) {
	is := is.New(t)
	src := `# comment
Apple|A fruit.

  banana
apple|duplicate keeps first
two words|invalid
x1|invalid
été|summer
`
	entries, err := Parse(strings.NewReader(src))
	is.NoErr(err)
	is.Equal(len(entries), 6)

	l := NewList(entries)
	is.Equal(l.Entries(), []Entry{
		{Word: "apple", Definition: "A fruit."},
		{Word: "banana"},
		{Word: "été", Definition: "summer"},
	})
}

func TestListFetchWord(t *testing.T) {
	is := is.New(t)
	l := NewList([]Entry{{Word: "cat"}, {Word: "dog"}})
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		e, err := l.FetchWord(context.Background())
		is.NoErr(err)
		seen[e.Word] = true
	}
	is.True(seen["cat"] || seen["dog"])
	for w := range seen {
		is.True(w == "cat" || w == "dog")
	}
}

func TestEmptyListHasNoWord(t *testing.T) {
	is := is.New(t)
	_, err := NewList(nil).FetchWord(context.Background())
	is.True(errors.Is(err, ErrNoWordAvailable))
}

func TestEmbedded(t *testing.T) {
	is := is.New(t)
	l, err := Embedded()
	is.NoErr(err)
	is.True(l.Len() > 20)
	for _, e := range l.Entries() {
		is.True(IsValidWord(e.Word))
		is.Equal(e.Word, strings.ToLower(e.Word))
	}
}

func TestLoadFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "words.txt")
	is.NoErr(os.WriteFile(path, []byte("Lemon|sour\nlime\n"), 0o644))

	l, err := LoadFile(path)
	is.NoErr(err)
	is.Equal(l.Len(), 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	is.True(err != nil)
}

func TestSQLiteSource(t *testing.T) {
	is := is.New(t)
	db, err := database.OpenAndMigrate(filepath.Join(t.TempDir(), "words.db"))
	is.NoErr(err)
	defer db.Close()

	src := NewSQLite(db)
	ctx := context.Background()

	_, err = src.FetchWord(ctx)
	is.True(errors.Is(err, ErrNoWordAvailable))

	n, err := src.Add(ctx, []Entry{{Word: "Orchard", Definition: "fruit trees"}, {Word: "orchard"}, {Word: "bad word"}})
	is.NoErr(err)
	is.Equal(n, 1)

	n, err = src.Add(ctx, []Entry{{Word: "orchard"}})
	is.NoErr(err)
	is.Equal(n, 0)

	e, err := src.FetchWord(ctx)
	is.NoErr(err)
	is.Equal(e, Entry{Word: "orchard", Definition: "fruit trees"})

	count, err := src.Count(ctx)
	is.NoErr(err)
	is.Equal(count, 1)
}

func TestRemote(t *testing.T) {
	is := is.New(t)
	bodies := map[string]string{
		"/strings": `["Planet"]`,
		"/objects": `[{"word":"comet","definition":"icy body"}]`,
		"/object":  `{"word":"moon"}`,
		"/empty":   `[]`,
		"/invalid": `["two words"]`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/down" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(bodies[r.URL.Path]))
	}))
	defer srv.Close()

	ctx := context.Background()
	e, err := NewRemote(srv.URL + "/strings").FetchWord(ctx)
	is.NoErr(err)
	is.Equal(e.Word, "planet")

	e, err = NewRemote(srv.URL + "/objects").FetchWord(ctx)
	is.NoErr(err)
	is.Equal(e, Entry{Word: "comet", Definition: "icy body"})

	e, err = NewRemote(srv.URL + "/object").FetchWord(ctx)
	is.NoErr(err)
	is.Equal(e.Word, "moon")

	_, err = NewRemote(srv.URL + "/empty").FetchWord(ctx)
	is.True(errors.Is(err, ErrNoWordAvailable))

	_, err = NewRemote(srv.URL + "/invalid").FetchWord(ctx)
	is.True(errors.Is(err, ErrNoWordAvailable))

	_, err = NewRemote(srv.URL + "/down").FetchWord(ctx)
	is.True(err != nil)
	is.True(!errors.Is(err, ErrNoWordAvailable))
}
