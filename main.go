package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/daily"
	"github.com/robalobadob/hangman/internal/database"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/identity"
	"github.com/robalobadob/hangman/internal/score"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := database.OpenAndMigrate(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()

	list, err := wordList(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	provider, err := wordProvider(cfg, db, list)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up word source")
	}

	scores := score.NewSQLiteStore(db)
	sessions := store.NewMemoryStore()
	go janitor(sessions, cfg.SessionIdleTTL)

	srv := httpserver.New(httpserver.Deps{
		Sessions:   sessions,
		Words:      provider,
		Scores:     scores,
		Dispatcher: score.NewDispatcher(scores, cfg.ScoreTimeout),
		Identity: identity.NewService(db, identity.Config{
			Secret:     cfg.JWTSecret,
			TTL:        cfg.TokenTTL(),
			CookieName: cfg.CookieName,
			Secure:     cfg.Production(),
		}),
		DB:           db,
		Daily:        daily.NewProvider(list, cfg.DailySalt),
		DailyStore:   daily.NewStore(db),
		ClientOrigin: cfg.ClientOrigin,
		Secure:       cfg.Production(),
	})

	log.Info().
		Str("port", cfg.Port).
		Str("words", cfg.WordsSource).
		Int("dailyWords", list.Len()).
		Msg("starting hangman server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// wordList is the local list behind the daily challenge and the seed for
// the sqlite source.
func wordList(cfg config.Config) (*words.List, error) {
	if cfg.WordsFile != "" {
		return words.LoadFile(cfg.WordsFile)
	}
	return words.Embedded()
}

// wordProvider picks the random-word source for regular rounds.
func wordProvider(cfg config.Config, db *sql.DB, list *words.List) (words.Provider, error) {
	switch cfg.WordsSource {
	case config.WordsRemote:
		return words.NewRemote(cfg.WordsRemoteURL), nil
	case config.WordsSQLite:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		src := words.NewSQLite(db)
		n, err := src.Count(ctx)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			added, err := src.Add(ctx, list.Entries())
			if err != nil {
				return nil, err
			}
			log.Info().Int("added", added).Msg("seeded words table")
		}
		return src, nil
	default:
		return list, nil
	}
}

// janitor drops live sessions idle for longer than ttl.
func janitor(st store.Store, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	t := time.NewTicker(ttl / 4)
	defer t.Stop()
	for range t.C {
		if n := st.Prune(context.Background(), time.Now().Add(-ttl)); n > 0 {
			log.Debug().Int("pruned", n).Msg("idle sessions removed")
		}
	}
}
