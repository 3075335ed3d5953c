package score

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
)

// Dispatcher carries out score intents in the background.
// Errors are logged; the round outcome is never affected.
type Dispatcher struct {
	store   Store
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher returns a Dispatcher writing to st; timeout <= 0 means 5s.
func NewDispatcher(st Store, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{store: st, timeout: timeout}
}

// Dispatch applies intent asynchronously. A nil intent is ignored.
func (d *Dispatcher) Dispatch(intent *game.ScoreIntent) {
	if intent == nil {
		return
	}
	d.wg.Add(1)
	go func(playerID string) {
		defer d.wg.Done()
		// not bound to the request context
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.store.Increment(ctx, playerID); err != nil {
			log.Warn().Err(err).Str("player", playerID).Msg("score increment failed")
			return
		}
		log.Debug().Str("player", playerID).Msg("score incremented")
	}(intent.PlayerID)
}

// Wait blocks until every dispatched intent has finished.
func (d *Dispatcher) Wait() { d.wg.Wait() }
