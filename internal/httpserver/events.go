package httpserver

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
)

const (
	eventBuffer  = 32
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = (pongWait * 9) / 10
)

// handleEvents streams the caller's session events (round_started, hit,
// miss, win, loss) as JSON websocket messages until the client disconnects.
//
// The browser must already hold the anonymous cookie, i.e. have called any
// /round endpoint first.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	owner := anonID(r)
	if owner == "" {
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	live, err := s.Sessions.GetOrCreate(r.Context(), owner)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session_failed")
		return
	}

	events := make(chan game.Event, eventBuffer)
	live.Lock()
	unsubscribe := live.Session.Subscribe(func(ev game.Event) {
		select {
		case events <- ev:
		default:
			log.Warn().Str("owner", owner).Str("kind", string(ev.Kind)).Msg("event dropped, slow client")
		}
	})
	live.Unlock()
	defer func() {
		live.Lock()
		unsubscribe()
		live.Unlock()
	}()

	// subscribed before the handshake completes, so no event after Dial is missed
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	// reader: handles pongs and notices the close
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	for {
		select {
		case <-done:
			return
		case ev := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				log.Debug().Err(err).Str("owner", owner).Msg("websocket write")
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
