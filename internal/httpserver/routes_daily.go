// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's round (creates or reuses the session)
//   - POST /daily/guess       → play a letter in today's round
//   - GET  /daily/leaderboard → winners for today (or ?date=YYYY-MM-DD)
//
// Everyone gets the same word per UTC day. Each player (or anonymous browser)
// records one result per day; the result is stored when the round ends.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/daily"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/identity"
	"github.com/robalobadob/hangman/internal/store"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
		r.Post("/guess", s.handleDailyGuess)
		r.Get("/leaderboard", s.handleDailyLeaderboard)
	})
}

// dailyOwner returns the player ID when signed in, otherwise the anon ID.
func (s *Server) dailyOwner(w http.ResponseWriter, r *http.Request) string {
	if me := identity.PlayerFrom(r.Context()); me != nil {
		return me.ID
	}
	return s.ensureAnonID(w, r)
}

func dailyKey(uid, date string) string { return "daily:" + uid + "|" + date }

// dailyPlayed reports whether uid, or the browser's anonymous ID, already
// has a result for date. A guest who finished the word and then signed in
// cannot play it again under the new account.
func (s *Server) dailyPlayed(r *http.Request, uid, date string) bool {
	for _, id := range lo.Uniq(lo.Compact([]string{uid, anonID(r)})) {
		played, err := s.DailyStore.AlreadyPlayed(r.Context(), id, date)
		if err != nil {
			log.Warn().Err(err).Str("user", id).Msg("daily played lookup")
			continue
		}
		if played {
			return true
		}
	}
	return false
}

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	Date   string         `json:"date"`
	Played bool           `json:"played"`
	Round  *game.Snapshot `json:"round,omitempty"`
}

// handleDailyNew creates or reuses today's session.
// - A stored result for today → played=true, no round.
// - Otherwise the live session is reused, or started with today's word.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	uid := s.dailyOwner(w, r)
	date, _, entry, err := s.Daily.Today()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no_word_available", "date": date})
		return
	}

	if s.dailyPlayed(r, uid, date) {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	live, err := s.Sessions.GetOrCreate(r.Context(), dailyKey(uid, date))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session_failed")
		return
	}
	live.Lock()
	defer live.Unlock()

	sess := live.Session
	if sess.Status() != game.StatusAwaitingWord {
		s.syncPlayer(r.Context(), sess, identity.PlayerFrom(r.Context()))
		snap := sess.Snapshot()
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Round: &snap})
		return
	}
	s.refreshPlayer(r.Context(), sess, identity.PlayerFrom(r.Context()))
	if err := sess.NewRound(entry.Word, entry.Definition); err != nil {
		writeError(w, http.StatusBadGateway, "invalid_word")
		return
	}
	sess.ID = dailyKey(uid, date)
	live.StartedAt = time.Now()
	snap := sess.Snapshot()
	writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Round: &snap})
}

// handleDailyGuess applies a letter to today's session and stores the result
// once the round ends.
func (s *Server) handleDailyGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	uid := s.dailyOwner(w, r)
	date, _, _, _ := s.Daily.Today()

	live, err := s.Sessions.Get(r.Context(), dailyKey(uid, date))
	if err != nil {
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	live.Lock()
	defer live.Unlock()

	before := live.Session.Status()
	out, ok := s.applyGuess(r.Context(), w, live, req.Letter)
	if !ok || before.Terminal() || !out.Status.Terminal() {
		return
	}
	s.storeDailyResult(r, live, uid, date)
}

func (s *Server) storeDailyResult(r *http.Request, live *store.Live, uid, date string) {
	_, idx, _, _ := s.Daily.Today()
	res := daily.Result{
		UserID:    uid,
		Date:      date,
		WordIndex: idx,
		Misses:    live.Session.MissCount(),
		Won:       live.Session.Status() == game.StatusWon,
		ElapsedMs: int(time.Since(live.StartedAt).Milliseconds()),
	}
	if err := s.DailyStore.InsertResult(r.Context(), res); err != nil {
		log.Warn().Err(err).Str("user", uid).Str("date", date).Msg("insert daily result")
	}
}

// dailyLBRes is returned by /daily/leaderboard.
type dailyLBRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleDailyLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _, _ = s.Daily.Today()
	}
	rows, err := s.DailyStore.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, dailyLBRes{Date: date, Top: rows})
}
