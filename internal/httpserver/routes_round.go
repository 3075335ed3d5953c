package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/identity"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

// guessReq/Res payloads for POST /round/guess.
type guessReq struct {
	Letter string `json:"letter"`
}
type guessRes struct {
	Changed bool          `json:"changed"` // false when the letter was ignored
	Hit     bool          `json:"hit"`
	Round   game.Snapshot `json:"round"`
}

// unavailableRes is returned with 503 when no word could be fetched.
type unavailableRes struct {
	Error string        `json:"error"`
	Round game.Snapshot `json:"round"`
}

// handleGetRound renders the caller's live session, creating an empty one
// (status awaiting_word) on first contact.
func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	live, err := s.Sessions.GetOrCreate(r.Context(), s.ensureAnonID(w, r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session_failed")
		return
	}
	live.Lock()
	defer live.Unlock()
	s.syncPlayer(r.Context(), live.Session, identity.PlayerFrom(r.Context()))
	writeJSON(w, http.StatusOK, live.Session.Snapshot())
}

// handleNewRound fetches a word and starts (or restarts) the caller's round.
// Without a word the session keeps its current state and the response is 503.
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	owner := s.ensureAnonID(w, r)
	live, err := s.Sessions.GetOrCreate(r.Context(), owner)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session_failed")
		return
	}
	player := identity.PlayerFrom(r.Context())

	entry, fetchErr := s.Words.FetchWord(r.Context())

	live.Lock()
	defer live.Unlock()
	s.startRound(r.Context(), w, live, player, owner, entry, fetchErr)
}

// startRound applies a fetched word to live and writes the response.
// Callers hold live's lock.
func (s *Server) startRound(ctx context.Context, w http.ResponseWriter, live *store.Live, player *game.Player, owner string, entry words.Entry, fetchErr error) {
	sess := live.Session
	if fetchErr != nil {
		if errors.Is(fetchErr, words.ErrNoWordAvailable) {
			log.Warn().Str("owner", owner).Msg("no word available")
		} else {
			log.Warn().Err(fetchErr).Str("owner", owner).Msg("word provider failed")
		}
		s.syncPlayer(ctx, sess, player)
		writeJSON(w, http.StatusServiceUnavailable, unavailableRes{Error: "no_word_available", Round: sess.Snapshot()})
		return
	}

	s.refreshPlayer(ctx, sess, player)
	if err := sess.NewRound(entry.Word, entry.Definition); err != nil {
		log.Warn().Err(err).Str("word", entry.Word).Msg("provider returned unusable word")
		writeJSON(w, http.StatusBadGateway, unavailableRes{Error: "invalid_word", Round: sess.Snapshot()})
		return
	}
	sess.ID = uuid.NewString()
	live.StartedAt = time.Now()
	s.recordRoundStart(ctx, sess.ID, player, owner, live.StartedAt)

	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// handleGuess applies one letter to the caller's round.
//
// Letters sent before any round exists, after the round ended, or twice are
// ignored and reported with changed=false; malformed letters get 400.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	owner := s.ensureAnonID(w, r)
	live, err := s.Sessions.GetOrCreate(r.Context(), owner)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session_failed")
		return
	}

	live.Lock()
	defer live.Unlock()
	s.applyGuess(r.Context(), w, live, req.Letter)
}

// applyGuess runs GuessLetter and its side effects. Callers hold live's lock.
func (s *Server) applyGuess(ctx context.Context, w http.ResponseWriter, live *store.Live, letter string) (game.Outcome, bool) {
	sess := live.Session
	s.syncPlayer(ctx, sess, identity.PlayerFrom(ctx))

	out, err := sess.GuessLetter(letter)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_letter")
		return out, false
	}
	if out.Changed {
		s.recordRoundProgress(ctx, sess)
	}
	s.Dispatcher.Dispatch(out.Intent)

	writeJSON(w, http.StatusOK, guessRes{Changed: out.Changed, Hit: out.Hit, Round: sess.Snapshot()})
	return out, true
}

// syncPlayer hands the session the current identity. The score is read
// only when the identity changes.
func (s *Server) syncPlayer(ctx context.Context, sess *game.Session, p *game.Player) {
	cur := sess.Player()
	switch {
	case p == nil:
		sess.SetPlayer(nil)
	case cur == nil || cur.ID != p.ID:
		s.refreshPlayer(ctx, sess, p)
	}
}

// refreshPlayer reads the player's score and sets the player on sess.
func (s *Server) refreshPlayer(ctx context.Context, sess *game.Session, p *game.Player) {
	if p == nil {
		sess.SetPlayer(nil)
		return
	}
	cp := *p
	if n, err := s.Scores.Score(ctx, p.ID); err != nil {
		log.Warn().Err(err).Str("player", p.ID).Msg("read score")
	} else {
		cp.Score = n
	}
	sess.SetPlayer(&cp)
}

// ------------------------------ history ------------------------------------

// recordRoundStart persists an owner row for the round (best effort).
func (s *Server) recordRoundStart(ctx context.Context, id string, p *game.Player, anon string, at time.Time) {
	if s.DB == nil {
		return
	}
	var playerID any
	if p != nil {
		playerID = p.ID
	}
	if _, err := s.DB.ExecContext(ctx,
		`INSERT INTO rounds (id, player_id, anonymous_id, status, misses, started_at) VALUES (?,?,?,?,0,?)`,
		id, playerID, anon, string(game.StatusInProgress), at.UTC().Format(time.RFC3339)); err != nil {
		log.Warn().Err(err).Str("roundId", id).Msg("insert round row")
	}
}

// recordRoundProgress updates misses and, on a terminal status, the finish time.
func (s *Server) recordRoundProgress(ctx context.Context, sess *game.Session) {
	if s.DB == nil || sess.ID == "" {
		return
	}
	var finished any
	if sess.Status().Terminal() {
		finished = time.Now().UTC().Format(time.RFC3339)
	}
	if _, err := s.DB.ExecContext(ctx,
		`UPDATE rounds SET status=?, misses=?, finished_at=COALESCE(?, finished_at) WHERE id=?`,
		string(sess.Status()), sess.MissCount(), finished, sess.ID); err != nil {
		log.Warn().Err(err).Str("roundId", sess.ID).Msg("update round row")
	}
}

// roundRow is one entry of GET /rounds/mine.
type roundRow struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	Misses     int    `json:"misses"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt,omitempty"`
}

// handleMyRounds lists the signed-in player's recent rounds.
func (s *Server) handleMyRounds(w http.ResponseWriter, r *http.Request) {
	me := identity.PlayerFrom(r.Context())
	if me == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if s.DB == nil {
		writeJSON(w, http.StatusOK, []roundRow{})
		return
	}
	rows, err := s.DB.QueryContext(r.Context(),
		`SELECT id, status, misses, started_at, COALESCE(finished_at,'')
		 FROM rounds WHERE player_id=? ORDER BY started_at DESC LIMIT 50`, me.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	defer rows.Close()

	out := []roundRow{}
	for rows.Next() {
		var rr roundRow
		if err := rows.Scan(&rr.ID, &rr.Status, &rr.Misses, &rr.StartedAt, &rr.FinishedAt); err == nil {
			out = append(out, rr)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// claimAnonRounds transfers a browser's anonymous rounds to a player after auth.
func (s *Server) claimAnonRounds(ctx context.Context, anon, playerID string) {
	if s.DB == nil || anon == "" || playerID == "" {
		return
	}
	if _, err := s.DB.ExecContext(ctx,
		`UPDATE rounds SET player_id=? WHERE anonymous_id=? AND player_id IS NULL`, playerID, anon); err != nil {
		log.Warn().Err(err).Msg("claim anon rounds")
	}
}

// ---------------------------- leaderboard ----------------------------------

// handleLeaderboard returns the top scores (?limit=, default 10, max 100).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = min(n, 100)
		}
	}
	top, err := s.Scores.Leaderboard(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"top": top})
}
