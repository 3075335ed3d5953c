package identity

import (
	"context"
	"net/http"

	"github.com/robalobadob/hangman/internal/game"
)

// ctxPlayerKey is the context key type for the current player.
type ctxPlayerKey struct{}

// WithPlayer returns a copy of ctx carrying p.
func WithPlayer(ctx context.Context, p *game.Player) context.Context {
	return context.WithValue(ctx, ctxPlayerKey{}, p)
}

// PlayerFrom returns the signed-in player, or nil for guests.
func PlayerFrom(ctx context.Context) *game.Player {
	p, _ := ctx.Value(ctxPlayerKey{}).(*game.Player)
	return p
}

// CurrentPlayer resolves the request's player from its token.
// Guests and stale tokens (user deleted) resolve to nil.
func (s *Service) CurrentPlayer(r *http.Request) *game.Player {
	tok := s.bearerOrCookie(r)
	if tok == "" {
		return nil
	}
	claims, err := s.ParseToken(tok)
	if err != nil {
		return nil
	}
	u, err := s.FindByID(r.Context(), claims.ID)
	if err != nil {
		return nil
	}
	return &game.Player{ID: u.ID, DisplayName: u.Username}
}

// Optional decorates requests with the player when a valid token is present.
// It never rejects; guests pass through.
func (s *Service) Optional() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p := s.CurrentPlayer(r); p != nil {
				r = r.WithContext(WithPlayer(r.Context(), p))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Required rejects requests without a valid token with 401.
func (s *Service) Required() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := s.CurrentPlayer(r)
			if p == nil {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized"}` + "\n"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPlayer(r.Context(), p)))
		})
	}
}
