package score

import (
	"context"
	"sort"
	"sync"
)

// memory is an in-memory map-based Store, used in tests and when no
// database is configured. State is lost on restart.
type memory struct {
	mu     sync.RWMutex   // guards scores
	scores map[string]int // keyed by player ID
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{scores: make(map[string]int)}
}

func (m *memory) Score(ctx context.Context, playerID string) (int, error) {
	if playerID == "" {
		return 0, ErrUnknownPlayer
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scores[playerID], nil
}

func (m *memory) Increment(ctx context.Context, playerID string) error {
	if playerID == "" {
		return ErrUnknownPlayer
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[playerID]++
	return nil
}

func (m *memory) Leaderboard(ctx context.Context, limit int) ([]Entry, error) {
	m.mu.RLock()
	out := make([]Entry, 0, len(m.scores))
	for id, s := range m.scores {
		out = append(out, Entry{PlayerID: id, Score: s})
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
