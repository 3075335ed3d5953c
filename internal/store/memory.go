// internal/store/memory.go
//
// In-memory registry of live game sessions.
//
// Characteristics:
//   - One *Live per owner key (anonymous browser ID, or "daily:<user>|<date>").
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Each Live carries its own mutex; callers hold it while driving the
//     session so letters from one owner are applied in arrival order.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/hangman/internal/game"
)

// ErrNotFound is returned by Get for unknown owners.
var ErrNotFound = errors.New("session not found")

// Live is a session plus the bookkeeping the server needs around it.
type Live struct {
	sync.Mutex

	Owner     string
	Session   *game.Session
	StartedAt time.Time // start of the current round
	LastSeen  time.Time
}

// Store defines the registry of live sessions.
type Store interface {
	// Get retrieves the live session for owner or ErrNotFound.
	Get(ctx context.Context, owner string) (*Live, error)

	// GetOrCreate returns the existing live session for owner, creating an
	// empty one (awaiting its first word) if needed.
	GetOrCreate(ctx context.Context, owner string) (*Live, error)

	// Delete drops the live session for owner.
	Delete(ctx context.Context, owner string) error

	// Prune drops sessions not seen since before, unless a subscriber is
	// attached; returns how many were removed.
	Prune(ctx context.Context, before time.Time) int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex     // guards lives map
	lives map[string]*Live // keyed by owner
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{lives: make(map[string]*Live), now: time.Now}
}

func (m *memory) Get(ctx context.Context, owner string) (*Live, error) {
	m.mu.RLock()
	l, ok := m.lives[owner]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	m.touch(l)
	return l, nil
}

func (m *memory) GetOrCreate(ctx context.Context, owner string) (*Live, error) {
	if l, err := m.Get(ctx, owner); err == nil {
		return l, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.lives[owner]; ok {
		return l, nil
	}
	now := m.now()
	l := &Live{Owner: owner, Session: game.NewSession(), LastSeen: now}
	m.lives[owner] = l
	return l, nil
}

func (m *memory) Delete(ctx context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lives, owner)
	return nil
}

func (m *memory) Prune(ctx context.Context, before time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, l := range m.lives {
		l.Lock()
		// a session with an open event stream is kept alive
		stale := l.LastSeen.Before(before) && !l.Session.Watched()
		l.Unlock()
		if stale {
			delete(m.lives, k)
			n++
		}
	}
	return n
}

func (m *memory) touch(l *Live) {
	now := m.now()
	l.Lock()
	l.LastSeen = now
	l.Unlock()
}
