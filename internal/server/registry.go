package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/playperu/countryquiz/internal/countryquiz"
	"github.com/playperu/countryquiz/internal/store"
)

// session is one player's live game. mu serializes every engine call and
// the save that follows it, so a Game State is only ever touched by one
// request at a time.
type session struct {
	mu   sync.Mutex
	key  string
	game *countryquiz.Game

	// Guarded by Sessions.mu.
	refs     int
	lastUsed time.Time
	// Guarded by mu. Set when the latest save failed.
	unsaved bool
}

// Sessions lazily loads games from the store and keeps them in memory until
// they sit idle for longer than the idle timeout.
//
// A cached game is the source of truth for its player: writes made to the
// store by another process, or through Store.Reset, are only picked up after
// the session is evicted and loaded again. Run one instance per store.
type Sessions struct {
	store store.Store
	gen   *countryquiz.Generator
	rand  countryquiz.Rand
	now   func() time.Time
	idle  time.Duration
	loads singleflight.Group

	mu    sync.Mutex
	games map[string]*session
}

const DefaultIdleTimeout = 30 * time.Minute

func NewSessions(st store.Store, catalog *countryquiz.Catalog, r countryquiz.Rand, idle time.Duration) *Sessions {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	shared := countryquiz.NewLockedRand(r)
	return &Sessions{
		store: st,
		gen:   countryquiz.NewGenerator(catalog, shared),
		rand:  shared,
		now:   time.Now,
		idle:  idle,
		games: make(map[string]*session),
	}
}

// Get returns the player's session and pins it against eviction. Every
// successful Get must be paired with a Release.
func (s *Sessions) Get(ctx context.Context, key string) (*session, error) {
	if sess := s.acquire(key); sess != nil {
		return sess, nil
	}

	// Concurrent first requests for one player share a single store load,
	// and the load never holds s.mu.
	v, err, _ := s.loads.Do(key, func() (any, error) {
		return s.store.LoadOrCreate(ctx, key)
	})
	if err != nil {
		return nil, fmt.Errorf("loading player %q: %w", key, err)
	}
	state := v.(*countryquiz.GameState)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.games[key]
	if !ok {
		sess = &session{
			key:  key,
			game: countryquiz.NewGame(state.Clone(), s.gen, s.rand, s.now),
		}
		s.games[key] = sess
	}
	sess.refs++
	sess.lastUsed = s.now()
	return sess, nil
}

func (s *Sessions) acquire(key string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.games[key]
	if !ok {
		return nil
	}
	sess.refs++
	sess.lastUsed = s.now()
	return sess
}

func (s *Sessions) Release(sess *session) {
	s.mu.Lock()
	sess.refs--
	sess.lastUsed = s.now()
	s.mu.Unlock()
}

// Len reports how many sessions are cached.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// Sweep evicts sessions that are not in use and have been idle for longer
// than the idle timeout. Sessions whose latest save failed are kept, since
// memory holds their only copy.
func (s *Sessions) Sweep() int {
	cutoff := s.now().Add(-s.idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, sess := range s.games {
		if sess.refs > 0 || sess.lastUsed.After(cutoff) {
			continue
		}
		if !sess.mu.TryLock() {
			continue
		}
		unsaved := sess.unsaved
		sess.mu.Unlock()
		if unsaved {
			continue
		}
		delete(s.games, key)
		evicted++
	}
	return evicted
}

// Run sweeps idle sessions every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, logger *slog.Logger, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Debug("evicted idle sessions", "count", n, "cached", s.Len())
			}
		}
	}
}

// save persists the session's state. A failure is logged and reported to
// the caller, but the in-memory game stays authoritative and playable.
// The caller holds sess.mu.
func (s *Sessions) save(ctx context.Context, logger *slog.Logger, sess *session) bool {
	if err := s.store.Save(ctx, sess.game.State()); err != nil {
		logger.Error("saving game state", "player", sess.key, "error", err)
		sess.unsaved = true
		return false
	}
	sess.unsaved = false
	return true
}
