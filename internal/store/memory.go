package store

import (
	"context"
	"sync"

	"github.com/playperu/countryquiz/internal/countryquiz"
)

// MemoryStore keeps encoded documents in a map. State is lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) LoadOrCreate(_ context.Context, key string) (*countryquiz.GameState, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	data, ok := s.docs[key]
	s.mu.RUnlock()
	if !ok {
		return countryquiz.NewGameState(key), nil
	}
	return decode(key, data)
}

func (s *MemoryStore) Save(_ context.Context, state *countryquiz.GameState) error {
	data, err := encode(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[state.PlayerKey] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Reset(ctx context.Context, key string) error {
	return resetWith(ctx, s, key)
}

func (s *MemoryStore) Check(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
