// Package store persists game states. Every implementation stores the same
// JSON document, so a state round-trips identically through any backend.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/playperu/countryquiz/internal/countryquiz"
)

const maxKeyLen = 64

var ErrInvalidKey = errors.New("invalid player key")

type Store interface {
	// LoadOrCreate returns the stored state for key, or a fresh one that is
	// not persisted until the first Save.
	LoadOrCreate(ctx context.Context, key string) (*countryquiz.GameState, error)
	Save(ctx context.Context, state *countryquiz.GameState) error
	// Reset performs a session reset on the stored state.
	Reset(ctx context.Context, key string) error
	Check(ctx context.Context) error
	Close() error
}

// ValidateKey accepts 1-64 characters from [A-Za-z0-9_-].
func ValidateKey(key string) error {
	if key == "" || len(key) > maxKeyLen {
		return fmt.Errorf("%w: length %d", ErrInvalidKey, len(key))
	}
	for _, c := range key {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}

func encode(state *countryquiz.GameState) ([]byte, error) {
	if err := ValidateKey(state.PlayerKey); err != nil {
		return nil, err
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return data, nil
}

func decode(key string, data []byte) (*countryquiz.GameState, error) {
	var state countryquiz.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decoding state %q: %w", key, err)
	}
	if state.PlayerKey != key {
		return nil, fmt.Errorf("%w: document key %q stored under %q", countryquiz.ErrCorruptState, state.PlayerKey, key)
	}
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("loading state %q: %w", key, err)
	}
	return &state, nil
}

// resetWith implements Reset on top of LoadOrCreate and Save.
func resetWith(ctx context.Context, s Store, key string) error {
	state, err := s.LoadOrCreate(ctx, key)
	if err != nil {
		return err
	}
	state.SessionReset()
	return s.Save(ctx, state)
}
