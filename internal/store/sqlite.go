package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/playperu/countryquiz/internal/countryquiz"
	"github.com/playperu/countryquiz/internal/migrations"
)

// SQLiteStore keeps one JSONB document per player in game_states.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore migrates db and takes ownership of it.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if err := migrations.Run(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) LoadOrCreate(ctx context.Context, key string) (*countryquiz.GameState, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM game_states WHERE key = ?`, key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return countryquiz.NewGameState(key), nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying state %q: %w", key, err)
	}
	return decode(key, []byte(data))
}

func (s *SQLiteStore) Save(ctx context.Context, state *countryquiz.GameState) error {
	data, err := encode(state)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO game_states (key, data, updated_at) VALUES (?, jsonb(?), ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		state.PlayerKey, string(data), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving state %q: %w", state.PlayerKey, err)
	}
	return nil
}

func (s *SQLiteStore) Reset(ctx context.Context, key string) error {
	return resetWith(ctx, s, key)
}

func (s *SQLiteStore) Check(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLiteStore) Close() error { return s.db.Close() }
