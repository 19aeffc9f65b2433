package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/playperu/countryquiz/internal/countryquiz"
)

// RedisStore keeps each state as a JSON string under <prefix>state:<key>.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// OpenRedis parses rawURL and pings the server before returning.
func OpenRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

func (s *RedisStore) stateKey(key string) string {
	return s.prefix + "state:" + key
}

func (s *RedisStore) LoadOrCreate(ctx context.Context, key string) (*countryquiz.GameState, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.stateKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return countryquiz.NewGameState(key), nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting state %q: %w", key, err)
	}
	return decode(key, data)
}

func (s *RedisStore) Save(ctx context.Context, state *countryquiz.GameState) error {
	data, err := encode(state)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.stateKey(state.PlayerKey), data, 0).Err(); err != nil {
		return fmt.Errorf("saving state %q: %w", state.PlayerKey, err)
	}
	return nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return resetWith(ctx, s, key)
}

func (s *RedisStore) Check(ctx context.Context) error { return s.client.Ping(ctx).Err() }

func (s *RedisStore) Close() error { return s.client.Close() }
