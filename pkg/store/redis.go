package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/tessella/gridlock/pkg/board"
	"github.com/tessella/gridlock/pkg/observability"
)

// keyPrefix namespaces gridlock boards inside a shared redis instance.
const keyPrefix = "gridlock:board:"

// RedisStore persists boards to redis. Boards are stored as JSON strings
// under "gridlock:board:<name>" with no expiration.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to redis at addr ("host:port") and verifies the
// connection with a ping.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

// Load retrieves a board by name.
func (s *RedisStore) Load(ctx context.Context, name string) (*board.Board, error) {
	data, err := s.client.Get(ctx, keyPrefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.Store().OnMiss(ctx, BackendRedis, name)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	observability.Store().OnLoad(ctx, BackendRedis, name)
	return board.Unmarshal(data)
}

// Save stores a board under its name, overwriting any previous version.
func (s *RedisStore) Save(ctx context.Context, b *board.Board) error {
	data, err := board.Marshal(b)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, keyPrefix+b.Name, data, 0).Err(); err != nil {
		return err
	}
	observability.Store().OnSave(ctx, BackendRedis, b.Name, len(b.Widgets))
	return nil
}

// List returns all stored board names.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var names []string
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// Delete removes a board. Deleting a missing board is a no-op.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	return s.client.Del(ctx, keyPrefix+name).Err()
}

// Close closes the redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
