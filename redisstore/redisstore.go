// Package redisstore persists ledger snapshots in Redis, for setups where
// several machines share one plan.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/averch/dcaplan"
)

// DefaultKey is the Redis key snapshots live under. The suffix versions the
// wire format so a future layout change can migrate instead of clobbering.
const DefaultKey = "dcaplan:snapshot:v1"

// Store implements dcaplan.Store over a Redis key.
type Store struct {
	client *redis.Client
	key    string
}

// New wraps an existing client. An empty key means DefaultKey.
func New(client *redis.Client, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{client: client, key: key}
}

// Open connects to a Redis server and pings it before returning a store.
func Open(ctx context.Context, addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return New(client, ""), nil
}

// Close releases the underlying client.
func (s *Store) Close() error { return s.client.Close() }

// Load returns the stored snapshot, or the default one when the key does not
// exist yet.
func (s *Store) Load(ctx context.Context) (*dcaplan.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return dcaplan.DefaultSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.key, err)
	}
	snap := &dcaplan.Snapshot{}
	if err := json.Unmarshal([]byte(data), snap); err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.key, err)
	}
	return snap, nil
}

// Save replaces the stored snapshot. Snapshots never expire.
func (s *Store) Save(ctx context.Context, snap *dcaplan.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("writing %s: %w", s.key, err)
	}
	return nil
}

var _ dcaplan.Store = (*Store)(nil)
