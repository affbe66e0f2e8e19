// Package redis keeps match snapshots in Redis and announces every save.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"relife/internal/domain"
	"relife/internal/ports"
	"relife/internal/snapshot"
)

const (
	keyPrefix = "relife:snapshot:"
	// Channel receives the match id after every save.
	Channel = "relife:snapshots"
)

// SnapshotStore implements ports.SnapshotStore on a Redis client.
type SnapshotStore struct {
	rdb goredis.UniversalClient
	ttl time.Duration
}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore wraps an existing client. A zero ttl keeps snapshots forever.
func NewSnapshotStore(rdb goredis.UniversalClient, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{rdb: rdb, ttl: ttl}
}

// Dial connects to addr and checks the connection.
func Dial(ctx context.Context, addr, password string, db int, ttl time.Duration) (*SnapshotStore, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return NewSnapshotStore(rdb, ttl), nil
}

// Key returns the storage key of a match.
func Key(matchID string) string {
	return keyPrefix + matchID
}

// Save stores the snapshot and publishes the match id.
func (s *SnapshotStore) Save(ctx context.Context, matchID string, st *domain.GameState) error {
	data, err := snapshot.Encode(st)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, Key(matchID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot %s: %w", matchID, err)
	}
	if err := s.rdb.Publish(ctx, Channel, matchID).Err(); err != nil {
		return fmt.Errorf("publish snapshot %s: %w", matchID, err)
	}
	return nil
}

// Load returns the latest snapshot of a match.
func (s *SnapshotStore) Load(ctx context.Context, matchID string) (*domain.GameState, error) {
	data, err := s.rdb.Get(ctx, Key(matchID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ports.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", matchID, err)
	}
	return snapshot.Decode(data)
}

// Subscribe listens for saved match ids.
func (s *SnapshotStore) Subscribe(ctx context.Context) *goredis.PubSub {
	return s.rdb.Subscribe(ctx, Channel)
}

// Close closes the underlying client.
func (s *SnapshotStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
