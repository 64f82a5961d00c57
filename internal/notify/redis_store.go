package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "taskboard:notify:"

// RedisStore keeps pending notifications in a Redis list per session, so
// that several server instances can share sessions.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a store on an existing client. Queues expire ttl
// after their last push.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisStoreFromURL parses a redis:// URL and creates a store on it.
func NewRedisStoreFromURL(url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return NewRedisStore(redis.NewClient(opts), ttl), nil
}

func redisKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

// Push implements Store.
func (s *RedisStore) Push(ctx context.Context, sessionID string, n Notification) error {
	if sessionID == "" {
		return ErrNoSession
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	key := redisKey(sessionID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, payload)
		pipe.LTrim(ctx, key, -MaxPending, -1)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}
	return nil
}

// Drain implements Store.
func (s *RedisStore) Drain(ctx context.Context, sessionID string) ([]Notification, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}

	key := redisKey(sessionID)
	var items *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		items = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to drain notifications: %w", err)
	}

	raw, err := items.Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}

	out := make([]Notification, 0, len(raw))
	for _, r := range raw {
		var n Notification
		if err := json.Unmarshal([]byte(r), &n); err != nil {
			// Skip entries written by an incompatible version.
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
