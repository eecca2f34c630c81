package preview

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const redisKeyPrefix = "preview:"

// RedisStore keeps staged bytes in redis so previews survive across API replicas.
// Entries carry a TTL so a crashed process cannot leak them forever.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(h Handle) string {
	return redisKeyPrefix + string(h)
}

func (s *RedisStore) Acquire(ctx context.Context, data []byte, contentType string) (Handle, error) {
	h := Handle("blob-" + uuid.NewString())
	key := s.key(h)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, "data", data, "type", contentType)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("preview: failed to stage blob: %w", err)
	}
	return h, nil
}

func (s *RedisStore) Release(ctx context.Context, h Handle) error {
	n, err := s.client.Del(ctx, s.key(h)).Result()
	if err != nil {
		return fmt.Errorf("preview: failed to release %s: %w", h, err)
	}
	if n == 0 {
		return ErrUnknownHandle
	}
	return nil
}

func (s *RedisStore) Open(ctx context.Context, h Handle) (*Blob, error) {
	vals, err := s.client.HGetAll(ctx, s.key(h)).Result()
	if err != nil {
		return nil, fmt.Errorf("preview: failed to read %s: %w", h, err)
	}
	data, ok := vals["data"]
	if !ok {
		return nil, ErrUnknownHandle
	}
	return &Blob{Data: []byte(data), ContentType: vals["type"]}, nil
}
