package savestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore keeps values as Redis strings under a key prefix.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	logger *zap.Logger
}

var _ Store[[]byte] = (*RedisStore)(nil)

// NewRedisStore wraps an existing client. prefix namespaces every key,
// e.g. "novella:".
func NewRedisStore(client redis.UniversalClient, prefix string, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{client: client, prefix: prefix, logger: logger.Named("RedisSaveStore")}
}

func (s *RedisStore) key(k string) string { return s.prefix + k }

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Error("redis get failed", zap.String("key", key), zap.Error(err))
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return b, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, v []byte) error {
	if err := s.client.Set(ctx, s.key(key), v, 0).Err(); err != nil {
		s.logger.Error("redis set failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		s.logger.Error("redis del failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
