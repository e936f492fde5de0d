package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore[T any] struct {
	rdb       redis.UniversalClient
	keyPrefix string
}

func (s *RedisStore[T]) Get(ctx context.Context, key string) (*T, error) {
	cmd := s.rdb.HGetAll(ctx, s.keyPrefix+key)
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	if len(cmd.Val()) == 0 {
		return nil, ErrNotFound
	}
	var obj T
	if err := cmd.Scan(&obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

func (s *RedisStore[T]) Set(ctx context.Context, key string, val T, expiresIn time.Duration) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, s.keyPrefix+key)
	pipe.HSet(ctx, s.keyPrefix+key, val)
	if expiresIn > 0 {
		pipe.Expire(ctx, s.keyPrefix+key, expiresIn)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore[T]) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.keyPrefix+key).Err()
}

func (s *RedisStore[T]) IncrAttr(ctx context.Context, key, field string, delta int64) (int64, error) {
	return s.rdb.HIncrBy(ctx, s.keyPrefix+key, field, delta).Result()
}

func (s *RedisStore[T]) Expire(ctx context.Context, key string, expiresIn time.Duration) error {
	return s.rdb.Expire(ctx, s.keyPrefix+key, expiresIn).Err()
}

func NewRedisStore[T any](db redis.UniversalClient, keyPrefix string) *RedisStore[T] {
	return &RedisStore[T]{
		rdb:       db,
		keyPrefix: keyPrefix,
	}
}
