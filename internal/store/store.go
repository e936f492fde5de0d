package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store keeps flat structs as hashes of attributes. Fields are mapped with
// the `redis` struct tag in every implementation.
type Store[T any] interface {
	Get(ctx context.Context, key string) (*T, error)
	Set(ctx context.Context, key string, val T, expiresIn time.Duration) error
	Del(ctx context.Context, key string) error
	IncrAttr(ctx context.Context, key, field string, delta int64) (int64, error)
	Expire(ctx context.Context, key string, expiresIn time.Duration) error
}
