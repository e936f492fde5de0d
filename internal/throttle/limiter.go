package throttle

import (
	"context"
	"errors"
	"time"

	"github.com/khanghh/signup/internal/store"
)

var ErrTooManyAttempts = errors.New("too many attempts, please try again later")

type Attempts struct {
	Count int64 `redis:"count"`
}

// Limiter counts attempts per key in fixed windows. The window starts with
// the first attempt and the counter is dropped when it ends.
type Limiter struct {
	store  store.Store[Attempts]
	limit  int64
	window time.Duration
}

// Allow records one attempt for key and returns ErrTooManyAttempts once
// the limit of the current window is exceeded. A limit <= 0 disables the
// limiter.
func (l *Limiter) Allow(ctx context.Context, key string) error {
	if l.limit <= 0 {
		return nil
	}
	count, err := l.store.IncrAttr(ctx, key, "count", 1)
	if err != nil {
		return err
	}
	if count == 1 {
		if err := l.store.Expire(ctx, key, l.window); err != nil {
			return err
		}
	}
	if count > l.limit {
		return ErrTooManyAttempts
	}
	return nil
}

// Reset forgets the attempts of key, for example after a successful login.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.store.Del(ctx, key)
}

func NewLimiter(store store.Store[Attempts], limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		limit:  int64(limit),
		window: window,
	}
}
