package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

type memoryEntry struct {
	fields    map[string]string
	expiresAt time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

type MemoryStore[T any] struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

func decodeFields(fields map[string]string, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "redis",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(fields)
}

func encodeFields(val any) (map[string]string, error) {
	var attrs map[string]any
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "redis",
		Result:  &attrs,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(val); err != nil {
		return nil, err
	}
	fields := make(map[string]string, len(attrs))
	for key, attr := range attrs {
		fields[key] = fmt.Sprint(attr)
	}
	return fields, nil
}

// entry returns the live entry of key, dropping it when expired. Callers
// hold s.mu.
func (s *MemoryStore[T]) entry(key string) *memoryEntry {
	entry, ok := s.entries[key]
	if !ok {
		return nil
	}
	if entry.expired(s.now()) {
		delete(s.entries, key)
		return nil
	}
	return entry
}

func (s *MemoryStore[T]) Get(ctx context.Context, key string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.entry(key)
	if entry == nil || len(entry.fields) == 0 {
		return nil, ErrNotFound
	}
	var obj T
	if err := decodeFields(entry.fields, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

func (s *MemoryStore[T]) Set(ctx context.Context, key string, val T, expiresIn time.Duration) error {
	fields, err := encodeFields(val)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry := &memoryEntry{fields: fields}
	if expiresIn > 0 {
		entry.expiresAt = s.now().Add(expiresIn)
	}
	s.entries[key] = entry
	return nil
}

func (s *MemoryStore[T]) Del(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore[T]) IncrAttr(ctx context.Context, key, field string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.entry(key)
	if entry == nil {
		entry = &memoryEntry{fields: make(map[string]string)}
		s.entries[key] = entry
	}
	var current int64
	if raw, ok := entry.fields[field]; ok {
		val, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("attribute %s is not an integer: %w", field, err)
		}
		current = val
	}
	current += delta
	entry.fields[field] = strconv.FormatInt(current, 10)
	return current, nil
}

func (s *MemoryStore[T]) Expire(ctx context.Context, key string, expiresIn time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.entry(key)
	if entry == nil {
		return nil
	}
	if expiresIn <= 0 {
		delete(s.entries, key)
		return nil
	}
	entry.expiresAt = s.now().Add(expiresIn)
	return nil
}

func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}
