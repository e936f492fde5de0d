package store

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// PrefixedStorage namespaces every key of a shared fiber.Storage, so the
// session store and other users of one redis database do not collide.
type PrefixedStorage struct {
	fiber.Storage
	keyPrefix string
}

func (s *PrefixedStorage) Get(key string) ([]byte, error) {
	return s.Storage.Get(s.keyPrefix + key)
}

func (s *PrefixedStorage) Set(key string, val []byte, exp time.Duration) error {
	return s.Storage.Set(s.keyPrefix+key, val, exp)
}

func (s *PrefixedStorage) Delete(key string) error {
	return s.Storage.Delete(s.keyPrefix + key)
}

func NewPrefixedStorage(storage fiber.Storage, keyPrefix string) fiber.Storage {
	return &PrefixedStorage{
		Storage:   storage,
		keyPrefix: keyPrefix,
	}
}
