package store

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryKV is an in-process KV backed by go-cache. Used in tests and as
// the single-node default.
type MemoryKV struct {
	cache *cache.Cache
}

func NewMemoryKV(defaultTTL, cleanupInterval time.Duration) *MemoryKV {
	return &MemoryKV{
		cache: cache.New(defaultTTL, cleanupInterval),
	}
}

func (s *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	if x, found := s.cache.Get(key); found {
		return x.(string), true, nil
	}
	return "", false, nil
}

func (s *MemoryKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if ttl == TTLDefault {
		s.cache.Set(key, value, cache.DefaultExpiration)
		return nil
	}
	s.cache.Set(key, value, ttl)
	return nil
}

func (s *MemoryKV) Delete(ctx context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}
