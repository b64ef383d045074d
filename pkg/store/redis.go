package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV shares markers across instances. Keys carry a namespace prefix
// so one Redis can serve several environments.
type RedisKV struct {
	rdb        *redis.Client
	prefix     string
	defaultTTL time.Duration
}

func NewRedisKV(rdb *redis.Client, prefix string, defaultTTL time.Duration) *RedisKV {
	return &RedisKV{
		rdb:        rdb,
		prefix:     prefix,
		defaultTTL: defaultTTL,
	}
}

func (s *RedisKV) key(k string) string {
	return s.prefix + ":" + k
}

func (s *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if ttl == TTLDefault {
		ttl = s.defaultTTL
	}
	return s.rdb.Set(ctx, s.key(key), value, ttl).Err()
}

func (s *RedisKV) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.key(key)).Err()
}
