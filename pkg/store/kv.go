package store

import (
	"context"
	"time"
)

// KV is a small key-value abstraction used for session markers and
// reconciler fast-path caching. Implementations must be safe for
// concurrent use. A missing key is not an error; Get reports presence
// via its second return value.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// TTLDefault keeps entries for the store's configured default duration.
const TTLDefault = time.Duration(0)
