package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryKVRoundTrip(t *testing.T) {
	kv := NewMemoryKV(time.Minute, time.Minute)
	ctx := context.Background()

	_, found, err := kv.Get(ctx, "missing")
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, kv.Set(ctx, "k", "v", TTLDefault))

	got, found, err := kv.Get(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", got)

	assert.NoError(t, kv.Delete(ctx, "k"))
	_, found, _ = kv.Get(ctx, "k")
	assert.False(t, found)
}

func TestMemoryKVExpiry(t *testing.T) {
	kv := NewMemoryKV(time.Minute, time.Minute)
	ctx := context.Background()

	assert.NoError(t, kv.Set(ctx, "short", "v", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, found, _ := kv.Get(ctx, "short")
	assert.False(t, found)
}

func TestMemoryKVOverwrite(t *testing.T) {
	kv := NewMemoryKV(time.Minute, time.Minute)
	ctx := context.Background()

	kv.Set(ctx, "k", "one", TTLDefault)
	kv.Set(ctx, "k", "two", TTLDefault)

	got, found, _ := kv.Get(ctx, "k")
	assert.True(t, found)
	assert.Equal(t, "two", got)
}
