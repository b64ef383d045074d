package broadcast

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisBroadcaster propagates signals across server instances via Redis
// pub/sub. Messages are fire-and-forget; a subscriber that joins late
// never sees earlier signals, which matches the signout-marker contract.
type RedisBroadcaster struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisBroadcaster(rdb *redis.Client, prefix string) *RedisBroadcaster {
	return &RedisBroadcaster{rdb: rdb, prefix: prefix}
}

func (b *RedisBroadcaster) channel(topic string) string {
	return b.prefix + ":" + topic
}

func (b *RedisBroadcaster) Publish(ctx context.Context, topic string, payload []byte) error {
	return b.rdb.Publish(ctx, b.channel(topic), payload).Err()
}

func (b *RedisBroadcaster) Subscribe(ctx context.Context, topic string) (<-chan []byte, error) {
	sub := b.rdb.Subscribe(ctx, b.channel(topic))

	// Force the subscription to be established before returning so a
	// Publish immediately after Subscribe is not lost.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, err
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (b *RedisBroadcaster) Close() error {
	return nil
}
