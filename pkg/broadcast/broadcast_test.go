package broadcast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChannelBroadcasterDelivers(t *testing.T) {
	b := NewChannelBroadcaster()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := b.Subscribe(ctx, TopicGuestLinked)
	assert.NoError(t, err)

	assert.NoError(t, b.Publish(ctx, TopicGuestLinked, []byte("hello")))

	select {
	case payload := <-ch:
		assert.Equal(t, "hello", string(payload))
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast delivery")
	}
}

func TestChannelBroadcasterTopicsAreIsolated(t *testing.T) {
	b := NewChannelBroadcaster()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signout, err := b.Subscribe(ctx, TopicAuthSignout)
	assert.NoError(t, err)

	assert.NoError(t, b.Publish(ctx, TopicGuestLinked, []byte("linked")))

	select {
	case payload := <-signout:
		t.Fatalf("unexpected delivery on signout topic: %s", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestChannelBroadcasterFanOut(t *testing.T) {
	b := NewChannelBroadcaster()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, _ := b.Subscribe(ctx, TopicAuthSignout)
	c, _ := b.Subscribe(ctx, TopicAuthSignout)

	assert.NoError(t, b.Publish(ctx, TopicAuthSignout, []byte("x")))

	for _, ch := range []<-chan []byte{a, c} {
		select {
		case payload := <-ch:
			assert.Equal(t, "x", string(payload))
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive fan-out")
		}
	}
}
