package websocket

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"jobreach-be/pkg/authstate"
	"jobreach-be/pkg/broadcast"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type connCloser struct {
	closed int32
}

func (c *connCloser) Close() error {
	atomic.StoreInt32(&c.closed, 1)
	return nil
}

func (c *connCloser) isClosed() bool {
	return atomic.LoadInt32(&c.closed) == 1
}

func TestWatchSignoutClosesConnection(t *testing.T) {
	userID := uuid.New()
	transitions := make(chan authstate.Transition, 1)
	send := make(chan []byte, 1)
	closer := &connCloser{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		watchSignout(ctx, transitions, send, closer.Close)
		close(done)
	}()

	transitions <- authstate.Transition{
		From: &authstate.Identity{UserID: userID, ExpiresAt: time.Now().Add(time.Hour)},
		To:   nil,
		At:   time.Now(),
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("signout did not close the connection")
	}
	assert.True(t, closer.isClosed())

	// The last frame tells the client why it was dropped.
	var envelope struct {
		Type string                  `json:"type"`
		Data authstate.SignoutSignal `json:"data"`
	}
	frame := <-send
	assert.NoError(t, json.Unmarshal(frame, &envelope))
	assert.Equal(t, "auth_signout", envelope.Type)
	assert.Equal(t, userID.String(), envelope.Data.UserID)
}

func TestWatchSignoutIgnoresSignIn(t *testing.T) {
	transitions := make(chan authstate.Transition, 2)
	send := make(chan []byte, 1)
	closer := &connCloser{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watchSignout(ctx, transitions, send, closer.Close)

	transitions <- authstate.Transition{
		From: nil,
		To:   &authstate.Identity{UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)},
		At:   time.Now(),
	}

	time.Sleep(50 * time.Millisecond)
	assert.False(t, closer.isClosed())
	assert.Empty(t, send)
}

func TestWatchSignoutStopsOnContextCancel(t *testing.T) {
	transitions := make(chan authstate.Transition)
	closer := &connCloser{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		watchSignout(ctx, transitions, make(chan []byte, 1), closer.Close)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
	assert.False(t, closer.isClosed())
}

func TestRemoteSignoutTearsDownConnection(t *testing.T) {
	bus := broadcast.NewChannelBroadcaster()
	defer bus.Close()

	userID := uuid.New()
	observer := authstate.NewObserver(bus, &authstate.Identity{
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	transitions := observer.Subscribe()
	closer := &connCloser{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go observer.Watch(ctx)
	go watchSignout(ctx, transitions, make(chan []byte, 1), closer.Close)

	// Let the subscription establish before publishing.
	time.Sleep(20 * time.Millisecond)

	payload, _ := json.Marshal(authstate.SignoutSignal{UserID: userID.String()})
	assert.NoError(t, bus.Publish(ctx, broadcast.TopicAuthSignout, payload))

	assert.Eventually(t, func() bool {
		return closer.isClosed()
	}, time.Second, 10*time.Millisecond)
}

func TestRemoteSignoutForOtherUserKeepsConnection(t *testing.T) {
	bus := broadcast.NewChannelBroadcaster()
	defer bus.Close()

	observer := authstate.NewObserver(bus, &authstate.Identity{
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(time.Hour),
	})
	transitions := observer.Subscribe()
	closer := &connCloser{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go observer.Watch(ctx)
	go watchSignout(ctx, transitions, make(chan []byte, 1), closer.Close)
	time.Sleep(20 * time.Millisecond)

	payload, _ := json.Marshal(authstate.SignoutSignal{UserID: uuid.New().String()})
	assert.NoError(t, bus.Publish(ctx, broadcast.TopicAuthSignout, payload))

	time.Sleep(50 * time.Millisecond)
	assert.False(t, closer.isClosed())
	assert.True(t, observer.IsAuthenticated())
}
