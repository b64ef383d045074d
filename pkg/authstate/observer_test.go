package authstate

import (
	"context"
	"testing"
	"time"

	"jobreach-be/pkg/broadcast"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newObserverForTest(t *testing.T, initial *Identity) (*Observer, broadcast.Broadcaster) {
	t.Helper()
	bus := broadcast.NewChannelBroadcaster()
	t.Cleanup(func() { bus.Close() })
	return NewObserver(bus, initial), bus
}

func TestObserverRejectsExpiredInitialIdentity(t *testing.T) {
	o, _ := newObserverForTest(t, &Identity{
		UserID:    uuid.New(),
		Email:     "old@example.com",
		ExpiresAt: time.Now().Add(-time.Hour),
	})

	assert.False(t, o.IsAuthenticated())
	assert.Nil(t, o.Current())
}

func TestObserverSignInOut(t *testing.T) {
	o, _ := newObserverForTest(t, nil)
	assert.False(t, o.IsAuthenticated())

	id := Identity{UserID: uuid.New(), Email: "a@example.com", ExpiresAt: time.Now().Add(time.Hour)}
	o.SetSignedIn(id)
	assert.True(t, o.IsAuthenticated())
	assert.Equal(t, id.UserID, o.Current().UserID)

	o.SignOut(context.Background())
	assert.False(t, o.IsAuthenticated())
}

func TestObserverCurrentExpiresInPlace(t *testing.T) {
	o, _ := newObserverForTest(t, nil)
	o.SetSignedIn(Identity{
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(20 * time.Millisecond),
	})

	assert.True(t, o.IsAuthenticated())
	time.Sleep(40 * time.Millisecond)
	assert.False(t, o.IsAuthenticated())
}

func TestObserverTransitions(t *testing.T) {
	o, _ := newObserverForTest(t, nil)
	events := o.Subscribe()

	id := Identity{UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}
	o.SetSignedIn(id)
	o.SignOut(context.Background())

	first := <-events
	assert.Nil(t, first.From)
	assert.NotNil(t, first.To)

	second := <-events
	assert.NotNil(t, second.From)
	assert.Nil(t, second.To)
}

func TestObserverRemoteSignoutPropagates(t *testing.T) {
	bus := broadcast.NewChannelBroadcaster()
	defer bus.Close()

	userID := uuid.New()
	o := NewObserver(bus, &Identity{UserID: userID, ExpiresAt: time.Now().Add(time.Hour)})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go o.Watch(ctx)

	// Let the subscription establish before publishing.
	time.Sleep(20 * time.Millisecond)

	err := bus.Publish(ctx, broadcast.TopicAuthSignout, []byte(`{"user_id":"`+userID.String()+`"}`))
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		return !o.IsAuthenticated()
	}, time.Second, 10*time.Millisecond)
}

func TestObserverIgnoresSignoutForOtherUser(t *testing.T) {
	bus := broadcast.NewChannelBroadcaster()
	defer bus.Close()

	o := NewObserver(bus, &Identity{UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go o.Watch(ctx)
	time.Sleep(20 * time.Millisecond)

	bus.Publish(ctx, broadcast.TopicAuthSignout, []byte(`{"user_id":"`+uuid.New().String()+`"}`))
	time.Sleep(50 * time.Millisecond)

	assert.True(t, o.IsAuthenticated())
}
