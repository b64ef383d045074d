package authstate

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"jobreach-be/pkg/broadcast"

	"github.com/google/uuid"
)

// Identity is the current authenticated principal. A zero or expired
// identity counts as signed out; callers must go through IsAuthenticated
// rather than checking for nil themselves.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// Transition describes a lifecycle change: signed-out -> signed-in or
// signed-in -> signed-out.
type Transition struct {
	From *Identity
	To   *Identity
	At   time.Time
}

// SignoutSignal is the payload broadcast on TopicAuthSignout.
type SignoutSignal struct {
	UserID string `json:"user_id"`
}

// Observer tracks the authenticated identity for one client context and
// mirrors signout signals from other tabs/instances. All methods are
// safe for concurrent use.
type Observer struct {
	mu      sync.RWMutex
	current *Identity
	subs    []chan Transition

	bus broadcast.Broadcaster
	now func() time.Time
}

// NewObserver validates any initial identity for expiry: an expired
// session is treated as signed out, never trusted from a cached flag.
func NewObserver(bus broadcast.Broadcaster, initial *Identity) *Observer {
	o := &Observer{
		bus: bus,
		now: time.Now,
	}
	if initial != nil && initial.ExpiresAt.After(o.now()) {
		cp := *initial
		o.current = &cp
	}
	return o
}

// Watch consumes signout broadcasts until ctx is cancelled. Must be
// called once (typically in a goroutine) for cross-tab propagation.
func (o *Observer) Watch(ctx context.Context) error {
	ch, err := o.bus.Subscribe(ctx, broadcast.TopicAuthSignout)
	if err != nil {
		return err
	}
	for payload := range ch {
		var sig SignoutSignal
		if err := json.Unmarshal(payload, &sig); err != nil {
			continue
		}
		o.applyRemoteSignout(sig)
	}
	return nil
}

func (o *Observer) applyRemoteSignout(sig SignoutSignal) {
	o.mu.Lock()
	cur := o.current
	if cur == nil || (sig.UserID != "" && cur.UserID.String() != sig.UserID) {
		o.mu.Unlock()
		return
	}
	o.current = nil
	o.mu.Unlock()
	o.notify(Transition{From: cur, To: nil, At: o.now()})
}

// Current returns the identity, or nil when signed out or expired.
func (o *Observer) Current() *Identity {
	o.mu.RLock()
	cur := o.current
	o.mu.RUnlock()
	if cur == nil || !cur.ExpiresAt.After(o.now()) {
		return nil
	}
	cp := *cur
	return &cp
}

// IsAuthenticated is the derived boolean, expiry-checked.
func (o *Observer) IsAuthenticated() bool {
	return o.Current() != nil
}

// SetSignedIn installs a new identity after sign-in or sign-up.
func (o *Observer) SetSignedIn(id Identity) {
	o.mu.Lock()
	prev := o.current
	cp := id
	o.current = &cp
	o.mu.Unlock()
	o.notify(Transition{From: prev, To: &cp, At: o.now()})
}

// SignOut clears the local identity first, then broadcasts the signout
// marker so other tabs clear theirs. The local clear never waits on the
// broadcast: the user is signed out even if the bus is down.
func (o *Observer) SignOut(ctx context.Context) {
	o.mu.Lock()
	prev := o.current
	o.current = nil
	o.mu.Unlock()

	if prev != nil {
		o.notify(Transition{From: prev, To: nil, At: o.now()})
		payload, _ := json.Marshal(SignoutSignal{UserID: prev.UserID.String()})
		_ = o.bus.Publish(ctx, broadcast.TopicAuthSignout, payload)
	}
}

// Subscribe returns a channel of transitions. Slow consumers drop
// events rather than blocking the observer.
func (o *Observer) Subscribe() <-chan Transition {
	ch := make(chan Transition, 8)
	o.mu.Lock()
	o.subs = append(o.subs, ch)
	o.mu.Unlock()
	return ch
}

func (o *Observer) notify(t Transition) {
	o.mu.RLock()
	subs := o.subs
	o.mu.RUnlock()
	for _, ch := range subs {
		select {
		case ch <- t:
		default:
		}
	}
}
