package broadcast

import "context"

// Broadcaster fans a payload out to every subscriber of a topic, across
// tabs of one browser profile and across server instances. Delivery is
// at-most-once and best-effort; the auth observer treats a received
// signout marker as authoritative.
type Broadcaster interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Subscribe(ctx context.Context, topic string) (<-chan []byte, error)
	Close() error
}

// Topics used by the auth/linking subsystem.
const (
	TopicAuthSignout = "auth.signout"
	TopicGuestLinked = "guest.linked"
)
