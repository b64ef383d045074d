package broadcast

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ChannelBroadcaster is the in-process implementation, backed by a
// watermill GoChannel bus. Suitable for single-node deployments and
// deterministic tests.
type ChannelBroadcaster struct {
	pubSub *gochannel.GoChannel
}

func NewChannelBroadcaster() *ChannelBroadcaster {
	return &ChannelBroadcaster{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{},
			watermill.NopLogger{},
		),
	}
}

func (b *ChannelBroadcaster) Publish(ctx context.Context, topic string, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return b.pubSub.Publish(topic, msg)
}

func (b *ChannelBroadcaster) Subscribe(ctx context.Context, topic string) (<-chan []byte, error) {
	messages, err := b.pubSub.Subscribe(ctx, topic)
	if err != nil {
		return nil, err
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		for msg := range messages {
			select {
			case out <- msg.Payload:
				msg.Ack()
			case <-ctx.Done():
				msg.Nack()
				return
			}
		}
	}()

	return out, nil
}

func (b *ChannelBroadcaster) Close() error {
	return b.pubSub.Close()
}
