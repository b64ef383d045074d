package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"jobreach-be/internal/pkg/logger"
	"jobreach-be/pkg/broadcast"

	"github.com/google/uuid"
)

// Hub tracks live connections per user and fans linking signals out to
// them. Cross-instance delivery rides on the broadcaster, so the hub
// itself only ever talks to local clients.
type Hub struct {
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	broadcaster broadcast.Broadcaster
	logger      logger.ILogger
}

func NewHub(broadcaster broadcast.Broadcaster, log logger.ILogger) *Hub {
	return &Hub{
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		clients:     make(map[uuid.UUID][]*Client),
		broadcaster: broadcaster,
		logger:      log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	// Signout handling is per connection: each ServeWs call runs its
	// own auth observer, so only linking events relay through the hub.
	if h.broadcaster != nil {
		go h.relayTopic(ctx, broadcast.TopicGuestLinked, "guest_linked")
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()

		case <-ctx.Done():
			return
		}
	}
}

// relayTopic forwards broadcaster payloads carrying a user_id to that
// user's local connections, wrapped in a typed envelope.
func (h *Hub) relayTopic(ctx context.Context, topic, messageType string) {
	messages, err := h.broadcaster.Subscribe(ctx, topic)
	if err != nil {
		h.logger.Error("Hub", "Failed to subscribe to topic", map[string]interface{}{
			"topic": topic,
			"error": err.Error(),
		})
		return
	}

	for payload := range messages {
		var target struct {
			UserID string `json:"user_id"`
		}
		if err := json.Unmarshal(payload, &target); err != nil {
			continue
		}
		uid, err := uuid.Parse(target.UserID)
		if err != nil {
			continue
		}

		data, _ := json.Marshal(map[string]interface{}{
			"type": messageType,
			"data": json.RawMessage(payload),
		})
		h.Send(uid, data)
	}
}

// Send delivers a raw frame to every local connection of one user.
func (h *Hub) Send(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := h.clients[userID]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": userID})
			h.unregister <- client
		}
	}
}
