package websocket

import (
	"context"
	"encoding/json"

	"jobreach-be/pkg/authstate"

	"github.com/gofiber/websocket/v2"
)

// ServeWs wires one upgraded connection into the hub and blocks until
// the peer goes away. Each connection carries its own auth observer:
// when the identity is signed out elsewhere, the observer tears the
// connection down instead of leaving a live socket behind a dead
// session.
func ServeWs(hub *Hub, c *websocket.Conn, identity authstate.Identity) {
	client := &Client{Hub: hub, Conn: c, UserID: identity.UserID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if hub.broadcaster != nil {
		observer := authstate.NewObserver(hub.broadcaster, &identity)
		transitions := observer.Subscribe()
		go observer.Watch(ctx)
		go watchSignout(ctx, transitions, client.Send, c.Close)
	}

	go client.writePump()
	client.readPump()
}

// watchSignout waits for a signed-in -> signed-out transition, pushes a
// final typed frame so the client knows why it is being dropped, and
// closes the underlying connection.
func watchSignout(ctx context.Context, transitions <-chan authstate.Transition, send chan<- []byte, closeConn func() error) {
	for {
		select {
		case t, ok := <-transitions:
			if !ok {
				return
			}
			if t.To != nil || t.From == nil {
				continue
			}

			frame, _ := json.Marshal(map[string]interface{}{
				"type": "auth_signout",
				"data": authstate.SignoutSignal{UserID: t.From.UserID.String()},
			})
			select {
			case send <- frame:
			default:
			}

			closeConn()
			return

		case <-ctx.Done():
			return
		}
	}
}
