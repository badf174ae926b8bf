package stream

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the command stream. known reports whether a map
// session exists; a nil known accepts any session id.
func RegisterRoutes(r fiber.Router, hub *Hub, known func(sessionID string) bool) {
	upgrade := func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if known != nil && !known(c.Params("sessionID")) {
			return fiber.NewError(fiber.StatusNotFound, "map session not found")
		}
		return c.Next()
	}

	r.Get("/ws/:sessionID", upgrade, websocket.New(func(c *websocket.Conn) {
		sessionID := c.Params("sessionID")
		client := hub.Register(sessionID)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
			// Send is closed: either the reader saw a disconnect or the
			// session was closed. Closing the conn unblocks the reader.
			_ = c.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
				time.Now().Add(time.Second))
			_ = c.Close()
		}()

		// The client never sends commands; reading only detects disconnects.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		hub.Unregister(client)
		<-done
	}))
}
