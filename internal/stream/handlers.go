package stream

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/tsm98/social-mern/internal/auth"
)

// RegisterRoutes mounts GET /:topic. Browsers cannot set headers on a
// websocket handshake, so a ?token= query value is accepted in place of the
// token header.
func RegisterRoutes(r fiber.Router, hub *Hub, authMiddleware fiber.Handler, tokenHeader string) {
	r.Get("/:topic", tokenFromQuery(tokenHeader), authMiddleware, requireUpgrade, websocket.New(func(c *websocket.Conn) {
		userID, _ := c.Locals(auth.LocalsUserID).(string)
		client := hub.Register(c.Params("topic"), userID)
		defer hub.Unregister(client)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}()

		// Subscribers only listen; reads detect the close.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		hub.Unregister(client)
		<-done
	}))
}

func tokenFromQuery(header string) fiber.Handler {
	if header == "" {
		header = auth.DefaultTokenHeader
	}
	return func(c *fiber.Ctx) error {
		if token := c.Query("token"); token != "" && c.Get(header) == "" {
			c.Request().Header.Set(header, token)
		}
		return c.Next()
	}
}

func requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}
