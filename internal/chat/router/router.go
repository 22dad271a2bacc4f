package router

import (
	"context"

	"social_chat_service/internal/chat/app"
	"social_chat_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes attach the websocket endpoint. JWT 驗證只掛在 /ws 底下,
// REST signup/login 不受影響.
func RegisterRoutes(r *fiber.App, handler *app.ChatWebsocketHandler) {
	r.Use("/ws", middlewares.JWTMiddleware())
	r.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	r.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		handler.HandleConnection(context.Background(), conn)
	}))
}
