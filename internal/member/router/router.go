package router

import (
	"social_chat_service/internal/member/app"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes account REST surface, no auth required here.
func RegisterRoutes(r *fiber.App, handler *app.MemberHandler) {
	api := r.Group("/api")
	api.Post("/signup", handler.Signup)
	api.Post("/login", handler.Login)
	api.Post("/logout", handler.Logout)
}
