package router

import (
	"realtime-service/controller"
	"realtime-service/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

type RestDeps struct {
	Chat          *controller.ChatController
	Notifications *controller.NotificationController
	Admin         *controller.AdminController
}

func Rest(app *fiber.App, deps RestDeps) {
	api := app.Group("/v1", logger.New())

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "success", "message": nil, "data": nil})
	})

	// Chat
	chat := api.Group("/chat", middleware.JWT())
	chat.Get("/conversations", deps.Chat.Conversations)
	chat.Get("/conversations/:id/messages", deps.Chat.Messages)
	chat.Post("/conversations/:id/read", deps.Chat.MarkRead)

	// Notifications
	notifications := api.Group("/notifications", middleware.JWT())
	notifications.Get("/", deps.Notifications.List)
	notifications.Post("/seen", deps.Notifications.MarkSeen)

	// Admin
	admin := api.Group("/admin", middleware.JWT(), middleware.RBAC())
	admin.Post("/broadcast", deps.Admin.Broadcast)
	admin.Post("/block/:id", deps.Admin.Block)
}
