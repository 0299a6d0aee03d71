package controller

import (
	"realtime-service/model"
	"realtime-service/realtime"

	"github.com/gofiber/fiber/v2"
)

type AdminBroadcastInput struct {
	Message string `json:"message"`
}

type AdminController struct {
	notifier *realtime.Notifier
	audit    realtime.AuditPublisher
}

func NewAdminController(notifier *realtime.Notifier, audit realtime.AuditPublisher) *AdminController {
	return &AdminController{notifier: notifier, audit: audit}
}

// Broadcast pushes a system-wide notification to every connected session.
func (ctl *AdminController) Broadcast(c *fiber.Ctx) error {
	input := new(AdminBroadcastInput)
	if err := c.BodyParser(input); err != nil || input.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	ctl.notifier.BroadcastSystem(&model.Notification{
		Type:    model.NotificationTypeGeneral,
		Message: input.Message,
	})

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    nil,
	})
}

// Block forces the target user's sessions to log out. Account state itself is
// owned by the moderation collaborator; this only severs live connections.
func (ctl *AdminController) Block(c *fiber.Ctx) error {
	target := c.Params("id")
	if target == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	ctl.notifier.ForceLogout(target, "account blocked by moderation")
	if ctl.audit != nil {
		ctl.audit.Publish("user.blocked", map[string]string{"userId": target, "by": tokenUserID(c)})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    nil,
	})
}
