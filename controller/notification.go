package controller

import (
	"realtime-service/repository"

	"github.com/gofiber/fiber/v2"
)

const notificationPageSize = 50

type NotificationController struct {
	notifications repository.NotificationRepository
}

func NewNotificationController(notifications repository.NotificationRepository) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// List returns persisted notifications for the authenticated user, newest
// first. This is the poll path for everything missed while offline.
func (ctl *NotificationController) List(c *fiber.Ctx) error {
	notifications, err := ctl.notifications.ListByReceiver(c.Context(), tokenUserID(c), notificationPageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    notifications,
	})
}

func (ctl *NotificationController) MarkSeen(c *fiber.Ctx) error {
	if err := ctl.notifications.MarkSeen(c.Context(), tokenUserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    nil,
	})
}
