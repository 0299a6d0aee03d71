package controller

import (
	"realtime-service/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const messagePageSize = 100

type ChatController struct {
	conversations repository.ConversationRepository
}

func NewChatController(conversations repository.ConversationRepository) *ChatController {
	return &ChatController{conversations: conversations}
}

func tokenUserID(c *fiber.Ctx) string {
	user := c.Locals("user").(*jwt.Token)
	claims := user.Claims.(jwt.MapClaims)
	id, _ := claims["id"].(string)
	return id
}

func (ctl *ChatController) Conversations(c *fiber.Ctx) error {
	conversations, err := ctl.conversations.ListByUser(c.Context(), tokenUserID(c))
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
		"data":    conversations,
	})
}

func (ctl *ChatController) Messages(c *fiber.Ctx) error {
	messages, err := ctl.conversations.ListMessages(c.Context(), c.Params("id"), messagePageSize)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    messages,
	})
}

func (ctl *ChatController) MarkRead(c *fiber.Ctx) error {
	if err := ctl.conversations.MarkRead(c.Context(), c.Params("id"), tokenUserID(c)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    nil,
	})
}
