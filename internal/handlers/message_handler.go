package handlers

import (
	"github.com/campusgoods/market-backend/internal/dto"
	"github.com/campusgoods/market-backend/internal/principal"
	"github.com/campusgoods/market-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	msg, err := h.messageService.Send(p, req.ReceiverID, req.Content)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *MessageHandler) Conversation(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	otherID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badParam(c, "user ID")
	}

	page, limit := pageParams(c)
	messages, err := h.messageService.Conversation(p, otherID, page, limit)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

func (h *MessageHandler) UnreadCount(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	count, err := h.messageService.UnreadCount(p)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}
