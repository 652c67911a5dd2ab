package handlers

import (
	"github.com/campusgoods/market-backend/internal/dto"
	"github.com/campusgoods/market-backend/internal/principal"
	"github.com/campusgoods/market-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	page, limit := pageParams(c)
	unreadOnly := c.QueryBool("unread_only", false)

	notifications, total, err := h.notificationService.List(p, unreadOnly, page, limit)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{
		"notifications": notifications,
		"pagination":    dto.NewPagination(page, limit, total),
	})
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	count, err := h.notificationService.UnreadCount(p)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "notification ID")
	}

	if err := h.notificationService.MarkRead(p, notificationID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	updated, err := h.notificationService.MarkAllRead(p)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"updated": updated})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "notification ID")
	}

	if err := h.notificationService.Delete(p, notificationID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Notification deleted"})
}
