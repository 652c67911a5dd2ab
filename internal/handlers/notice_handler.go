package handlers

import (
	"github.com/campusgoods/market-backend/internal/dto"
	"github.com/campusgoods/market-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type NoticeHandler struct {
	noticeService *services.NoticeService
}

func NewNoticeHandler(noticeService *services.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

func (h *NoticeHandler) ListActive(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	notices, total, err := h.noticeService.ListActive(page, limit)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{
		"notices":    notices,
		"pagination": dto.NewPagination(page, limit, total),
	})
}
