package handlers

import (
	"github.com/campusgoods/market-backend/internal/dto"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/campusgoods/market-backend/internal/principal"
	"github.com/campusgoods/market-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler serves the moderation console: dashboard rollups, user
// administration, listing moderation, report processing, and the notice
// and category CRUD surfaces.
type AdminHandler struct {
	dashboardService  *services.DashboardService
	userService       *services.UserService
	productService    *services.ProductService
	moderationService *services.ModerationService
	reportService     *services.ReportService
	noticeService     *services.NoticeService
	categoryService   *services.CategoryService
}

func NewAdminHandler(
	dashboardService *services.DashboardService,
	userService *services.UserService,
	productService *services.ProductService,
	moderationService *services.ModerationService,
	reportService *services.ReportService,
	noticeService *services.NoticeService,
	categoryService *services.CategoryService,
) *AdminHandler {
	return &AdminHandler{
		dashboardService:  dashboardService,
		userService:       userService,
		productService:    productService,
		moderationService: moderationService,
		reportService:     reportService,
		noticeService:     noticeService,
		categoryService:   categoryService,
	}
}

// --- dashboard ---

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.dashboardService.Stats(c.Query("period"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(stats)
}

func (h *AdminHandler) UserStats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.UserStats()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(stats)
}

// --- users ---

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	users, total, err := h.userService.ListUsers(
		c.Query("search"),
		models.Role(c.Query("role")),
		models.UserStatus(c.Query("status")),
		page, limit,
	)
	if err != nil {
		return respondErr(c, err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{
		"users":      out,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

func (h *AdminHandler) ChangeUserRole(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "user ID")
	}

	var req dto.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.moderationService.ChangeUserRole(p, userID, req.Role)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *AdminHandler) ChangeUserStatus(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "user ID")
	}

	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.moderationService.ChangeUserStatus(p, userID, req.Status, req.Reason)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// --- products ---

func (h *AdminHandler) ListProducts(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	status := c.Query("status")
	if status == "" {
		status = "all"
	}
	q := &dto.ProductQuery{
		Page:      page,
		Limit:     limit,
		Status:    status,
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	products, total, err := h.productService.List(q)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{
		"products":   products,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

func (h *AdminHandler) RemoveProduct(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "product ID")
	}

	var req dto.RemoveProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	product, err := h.moderationService.RemoveProduct(p, productID, req.Reason)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(product)
}

func (h *AdminHandler) RestoreProduct(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "product ID")
	}

	product, err := h.moderationService.RestoreProduct(p, productID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(product)
}

func (h *AdminHandler) PurgeProduct(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "product ID")
	}

	var req dto.RemoveProductRequest
	if err := c.BodyParser(&req); err != nil {
		req = dto.RemoveProductRequest{}
	}

	if err := h.moderationService.PurgeProduct(p, productID, req.Reason); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Product deleted"})
}

// --- reports ---

func (h *AdminHandler) ListReports(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	reports, total, err := h.reportService.ListAll(models.ReportStatus(c.Query("status")), page, limit)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{
		"reports":    reports,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

func (h *AdminHandler) ProcessReport(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "report ID")
	}

	var req dto.ProcessReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	report, err := h.reportService.Process(p, reportID, services.ReportAction(req.Action), req.AdminNote)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(report)
}

// --- notices ---

func (h *AdminHandler) CreateNotice(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.NoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	notice, err := h.noticeService.Create(p, &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(notice)
}

func (h *AdminHandler) UpdateNotice(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	noticeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "notice ID")
	}

	var req dto.NoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	notice, err := h.noticeService.Update(p, noticeID, &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(notice)
}

func (h *AdminHandler) DeleteNotice(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	noticeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "notice ID")
	}

	if err := h.noticeService.Delete(p, noticeID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Notice deleted"})
}

// --- categories ---

func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	category, err := h.categoryService.Create(&req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "category ID")
	}

	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	category, err := h.categoryService.Update(categoryID, &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(category)
}

func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "category ID")
	}

	if err := h.categoryService.Delete(categoryID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Category deleted"})
}
