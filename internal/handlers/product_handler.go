package handlers

import (
	"github.com/campusgoods/market-backend/internal/dto"
	"github.com/campusgoods/market-backend/internal/principal"
	"github.com/campusgoods/market-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	q := &dto.ProductQuery{
		Page:      page,
		Limit:     limit,
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if id, err := uuid.Parse(c.Query("category_id")); err == nil {
		q.CategoryID = &id
	}
	if id, err := uuid.Parse(c.Query("seller_id")); err == nil {
		q.SellerID = &id
	}
	if v := c.QueryFloat("min_price", -1); v >= 0 {
		q.MinPrice = &v
	}
	if v := c.QueryFloat("max_price", -1); v >= 0 {
		q.MaxPrice = &v
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

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "product ID")
	}

	product, err := h.productService.Get(productID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	product, err := h.productService.Create(p, &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "product ID")
	}

	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	product, err := h.productService.Update(p, productID, &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) MarkSold(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "product ID")
	}

	product, err := h.productService.MarkSold(p, productID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) AddComment(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "product ID")
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	req.ProductID = productID

	comment, err := h.productService.AddComment(p, &req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *ProductHandler) ListComments(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "product ID")
	}

	comments, err := h.productService.ListComments(productID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

func (h *ProductHandler) Favorite(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "product ID")
	}

	if err := h.productService.Favorite(p, productID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Favorited"})
}

func (h *ProductHandler) Unfavorite(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "product ID")
	}

	if err := h.productService.Unfavorite(p, productID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Unfavorited"})
}

func (h *ProductHandler) ListFavorites(c *fiber.Ctx) error {
	p, err := principal.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	favorites, err := h.productService.ListFavorites(p)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"favorites": favorites})
}
