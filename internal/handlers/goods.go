package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/carevia/server/internal/apperr"
	"github.com/carevia/server/internal/models"
	"github.com/carevia/server/internal/services"
	"github.com/carevia/server/internal/store"
	"github.com/carevia/server/internal/utils"
)

// GoodsHandler manages the donated goods catalog.
type GoodsHandler struct {
	goods store.GoodStore
}

// NewGoodsHandler constructs GoodsHandler.
func NewGoodsHandler(goods store.GoodStore) *GoodsHandler {
	return &GoodsHandler{goods: goods}
}

// List returns paginated goods, newest first.
func (h *GoodsHandler) List(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	goods, total, err := h.goods.List(c.Context(), pg.Limit, pg.Offset)
	if err != nil {
		return apperr.Dependency("list goods", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    goods,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

type createGoodRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Address     string `json:"address"`
}

// Create lists a new donated item. Requires a session.
func (h *GoodsHandler) Create(c *fiber.Ctx) error {
	var req createGoodRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(strings.TrimSpace(req.Name)) < 2 {
		return apperr.Validation("name", "name is required and must be at least 2 characters")
	}
	if strings.TrimSpace(req.Description) == "" {
		return apperr.Validation("description", "description is required")
	}
	if strings.TrimSpace(req.Type) == "" {
		return apperr.Validation("type", "type is required")
	}
	if strings.TrimSpace(req.Address) == "" {
		return apperr.Validation("address", "address is required")
	}

	good := models.Good{
		Name:        services.NormalizeName(req.Name),
		Description: strings.TrimSpace(req.Description),
		Type:        strings.TrimSpace(req.Type),
		Address:     strings.TrimSpace(req.Address),
	}

	if err := h.goods.Create(c.Context(), &good); err != nil {
		return apperr.Dependency("create good", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    good,
	})
}
