package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/dto"
	"storefront/internal/services"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the category routes. Reads are public; all writes
// are admin-only.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, adminOnly []fiber.Handler) {
	categoryRoutes := router.Group("/Categories")
	categoryRoutes.Get("/GetAll", h.HandleGetAll)
	categoryRoutes.Get("/Get", h.HandleGet)
	categoryRoutes.Post("/Post", append(adminOnly, h.HandlePost)...)
	categoryRoutes.Put("/:id", append(adminOnly, h.HandlePut)...)
	categoryRoutes.Delete("/:id", append(adminOnly, h.HandleDelete)...)
}

// HandleGetAll lists all categories. An empty store yields an empty list.
func (h *CategoryHandler) HandleGetAll(c *fiber.Ctx) error {
	categories, err := h.service.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleGet returns a single category by the id query parameter.
func (h *CategoryHandler) HandleGet(c *fiber.Ctx) error {
	id := c.QueryInt("id", 0)

	category, err := h.service.Get(uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// HandlePost creates a category.
func (h *CategoryHandler) HandlePost(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid data.",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrors(err),
		})
	}

	category, err := h.service.Create(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandlePut replaces a category. The path id must match the payload id.
func (h *CategoryHandler) HandlePut(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid category id.",
		})
	}

	var req dto.PutCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid data.",
		})
	}
	if uint(id) != req.CategoryID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Mismatched category ID.",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrors(err),
		})
	}

	category, err := h.service.Put(uint(id), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// HandleDelete removes a category and returns its last representation.
// Deleting a category that still owns products fails on the foreign key.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid category id.",
		})
	}

	category, err := h.service.Delete(uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}
