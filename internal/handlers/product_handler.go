package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/dto"
	"storefront/internal/services"
)

// ProductHandler handles product endpoints.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes. Reads and creation are public;
// updates and deletion are admin-only.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, adminOnly []fiber.Handler) {
	productRoutes := router.Group("/Products")
	productRoutes.Get("/GetAll", h.HandleGetAll)
	productRoutes.Get("/Get", h.HandleGet)
	productRoutes.Post("/Post", h.HandlePost)
	productRoutes.Patch("/:id/UpdatePriceAndStock", append(adminOnly, h.HandlePatch)...)
	productRoutes.Put("/:id", append(adminOnly, h.HandlePut)...)
	productRoutes.Delete("/:id", append(adminOnly, h.HandleDelete)...)
}

// HandleGetAll lists products with optional name and categoryId filters. An
// empty result is a 404 with a message, never an empty 200 list.
func (h *ProductHandler) HandleGetAll(c *fiber.Ctx) error {
	name := c.Query("name")
	categoryID := c.QueryInt("categoryId", 0)

	products, err := h.service.List(name, uint(categoryID))
	if err != nil {
		return respondError(c, err)
	}
	if len(products) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "There are no products registered in the database matching the criteria.",
		})
	}

	return c.JSON(products)
}

// HandleGet returns a single product by the id query parameter.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	id := c.QueryInt("id", 0)

	product, err := h.service.Get(uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandlePost creates a product and returns 201 with a location reference.
func (h *ProductHandler) HandlePost(c *fiber.Ctx) error {
	var req dto.ProductRequest
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

	product, err := h.service.Create(req)
	if err != nil {
		return respondError(c, err)
	}

	c.Location(fmt.Sprintf("/api/Products/Get?id=%d", product.ProductID))
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandlePatch updates only price and stock, both constrained to 1..10000.
func (h *ProductHandler) HandlePatch(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id.",
		})
	}

	var req dto.ProductPatchRequest
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

	product, err := h.service.PatchPriceAndStock(uint(id), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandlePut replaces a product. The path id must match the payload id.
func (h *ProductHandler) HandlePut(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id.",
		})
	}

	var req dto.PutProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid data.",
		})
	}
	if uint(id) != req.ProductID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "The product you're looking for to update must have the same ID you're requesting",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrors(err),
		})
	}

	product, err := h.service.Put(uint(id), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleDelete removes a product and returns its last representation.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id.",
		})
	}

	product, err := h.service.Delete(uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}
