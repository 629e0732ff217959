package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/dto"
	"storefront/internal/services"
)

// OrderHandler handles order endpoints.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes. Placing an order is public;
// everything else is admin-only.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, adminOnly []fiber.Handler) {
	orderRoutes := router.Group("/Orders")
	orderRoutes.Get("/GetAllOrders", append(adminOnly, h.HandleGetAllOrders)...)
	orderRoutes.Post("/CreateOrder", h.HandleCreateOrder)
	orderRoutes.Get("/:id", append(adminOnly, h.HandleGetOrder)...)
	orderRoutes.Delete("/:id", append(adminOnly, h.HandleDeleteOrder)...)
}

// HandleGetAllOrders lists every order with items and product names.
func (h *OrderHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleCreateOrder places an order. Any unknown product id aborts the whole
// request with a 404 naming the id; nothing is persisted in that case.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req dto.OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid Data...",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrors(err),
		})
	}

	order, err := h.service.Create(req)
	if err != nil {
		return respondError(c, err)
	}

	c.Location(fmt.Sprintf("/api/Orders/%d", order.OrderID))
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrder returns a single order by id.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order id.",
		})
	}

	order, err := h.service.GetOrder(uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleDeleteOrder removes an order and its items.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order id.",
		})
	}

	if err := h.service.Delete(uint(id)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
