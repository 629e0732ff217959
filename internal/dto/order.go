package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

// OrderItemRequest names a product and how many units of it to order.
type OrderItemRequest struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gte=1"`
}

// OrderRequest is the payload for placing an order.
type OrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemResponse renames unitPrice to price and flattens the product name.
type OrderItemResponse struct {
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// OrderResponse is the wire representation of an order.
type OrderResponse struct {
	OrderID   uint                `json:"orderId"`
	CreatedAt time.Time           `json:"createdAt"`
	Items     []OrderItemResponse `json:"items"`
	Total     decimal.Decimal     `json:"total"`
}

// NewOrderResponse maps an order and its items. Items must have their
// Product loaded; the product name is projected, never the back-reference.
func NewOrderResponse(order *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, OrderItemResponse{
			ProductName: name,
			Price:       item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	return OrderResponse{
		OrderID:   order.ID,
		CreatedAt: order.CreatedAt,
		Items:     items,
		Total:     order.Total,
	}
}

// NewOrderResponses maps a slice of orders.
func NewOrderResponses(orders []models.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, NewOrderResponse(&orders[i]))
	}
	return responses
}
