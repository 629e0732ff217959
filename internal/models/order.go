package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is created atomically with its items and never mutated afterwards.
// Total is computed once at creation from the item snapshots.
type Order struct {
	ID        uint            `json:"orderId" gorm:"primaryKey"`
	CreatedAt time.Time       `json:"createdAt"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(10,2)"`
	Items     []OrderItem     `json:"items" gorm:"constraint:OnDelete:CASCADE"`
}

// OrderItem captures the product's price at order time. UnitPrice is a
// snapshot, not a live join to Product.Price.
type OrderItem struct {
	ID        uint            `json:"orderItemId" gorm:"primaryKey"`
	OrderID   uint            `json:"orderId"`
	ProductID uint            `json:"productId"`
	Product   *Product        `json:"-"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2)"`
}
