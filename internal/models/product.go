package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the store. Category is the owning side of
// the relation; deleting a category with products attached is rejected by the
// foreign key.
type Product struct {
	ID           uint            `json:"productId" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"uniqueIndex;size:80"`
	Description  string          `json:"description" gorm:"size:300"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Stock        int             `json:"stock"`
	ImageURL     string          `json:"imageURL"`
	RegisterDate time.Time       `json:"registerDate"`
	CategoryID   uint            `json:"categoryId"`
	Category     *Category       `json:"-"`
}
