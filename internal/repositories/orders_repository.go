package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/models"
)

// OrdersRepository adds the eager-loaded order queries on top of the generic
// CRUD.
type OrdersRepository struct {
	*Repository[models.Order]
	tx *gorm.DB
}

// NewOrdersRepository binds the repository to a transaction.
func NewOrdersRepository(tx *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		Repository: NewRepository[models.Order](tx),
		tx:         tx,
	}
}

// GetAllOrders returns every order with its items and their products loaded.
func (r *OrdersRepository) GetAllOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := r.tx.Preload("Items.Product").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns one order with items and products loaded, or nil when the
// id does not exist.
func (r *OrdersRepository) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.tx.Preload("Items.Product").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load order %d: %w", id, err)
	}
	return &order, nil
}
