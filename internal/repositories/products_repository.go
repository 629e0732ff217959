package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/models"
)

// ProductsRepository adds product-specific queries on top of the generic CRUD.
type ProductsRepository struct {
	*Repository[models.Product]
	tx *gorm.DB
}

// NewProductsRepository binds the repository to a transaction.
func NewProductsRepository(tx *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		Repository: NewRepository[models.Product](tx),
		tx:         tx,
	}
}

// Filter returns products matching an optional name substring and an optional
// category. Zero values skip the corresponding filter.
func (r *ProductsRepository) Filter(name string, categoryID uint) ([]models.Product, error) {
	query := r.tx.Model(&models.Product{})
	if name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to filter products: %w", err)
	}
	return products, nil
}
