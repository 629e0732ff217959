package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

// ProductRequest is the payload for creating a product.
type ProductRequest struct {
	Name        string  `json:"name" validate:"required,max=80"`
	Description string  `json:"description" validate:"required,max=300"`
	Price       float64 `json:"price" validate:"required,gte=1,lte=10000"`
	ImageURL    string  `json:"imageURL" validate:"required"`
	CategoryID  uint    `json:"categoryId" validate:"required,gte=1"`
}

// PutProductRequest is the payload for a full product update.
type PutProductRequest struct {
	ProductID   uint    `json:"productId" validate:"required"`
	Name        string  `json:"name" validate:"required,max=80"`
	Description string  `json:"description" validate:"required,max=300"`
	Price       float64 `json:"price" validate:"required,gte=1,lte=10000"`
	Stock       int     `json:"stock" validate:"required,gte=1,lte=50000"`
	ImageURL    string  `json:"imageURL" validate:"required"`
	CategoryID  uint    `json:"categoryId" validate:"required,gte=1"`
}

// ProductPatchRequest updates price and stock only. Both fields are
// constrained to the 1..10000 range.
type ProductPatchRequest struct {
	Price float64 `json:"price" validate:"required,gte=1,lte=10000"`
	Stock int     `json:"stock" validate:"required,gte=1,lte=10000"`
}

// ProductResponse is the wire representation of a product.
type ProductResponse struct {
	ProductID    uint            `json:"productId"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   uint            `json:"categoryId"`
	Stock        int             `json:"stock"`
	ImageURL     string          `json:"imageURL"`
	RegisterDate time.Time       `json:"registerDate"`
}

// ProductFromRequest builds a new entity from a create payload. RegisterDate
// is stamped by the caller.
func ProductFromRequest(req ProductRequest) models.Product {
	return models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       decimal.NewFromFloat(req.Price),
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	}
}

// ApplyProductPut overwrites a loaded entity with the PUT payload.
// RegisterDate is left untouched.
func ApplyProductPut(product *models.Product, req PutProductRequest) {
	product.Name = req.Name
	product.Description = req.Description
	product.Price = decimal.NewFromFloat(req.Price)
	product.Stock = req.Stock
	product.ImageURL = req.ImageURL
	product.CategoryID = req.CategoryID
}

// ApplyProductPatch overwrites only price and stock on a loaded entity.
func ApplyProductPatch(product *models.Product, req ProductPatchRequest) {
	product.Price = decimal.NewFromFloat(req.Price)
	product.Stock = req.Stock
}

// NewProductResponse maps an entity to its response shape.
func NewProductResponse(product *models.Product) ProductResponse {
	return ProductResponse{
		ProductID:    product.ID,
		Name:         product.Name,
		Description:  product.Description,
		Price:        product.Price,
		CategoryID:   product.CategoryID,
		Stock:        product.Stock,
		ImageURL:     product.ImageURL,
		RegisterDate: product.RegisterDate,
	}
}

// NewProductResponses maps a slice of entities.
func NewProductResponses(products []models.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, NewProductResponse(&products[i]))
	}
	return responses
}
