package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"storefront/internal/dto"
	"storefront/internal/repositories"
)

// ProductService handles product CRUD and the price/stock patch.
type ProductService struct {
	db *gorm.DB
}

// NewProductService creates a new ProductService.
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// List returns products matching the optional name and category filters. An
// empty result is returned as an empty slice; the handler decides its status.
func (s *ProductService) List(name string, categoryID uint) ([]dto.ProductResponse, error) {
	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	products, err := uow.Products.Filter(name, categoryID)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return dto.NewProductResponses(products), nil
}

// Get returns one product, or a NotFoundError.
func (s *ProductService) Get(id uint) (*dto.ProductResponse, error) {
	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	product, err := uow.Products.Get("id = ?", id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, productNotFound(id)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	response := dto.NewProductResponse(product)
	return &response, nil
}

// Create stores a new product, stamping its registration time.
func (s *ProductService) Create(request dto.ProductRequest) (*dto.ProductResponse, error) {
	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	product := dto.ProductFromRequest(request)
	product.RegisterDate = time.Now()

	if err := uow.Products.Create(&product); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	response := dto.NewProductResponse(&product)
	return &response, nil
}

// Put replaces a product's data. The row is loaded first so fields outside
// the payload, like the registration date, are preserved.
func (s *ProductService) Put(id uint, request dto.PutProductRequest) (*dto.ProductResponse, error) {
	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	product, err := uow.Products.Get("id = ?", id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, productNotFound(id)
	}

	dto.ApplyProductPut(product, request)
	if err := uow.Products.Update(product); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	response := dto.NewProductResponse(product)
	return &response, nil
}

// PatchPriceAndStock overwrites only price and stock on a loaded product.
func (s *ProductService) PatchPriceAndStock(id uint, request dto.ProductPatchRequest) (*dto.ProductResponse, error) {
	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	product, err := uow.Products.Get("id = ?", id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, productNotFound(id)
	}

	dto.ApplyProductPatch(product, request)
	if err := uow.Products.Update(product); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	response := dto.NewProductResponse(product)
	return &response, nil
}

// Delete removes a product and returns its last representation.
func (s *ProductService) Delete(id uint) (*dto.ProductResponse, error) {
	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	product, err := uow.Products.Get("id = ?", id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, productNotFound(id)
	}

	if err := uow.Products.Delete(product); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	response := dto.NewProductResponse(product)
	return &response, nil
}

func productNotFound(id uint) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Product with the id = %d was not found.", id)}
}
