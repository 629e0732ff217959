package services

import (
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/dto"
	"storefront/internal/repositories"
)

// CategoryService handles category CRUD.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List returns all categories.
func (s *CategoryService) List() ([]dto.CategoryResponse, error) {
	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	categories, err := uow.Categories.GetAll()
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return dto.NewCategoryResponses(categories), nil
}

// Get returns one category, or a NotFoundError.
func (s *CategoryService) Get(id uint) (*dto.CategoryResponse, error) {
	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	category, err := uow.Categories.Get("id = ?", id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, categoryNotFound(id)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	response := dto.NewCategoryResponse(category)
	return &response, nil
}

// Create stores a new category.
func (s *CategoryService) Create(request dto.CategoryRequest) (*dto.CategoryResponse, error) {
	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	category := dto.CategoryFromRequest(request)
	if err := uow.Categories.Create(&category); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	response := dto.NewCategoryResponse(&category)
	return &response, nil
}

// Put replaces a category's data, loading the row first.
func (s *CategoryService) Put(id uint, request dto.PutCategoryRequest) (*dto.CategoryResponse, error) {
	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	category, err := uow.Categories.Get("id = ?", id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, categoryNotFound(id)
	}

	dto.ApplyCategoryPut(category, request)
	if err := uow.Categories.Update(category); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	response := dto.NewCategoryResponse(category)
	return &response, nil
}

// Delete removes a category and returns its last representation. A category
// that still owns products is protected by the foreign key; the resulting
// error propagates to the caller.
func (s *CategoryService) Delete(id uint) (*dto.CategoryResponse, error) {
	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	category, err := uow.Categories.Get("id = ?", id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, categoryNotFound(id)
	}

	if err := uow.Categories.Delete(category); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	response := dto.NewCategoryResponse(category)
	return &response, nil
}

func categoryNotFound(id uint) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Category with ID = %d was not found.", id)}
}
