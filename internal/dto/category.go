package dto

import "storefront/internal/models"

// CategoryRequest is the payload for creating a category.
type CategoryRequest struct {
	Name     string `json:"name" validate:"required,max=80"`
	ImageURL string `json:"imageURL" validate:"required"`
}

// PutCategoryRequest is the payload for a full category update.
type PutCategoryRequest struct {
	CategoryID uint   `json:"categoryId" validate:"required"`
	Name       string `json:"name" validate:"required,max=80"`
	ImageURL   string `json:"imageURL" validate:"required"`
}

// CategoryResponse is the wire representation of a category. The products
// back-reference is deliberately absent.
type CategoryResponse struct {
	CategoryID uint   `json:"categoryId"`
	Name       string `json:"name"`
	ImageURL   string `json:"imageURL"`
}

// CategoryFromRequest builds a new entity from a create payload.
func CategoryFromRequest(req CategoryRequest) models.Category {
	return models.Category{
		Name:     req.Name,
		ImageURL: req.ImageURL,
	}
}

// ApplyCategoryPut overwrites a loaded entity with the PUT payload.
func ApplyCategoryPut(category *models.Category, req PutCategoryRequest) {
	category.Name = req.Name
	category.ImageURL = req.ImageURL
}

// NewCategoryResponse maps an entity to its response shape.
func NewCategoryResponse(category *models.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: category.ID,
		Name:       category.Name,
		ImageURL:   category.ImageURL,
	}
}

// NewCategoryResponses maps a slice of entities.
func NewCategoryResponses(categories []models.Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, NewCategoryResponse(&categories[i]))
	}
	return responses
}
