package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides generic CRUD over one entity type. Every method runs on
// the transaction held by the owning UnitOfWork: writes are staged and become
// durable only when the unit of work commits.
type Repository[T any] struct {
	tx *gorm.DB
}

// NewRepository binds a generic repository to a transaction.
func NewRepository[T any](tx *gorm.DB) *Repository[T] {
	return &Repository[T]{tx: tx}
}

// Get returns the first row matching the condition, or nil when none matches.
func (r *Repository[T]) Get(query string, args ...interface{}) (*T, error) {
	var entity T
	if err := r.tx.Where(query, args...).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query row: %w", err)
	}
	return &entity, nil
}

// GetAll returns a disconnected snapshot of every row.
func (r *Repository[T]) GetAll() ([]T, error) {
	var entities []T
	if err := r.tx.Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	return entities, nil
}

// Create stages an insert for the entity and any new owned associations.
func (r *Repository[T]) Create(entity *T) error {
	if err := r.tx.Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create row: %w", err)
	}
	return nil
}

// Update stages a full-row overwrite. Callers must load-then-mutate: any
// field left at its zero value is written as such. Associations are not
// touched.
func (r *Repository[T]) Update(entity *T) error {
	if err := r.tx.Omit(clause.Associations).Save(entity).Error; err != nil {
		return fmt.Errorf("failed to update row: %w", err)
	}
	return nil
}

// Delete stages a row removal.
func (r *Repository[T]) Delete(entity *T) error {
	if err := r.tx.Delete(entity).Error; err != nil {
		return fmt.Errorf("failed to delete row: %w", err)
	}
	return nil
}
