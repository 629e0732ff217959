package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/models"
)

// UnitOfWork scopes all repository work to a single database transaction.
// Handlers create one per request and commit exactly once at the end; nothing
// staged through its repositories is durable before Commit.
type UnitOfWork struct {
	tx   *gorm.DB
	done bool

	Products   *ProductsRepository
	Categories *Repository[models.Category]
	Orders     *OrdersRepository
	Users      *UsersRepository
	Roles      *Repository[models.Role]
}

// NewUnitOfWork begins a transaction and binds all repositories to it.
func NewUnitOfWork(db *gorm.DB) (*UnitOfWork, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return &UnitOfWork{
		tx:         tx,
		Products:   NewProductsRepository(tx),
		Categories: NewRepository[models.Category](tx),
		Orders:     NewOrdersRepository(tx),
		Users:      NewUsersRepository(tx),
		Roles:      NewRepository[models.Role](tx),
	}, nil
}

// Commit flushes all staged changes in one transaction.
func (u *UnitOfWork) Commit() error {
	if u.done {
		return nil
	}
	u.done = true
	if err := u.tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit unit of work: %w", err)
	}
	return nil
}

// Rollback discards staged changes. Safe to defer: it is a no-op after a
// successful Commit.
func (u *UnitOfWork) Rollback() {
	if u.done {
		return
	}
	u.done = true
	u.tx.Rollback()
}
