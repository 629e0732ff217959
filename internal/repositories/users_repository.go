package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/models"
)

// UsersRepository adds role-aware user lookups on top of the generic CRUD.
type UsersRepository struct {
	*Repository[models.User]
	tx *gorm.DB
}

// NewUsersRepository binds the repository to a transaction.
func NewUsersRepository(tx *gorm.DB) *UsersRepository {
	return &UsersRepository{
		Repository: NewRepository[models.User](tx),
		tx:         tx,
	}
}

// GetByUsername returns the user with their roles loaded, or nil when the
// username is unknown.
func (r *UsersRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.tx.Preload("Roles").First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load user %s: %w", username, err)
	}
	return &user, nil
}

// AddRole links a role to the user.
func (r *UsersRepository) AddRole(user *models.User, role *models.Role) error {
	if err := r.tx.Model(user).Association("Roles").Append(role); err != nil {
		return fmt.Errorf("failed to add role to user %s: %w", user.Username, err)
	}
	return nil
}

// GetByEmail returns the user with their roles loaded, or nil when the email
// is unknown.
func (r *UsersRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.tx.Preload("Roles").First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load user by email: %w", err)
	}
	return &user, nil
}
