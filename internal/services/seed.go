package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// AdminRole is the role claim gating admin-only routes.
const AdminRole = "ADMIN"

// SeedAdminUser ensures the ADMIN role and the configured admin user exist.
// Safe to run on every startup.
func SeedAdminUser(db *gorm.DB, cfg config.Config) error {
	uow, err := repositories.NewUnitOfWork(db)
	if err != nil {
		return err
	}
	defer uow.Rollback()

	role, err := findOrCreateAdminRole(uow)
	if err != nil {
		return err
	}

	user, err := uow.Users.GetByEmail(cfg.AdminEmail)
	if err != nil {
		return err
	}
	if user == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin := models.User{
			Username:     "admin",
			Email:        cfg.AdminEmail,
			PasswordHash: string(hash),
			Roles:        []models.Role{*role},
		}
		if err := uow.Users.Create(&admin); err != nil {
			return err
		}
		logrus.WithField("email", cfg.AdminEmail).Info("seeded admin user")
	} else if !hasAdminRole(user) {
		if err := uow.Users.AddRole(user, role); err != nil {
			return err
		}
		logrus.WithField("email", cfg.AdminEmail).Info("attached admin role to existing user")
	}

	return uow.Commit()
}

func hasAdminRole(user *models.User) bool {
	for _, name := range user.RoleNames() {
		if name == AdminRole {
			return true
		}
	}
	return false
}

func findOrCreateAdminRole(uow *repositories.UnitOfWork) (*models.Role, error) {
	role, err := uow.Roles.Get("name = ?", AdminRole)
	if err != nil {
		return nil, err
	}
	if role == nil {
		role = &models.Role{Name: AdminRole}
		if err := uow.Roles.Create(role); err != nil {
			return nil, err
		}
	}
	return role, nil
}
