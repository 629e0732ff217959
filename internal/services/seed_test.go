package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
	"storefront/internal/services"
)

func TestSeedAdminUserCreatesRoleAndUser(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	cfg.AdminEmail = "root@example.com"
	cfg.AdminPassword = "seed-secret"

	require.NoError(t, services.SeedAdminUser(db, cfg))

	var user models.User
	require.NoError(t, db.Preload("Roles").First(&user, "email = ?", cfg.AdminEmail).Error)
	assert.Equal(t, "admin", user.Username)
	assert.Contains(t, user.RoleNames(), services.AdminRole)

	// Running again is a no-op.
	require.NoError(t, services.SeedAdminUser(db, cfg))

	var userCount, roleCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Role{}).Count(&roleCount).Error)
	assert.EqualValues(t, 1, userCount)
	assert.EqualValues(t, 1, roleCount)
}

func TestSeedAdminUserAttachesRoleToExistingUser(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	cfg.AdminEmail = "ops@example.com"
	cfg.AdminPassword = "seed-secret"

	// The configured email already belongs to a user without the role.
	seedUser(t, db, "ops", "ops@example.com", "their-password")

	require.NoError(t, services.SeedAdminUser(db, cfg))

	var user models.User
	require.NoError(t, db.Preload("Roles").First(&user, "email = ?", cfg.AdminEmail).Error)
	assert.Equal(t, "ops", user.Username)
	assert.Contains(t, user.RoleNames(), services.AdminRole)

	// The existing credentials are left alone.
	_, err := services.NewAuthService(db, cfg).Login("ops", "their-password")
	assert.NoError(t, err)
}
