package repositories_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Role{},
		&models.User{},
	))
	return db
}

func newProduct(categoryID uint, name string) models.Product {
	return models.Product{
		Name:         name,
		Description:  "desc",
		Price:        decimal.RequireFromString("9.99"),
		Stock:        3,
		CategoryID:   categoryID,
		RegisterDate: time.Now(),
	}
}

func TestUnitOfWorkRollbackDiscardsStagedChanges(t *testing.T) {
	db := setupTestDB(t)

	uow, err := repositories.NewUnitOfWork(db)
	require.NoError(t, err)

	category := models.Category{Name: "Staged"}
	require.NoError(t, uow.Categories.Create(&category))

	uow.Rollback()

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Zero(t, count, "rolled-back writes must not be durable")
}

func TestUnitOfWorkCommitMakesChangesDurable(t *testing.T) {
	db := setupTestDB(t)

	uow, err := repositories.NewUnitOfWork(db)
	require.NoError(t, err)
	defer uow.Rollback()

	category := models.Category{Name: "Durable"}
	require.NoError(t, uow.Categories.Create(&category))
	product := newProduct(category.ID, "Widget")
	require.NoError(t, uow.Products.Create(&product))

	require.NoError(t, uow.Commit())

	// Rollback after commit is a no-op; the rows stay.
	uow.Rollback()

	var categoryCount, productCount int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categoryCount).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
	assert.EqualValues(t, 1, categoryCount)
	assert.EqualValues(t, 1, productCount)
}

func TestRepositoryGetReturnsNilWhenMissing(t *testing.T) {
	db := setupTestDB(t)

	uow, err := repositories.NewUnitOfWork(db)
	require.NoError(t, err)
	defer uow.Rollback()

	product, err := uow.Products.Get("id = ?", 12345)
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestProductsFilterMatchesNameSubstringAndCategory(t *testing.T) {
	db := setupTestDB(t)

	setup, err := repositories.NewUnitOfWork(db)
	require.NoError(t, err)
	electronics := models.Category{Name: "Electronics"}
	toys := models.Category{Name: "Toys"}
	require.NoError(t, setup.Categories.Create(&electronics))
	require.NoError(t, setup.Categories.Create(&toys))
	laptop := newProduct(electronics.ID, "Laptop Pro")
	charger := newProduct(electronics.ID, "Laptop Charger")
	robot := newProduct(toys.ID, "Robot Kit")
	require.NoError(t, setup.Products.Create(&laptop))
	require.NoError(t, setup.Products.Create(&charger))
	require.NoError(t, setup.Products.Create(&robot))
	require.NoError(t, setup.Commit())

	uow, err := repositories.NewUnitOfWork(db)
	require.NoError(t, err)
	defer uow.Rollback()

	byName, err := uow.Products.Filter("laptop", 0)
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	byCategory, err := uow.Products.Filter("", toys.ID)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Robot Kit", byCategory[0].Name)

	all, err := uow.Products.Filter("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteCategoryWithProductsIsRestricted(t *testing.T) {
	db := setupTestDB(t)

	setup, err := repositories.NewUnitOfWork(db)
	require.NoError(t, err)
	category := models.Category{Name: "Occupied"}
	require.NoError(t, setup.Categories.Create(&category))
	product := newProduct(category.ID, "Occupant")
	require.NoError(t, setup.Products.Create(&product))
	require.NoError(t, setup.Commit())

	uow, err := repositories.NewUnitOfWork(db)
	require.NoError(t, err)
	err = uow.Categories.Delete(&category)
	uow.Rollback()
	assert.Error(t, err, "a category that still owns products must not be deletable")

	var categoryCount, productCount int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categoryCount).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
	assert.EqualValues(t, 1, categoryCount)
	assert.EqualValues(t, 1, productCount, "products must never be orphaned by a category delete")
}

func TestOrdersPreloadItemsAndProducts(t *testing.T) {
	db := setupTestDB(t)

	setup, err := repositories.NewUnitOfWork(db)
	require.NoError(t, err)
	category := models.Category{Name: "Electronics"}
	require.NoError(t, setup.Categories.Create(&category))
	product := newProduct(category.ID, "SSD")
	require.NoError(t, setup.Products.Create(&product))
	order := models.Order{
		CreatedAt: time.Now(),
		Total:     decimal.RequireFromString("19.98"),
		Items: []models.OrderItem{
			{ProductID: product.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("9.99")},
		},
	}
	require.NoError(t, setup.Orders.Create(&order))
	require.NoError(t, setup.Commit())

	uow, err := repositories.NewUnitOfWork(db)
	require.NoError(t, err)
	defer uow.Rollback()

	loaded, err := uow.Orders.GetOrder(order.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Items, 1)
	require.NotNil(t, loaded.Items[0].Product)
	assert.Equal(t, "SSD", loaded.Items[0].Product.Name)

	all, err := uow.Orders.GetAllOrders()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
