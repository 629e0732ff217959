package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/dto"
	"storefront/internal/services"
)

func TestProductListFilters(t *testing.T) {
	db := setupTestDB(t)
	electronics := seedCategory(t, db, "Electronics")
	office := seedCategory(t, db, "Office")
	seedProduct(t, db, electronics.ID, "Gaming Keyboard", "89.99", 10)
	seedProduct(t, db, electronics.ID, "Gaming Mouse", "49.99", 10)
	seedProduct(t, db, office.ID, "Desk Lamp", "19.99", 10)

	productService := services.NewProductService(db)

	all, err := productService.List("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byName, err := productService.List("gaming", 0)
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	byCategory, err := productService.List("", office.ID)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Desk Lamp", byCategory[0].Name)

	both, err := productService.List("keyboard", electronics.ID)
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Gaming Keyboard", both[0].Name)

	none, err := productService.List("does-not-exist", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductCreateStampsRegisterDate(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Electronics")

	productService := services.NewProductService(db)

	created, err := productService.Create(dto.ProductRequest{
		Name:        "USB Hub",
		Description: "Seven port hub",
		Price:       25.50,
		ImageURL:    "https://img.example.com/hub.png",
		CategoryID:  category.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ProductID)
	assert.False(t, created.RegisterDate.IsZero())
	assert.True(t, decimal.NewFromFloat(25.50).Equal(created.Price))
	assert.Zero(t, created.Stock)
}

func TestProductPutPreservesRegisterDate(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Electronics")
	product := seedProduct(t, db, category.ID, "Old Name", "10.00", 5)

	productService := services.NewProductService(db)

	updated, err := productService.Put(product.ID, dto.PutProductRequest{
		ProductID:   product.ID,
		Name:        "New Name",
		Description: "updated description",
		Price:       20.00,
		Stock:       42,
		ImageURL:    "https://img.example.com/new.png",
		CategoryID:  category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, 42, updated.Stock)
	assert.WithinDuration(t, product.RegisterDate, updated.RegisterDate, 0)

	var notFound *services.NotFoundError
	_, err = productService.Put(999, dto.PutProductRequest{ProductID: 999})
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Product with the id = 999 was not found.", notFound.Message)
}

func TestProductPatchTouchesOnlyPriceAndStock(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Electronics")
	product := seedProduct(t, db, category.ID, "Microphone", "120.00", 8)

	productService := services.NewProductService(db)

	patched, err := productService.PatchPriceAndStock(product.ID, dto.ProductPatchRequest{
		Price: 99.90,
		Stock: 15,
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(99.90).Equal(patched.Price))
	assert.Equal(t, 15, patched.Stock)
	assert.Equal(t, "Microphone", patched.Name)
	assert.Equal(t, "test product", patched.Description)
	assert.WithinDuration(t, product.RegisterDate, patched.RegisterDate, 0)
}

func TestProductDeleteReturnsLastRepresentation(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Electronics")
	product := seedProduct(t, db, category.ID, "Cable", "5.99", 100)

	productService := services.NewProductService(db)

	deleted, err := productService.Delete(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cable", deleted.Name)

	var notFound *services.NotFoundError
	_, err = productService.Get(product.ID)
	assert.ErrorAs(t, err, &notFound)

	_, err = productService.Delete(product.ID)
	assert.ErrorAs(t, err, &notFound)
}
