package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront/internal/dto"
	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishOrderCreated(event rabbitmq.OrderCreatedEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := models.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID uint, name, price string, stock int) *models.Product {
	t.Helper()
	product := models.Product{
		Name:         name,
		Description:  "test product",
		Price:        decimal.RequireFromString(price),
		Stock:        stock,
		CategoryID:   categoryID,
		RegisterDate: time.Now(),
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func TestCreateOrderComputesTotalAndPublishes(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Electronics")
	keyboard := seedProduct(t, db, category.ID, "Keyboard", "10.50", 10)
	mousepad := seedProduct(t, db, category.ID, "Mousepad", "3.25", 10)

	publisher := new(mockPublisher)
	publisher.On("PublishOrderCreated", mock.AnythingOfType("rabbitmq.OrderCreatedEvent")).Return(nil)

	orderService := services.NewOrderService(db, publisher)

	order, err := orderService.Create(dto.OrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: keyboard.ID, Quantity: 2},
			{ProductID: mousepad.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	// 10.50*2 + 3.25*1
	assert.True(t, decimal.RequireFromString("24.25").Equal(order.Total),
		"expected total 24.25, got %s", order.Total)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Keyboard", order.Items[0].ProductName)
	assert.True(t, decimal.RequireFromString("10.50").Equal(order.Items[0].Price))
	assert.Equal(t, 2, order.Items[0].Quantity)

	publisher.AssertCalled(t, "PublishOrderCreated", mock.MatchedBy(func(event rabbitmq.OrderCreatedEvent) bool {
		return event.OrderID == order.OrderID && event.ItemCount == 2
	}))

	// Stock is neither checked nor decremented.
	var stored models.Product
	require.NoError(t, db.First(&stored, keyboard.ID).Error)
	assert.Equal(t, 10, stored.Stock)
}

func TestCreateOrderFreezesUnitPrice(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Electronics")
	monitor := seedProduct(t, db, category.ID, "Monitor", "199.99", 5)

	orderService := services.NewOrderService(db, nil)

	order, err := orderService.Create(dto.OrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: monitor.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// A later price change must not affect the captured order.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", monitor.ID).
		Update("price", decimal.RequireFromString("249.99")).Error)

	reloaded, err := orderService.GetOrder(order.OrderID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.True(t, decimal.RequireFromString("199.99").Equal(reloaded.Items[0].Price))
	assert.True(t, decimal.RequireFromString("199.99").Equal(reloaded.Total))
}

func TestCreateOrderUnknownProductPersistsNothing(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Electronics")
	webcam := seedProduct(t, db, category.ID, "Webcam", "49.00", 5)

	publisher := new(mockPublisher)
	orderService := services.NewOrderService(db, publisher)

	_, err := orderService.Create(dto.OrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: webcam.ID, Quantity: 1},
			{ProductID: 999, Quantity: 1},
		},
	})
	require.Error(t, err)

	var notFound *services.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Product ID 999 not found.", notFound.Message)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)

	publisher.AssertNotCalled(t, "PublishOrderCreated", mock.Anything)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Electronics")
	headset := seedProduct(t, db, category.ID, "Headset", "79.90", 5)

	orderService := services.NewOrderService(db, nil)

	order, err := orderService.Create(dto.OrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: headset.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	require.NoError(t, orderService.Delete(order.OrderID))

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)

	// The product itself stays.
	var productCount int64
	require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
	assert.EqualValues(t, 1, productCount)

	var notFound *services.NotFoundError
	assert.ErrorAs(t, orderService.Delete(order.OrderID), &notFound)
}

func TestGetAllOrdersProjectsProductNames(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Electronics")
	speaker := seedProduct(t, db, category.ID, "Speaker", "35.00", 5)

	orderService := services.NewOrderService(db, nil)

	_, err := orderService.Create(dto.OrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: speaker.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	orders, err := orderService.GetAllOrders()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Speaker", orders[0].Items[0].ProductName)
}
