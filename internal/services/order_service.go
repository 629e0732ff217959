package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"storefront/internal/dto"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/rabbitmq"
)

// OrderEventPublisher publishes order lifecycle events. A nil publisher
// disables publishing; a failed publish is logged, never surfaced to the
// caller.
type OrderEventPublisher interface {
	PublishOrderCreated(event rabbitmq.OrderCreatedEvent) error
}

// OrderService handles order placement and retrieval.
type OrderService struct {
	db        *gorm.DB
	publisher OrderEventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(db *gorm.DB, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		db:        db,
		publisher: publisher,
	}
}

// GetAllOrders returns every order with items and product names.
func (s *OrderService) GetAllOrders() ([]dto.OrderResponse, error) {
	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	orders, err := uow.Orders.GetAllOrders()
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return dto.NewOrderResponses(orders), nil
}

// GetOrder returns one order, or a NotFoundError.
func (s *OrderService) GetOrder(id uint) (*dto.OrderResponse, error) {
	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	order, err := uow.Orders.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, &NotFoundError{Message: "Order not found."}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	response := dto.NewOrderResponse(order)
	return &response, nil
}

// Create places an order. Every product is looked up by id; an unknown id
// aborts the whole operation with a NotFoundError naming it and nothing is
// persisted. Each item freezes the product's price at lookup time and the
// total is the sum of unitPrice x quantity. Order and items are committed as
// one unit. Stock is neither checked nor decremented.
func (s *OrderService) Create(request dto.OrderRequest) (*dto.OrderResponse, error) {
	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	items := make([]models.OrderItem, 0, len(request.Items))
	products := make(map[uint]*models.Product, len(request.Items))
	total := decimal.Zero

	for _, itemRequest := range request.Items {
		product, err := uow.Products.Get("id = ?", itemRequest.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &NotFoundError{Message: fmt.Sprintf("Product ID %d not found.", itemRequest.ProductID)}
		}

		products[product.ID] = product
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  itemRequest.Quantity,
			UnitPrice: product.Price,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(itemRequest.Quantity))))
	}

	order := models.Order{
		CreatedAt: time.Now(),
		Total:     total,
		Items:     items,
	}
	if err := uow.Orders.Create(&order); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Attach the looked-up products so the response can project their names.
	for i := range order.Items {
		order.Items[i].Product = products[order.Items[i].ProductID]
	}

	s.publishCreated(&order)

	response := dto.NewOrderResponse(&order)
	return &response, nil
}

// Delete removes an order and, through the cascade, its items.
func (s *OrderService) Delete(id uint) error {
	uow, err := repositories.NewUnitOfWork(s.db)
	if err != nil {
		return err
	}
	defer uow.Rollback()

	order, err := uow.Orders.GetOrder(id)
	if err != nil {
		return err
	}
	if order == nil {
		return &NotFoundError{Message: fmt.Sprintf("Order with ID %d not found.", id)}
	}

	if err := uow.Orders.Delete(order); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *OrderService) publishCreated(order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := rabbitmq.OrderCreatedEvent{
		OrderID:   order.ID,
		Total:     order.Total.String(),
		ItemCount: len(order.Items),
		CreatedAt: order.CreatedAt,
	}
	if err := s.publisher.PublishOrderCreated(event); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order created event")
	}
}
