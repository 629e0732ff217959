package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Role{},
		&models.User{},
	); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	if err := services.SeedAdminUser(db, cfg); err != nil {
		logrus.WithError(err).Fatal("failed to seed admin user")
	}

	// The broker is optional: without it order events are simply not
	// published.
	var mqClient *rabbitmq.Client
	if client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}); err != nil {
		logrus.WithError(err).Warn("RabbitMQ unavailable, order events disabled")
	} else {
		mqClient = client
		defer mqClient.Close()
	}

	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db)
	categoryService := services.NewCategoryService(db)

	var publisher services.OrderEventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	orderService := services.NewOrderService(db, publisher)

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})
	app.Use(logger.New())
	app.Use(cors.New())

	authRequired := middleware.AuthRequired(authService)
	adminOnly := []fiber.Handler{authRequired, middleware.RequireRole(services.AdminRole)}

	api := app.Group("/api")
	authHandler.RegisterRoutes(api, authRequired)
	categoryHandler.RegisterRoutes(api, adminOnly)
	productHandler.RegisterRoutes(api, adminOnly)
	orderHandler.RegisterRoutes(api, adminOnly)

	if mqClient != nil {
		if err := mqClient.ConsumeOrderEvents(func(event rabbitmq.OrderCreatedEvent) error {
			logrus.WithFields(logrus.Fields{
				"order_id": event.OrderID,
				"total":    event.Total,
				"items":    event.ItemCount,
			}).Info("order created")
			return nil
		}); err != nil {
			logrus.WithError(err).Warn("failed to start order events consumer")
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.WithField("port", cfg.AppPort).Info("starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			logrus.WithError(err).Fatal("server failed to start")
		}
	}()

	<-quit
	logrus.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		logrus.WithError(err).Error("error during shutdown")
	}
	logrus.Info("server stopped")
}

// errorHandler converts unhandled errors into a generic 500 problem payload.
// Framework errors, such as malformed requests, keep their own status and
// message.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"message": fiberErr.Message,
		})
	}

	logrus.WithError(err).WithField("path", c.Path()).Error("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "An unexpected error occurred.",
	})
}
