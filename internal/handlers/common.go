package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"storefront/internal/services"
)

// validationErrors turns validator output into a field -> message map for a
// 400 response body.
func validationErrors(err error) map[string]string {
	messages := make(map[string]string)
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, e := range fieldErrors {
			messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return messages
}

// respondError maps service errors to status codes: NotFoundError -> 404,
// anything else -> generic 500, logged server-side.
func respondError(c *fiber.Ctx, err error) error {
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": notFound.Message,
		})
	}

	logrus.WithError(err).WithField("path", c.Path()).Error("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "An unexpected error occurred.",
	})
}
