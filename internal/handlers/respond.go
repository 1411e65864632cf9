package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/christale-kib/taxiconnect-backend/internal/services"
)

// ok sends the standard success envelope.
func ok(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// created is ok with a 201.
func created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// fail maps a service error onto the envelope with the matching HTTP
// status. Unknown errors become opaque 500s.
func fail(c *fiber.Ctx, err error) error {
	var domainErr *services.DomainError
	if errors.As(err, &domainErr) {
		status := fiber.StatusBadRequest
		switch domainErr.Kind {
		case services.KindConflict:
			status = fiber.StatusConflict
		case services.KindNotFound:
			status = fiber.StatusNotFound
		case services.KindInsufficientBalance:
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": domainErr.Message,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Erreur interne. Réessayez plus tard.",
	})
}

// badRequest rejects an unparseable body.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
