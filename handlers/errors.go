package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/tutoria-app/backend/services"
)

// serviceError maps domain errors to one consistent HTTP status per
// error class: missing resources 404, ownership 403, state conflicts
// and bad input 400. Anything unrecognized is a 500.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrCodeNotFound),
		errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrMaterialNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})

	case errors.Is(err, services.ErrNotYourSession):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": err.Error()})

	case errors.Is(err, services.ErrCodeAlreadyUsed),
		errors.Is(err, services.ErrSessionNotRequested),
		errors.Is(err, services.ErrSessionNotConfirmed),
		errors.Is(err, services.ErrSessionNotDone),
		errors.Is(err, services.ErrPaymentNotRequested),
		errors.Is(err, services.ErrMustApproveFirst),
		errors.Is(err, services.ErrPaymentWithoutTutor):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
}
