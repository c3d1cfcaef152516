package handlers

import (
	"errors"

	"growth-garden-system/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps use-case error kinds onto HTTP statuses. Validation and
// invalid-input failures are the caller's to fix; not-found surfaces as-is.
func respondError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": verr.Error(),
		})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrChildNotFound), errors.Is(err, services.ErrGardenNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
