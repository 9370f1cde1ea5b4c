package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/carevia/server/internal/apperr"
)

// ErrorHandler maps the error taxonomy onto transport responses. Dependency
// failures and unknown errors are logged with their cause and answered with
// an opaque 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		validationErr *apperr.ValidationError
		conflictErr   *apperr.ConflictError
		notFoundErr   *apperr.NotFoundError
		authErr       *apperr.AuthError
		dependencyErr *apperr.DependencyError
		fiberErr      *fiber.Error
	)

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   validationErr.Message,
			"field":   validationErr.Field,
		})
	case errors.As(err, &conflictErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   conflictErr.Message,
		})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   notFoundErr.Message,
		})
	case errors.As(err, &authErr):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   authErr.Message,
		})
	case errors.As(err, &dependencyErr):
		log.Printf("dependency failure: %v", dependencyErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "request failed, please try again",
		})
	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"error":   fiberErr.Message,
		})
	default:
		log.Printf("unhandled error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "request failed, please try again",
		})
	}
}
