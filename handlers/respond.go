package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"netwin-platform/services"
)

// fail maps service errors onto consistent {"error": reason} responses.
// Unknown errors are logged and collapsed into a generic failure so internal
// detail never leaks to the client.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrTournamentNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrDocumentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrKycRequired):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidPhone),
		errors.Is(err, services.ErrInvalidOTP),
		errors.Is(err, services.ErrNoPendingVerification),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, services.ErrBelowMinWithdrawal),
		errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("❌ internal error on %s: %v", c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "server error, please try again later",
		})
	}
}
