package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

var (
	errMissingEmail = errors.New("missing email")
	errNotOwner     = errors.New("token does not belong to this email")
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, errMissingEmail):
		return fiber.StatusBadRequest
	case errors.Is(err, errNotOwner):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrTokenNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProviderNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrAlreadyProvider),
		errors.Is(err, services.ErrAlreadyLinked),
		errors.Is(err, services.ErrTokenConflict),
		errors.Is(err, services.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrMissingCalendarLink):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError maps a service error to its response. Server-side failures are
// logged and their detail withheld from the client.
func writeError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	message := err.Error()
	if errors.Is(err, services.ErrInvalidToken) {
		message = "Invalid token!"
	}
	if status >= fiber.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", requestID(c),
			"error", err,
		)
		message = "Internal server error"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
