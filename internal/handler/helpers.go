package handler

import (
	"errors"

	"go-inventory-pos/internal/middleware"
	"go-inventory-pos/internal/service"
	"go-inventory-pos/pkg/jwt"
	"go-inventory-pos/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorFrom reads the caller stored by RequireAuth.
func actorFrom(c *fiber.Ctx) service.Actor {
	actor := service.Actor{ID: "system", Name: "Unknown"}
	if v, ok := c.Locals(middleware.LocalUserID).(string); ok && v != "" {
		actor.ID = v
	}
	if v, ok := c.Locals(middleware.LocalUserName).(string); ok && v != "" {
		actor.Name = v
	}
	if v, ok := c.Locals(middleware.LocalUserEmail).(string); ok {
		actor.Email = v
	}
	return actor
}

func paramID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

func invalidID(c *fiber.Ctx, what string) error {
	return c.Status(400).JSON(fiber.Map{"error": "Invalid " + what + " ID"})
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
}

var notFoundErrors = []error{
	service.ErrItemNotFound,
	service.ErrPurchaseNotFound,
	service.ErrSaleNotFound,
	service.ErrDeliveryNotFound,
	service.ErrCategoryNotFound,
	service.ErrVendorNotFound,
	service.ErrCustomerNotFound,
	service.ErrUserNotFound,
	service.ErrRoleNotFound,
}

func statusFor(err error) int {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return 404
		}
	}
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrWrongPassword):
		return 400
	case errors.Is(err, service.ErrNegativeStock), errors.Is(err, service.ErrDuplicate), errors.Is(err, service.ErrEmailExists):
		return 409
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserInactive),
		errors.Is(err, service.ErrSessionReplaced), errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, jwt.ErrMissingToken):
		return 401
	default:
		return 500
	}
}

// respondError maps domain errors to HTTP statuses. Unexpected errors are
// logged and hidden behind a generic message.
func respondError(c *fiber.Ctx, funcName string, err error) error {
	status := statusFor(err)
	if status == 500 {
		logger.LogError("handler", funcName, c.Method()+" "+c.Path(), nil, err)
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
