package app

import (
	"errors"

	"workforce_chat_service/internal/chat/domain"
	"workforce_chat_service/pkg/middlewares"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// currentUserID reads the identity the JWT middleware stored on the context.
func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(middlewares.TokenUserID).(string)
	return userID
}

// respondError maps the domain error taxonomy to HTTP statuses. Anything
// outside the taxonomy is a 500 with a generic body.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidDestination):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidTransition):
		status, message = fiber.StatusConflict, err.Error()
	}

	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}
