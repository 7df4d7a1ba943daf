package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"keeper/config"
	"keeper/services"
)

var validate = validator.New()

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	Cfg       *config.Config
	Users     *services.UserService
	Contacts  *services.ContactService
	Calendars *services.CalendarService
	Audit     *services.AuditService
	Google    *services.GoogleProvider
}

// ErrorHandler maps service errors to HTTP statuses for the Fiber app.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, services.ErrNotFound):
		code = fiber.StatusNotFound
	case services.IsValidation(err):
		code = fiber.StatusBadRequest
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// parseBody decodes and validates a JSON request body.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
