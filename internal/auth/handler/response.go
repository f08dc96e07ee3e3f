package handler

import (
	"github.com/gofiber/fiber/v2"
)

// Meta carries the human-readable outcome and, for validation failures, the
// per-field messages.
type Meta struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type Envelope struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data,omitempty"`
}

func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Envelope{Meta: Meta{Message: message}, Data: data})
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Meta: Meta{Message: message}})
}

func respondValidation(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{
		Meta: Meta{Message: "Validation failed", Errors: fields},
	})
}
