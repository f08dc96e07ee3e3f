package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hoangbru/blulog-api/internal/auth/dto"
)

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user := CurrentUser(c)
	return respond(c, fiber.StatusOK, "Profile fetched", dto.NewUserOutput(user))
}

func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	out := make([]dto.UserOutput, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserOutput(&users[i]))
	}

	return respond(c, fiber.StatusOK, "Users fetched", out)
}

func (h *AuthHandler) UpdateStatus(c *fiber.Ctx) error {
	var input dto.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.users.UpdateStatus(c.Context(), c.Params("id"), input); err != nil {
		return h.handleError(c, err)
	}

	return respond(c, fiber.StatusOK, "Status updated", nil)
}

func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	var input dto.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.users.UpdateUser(c.Context(), c.Params("id"), input)
	if err != nil {
		return h.handleError(c, err)
	}

	return respond(c, fiber.StatusOK, "User updated", dto.NewUserOutput(user))
}

func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.users.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return h.handleError(c, err)
	}

	return respond(c, fiber.StatusOK, "User removed", nil)
}
