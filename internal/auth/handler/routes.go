package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Post("/register", h.Register)
	app.Post("/login", h.Login)
	app.Post("/refresh-token", h.Refresh)
	app.Post("/logout", h.Logout)
	app.Post("/forgot-password", h.ForgotPassword)
	app.Post("/reset-password", h.ResetPassword)

	app.Get("/profile", h.RequireAuth, h.Profile)

	app.Get("/users", h.RequireAuth, h.RequireAdmin, h.ListUsers)
	app.Patch("/users/:id/status", h.RequireAuth, h.UpdateStatus)
	app.Put("/users/:id", h.RequireAuth, h.UpdateUser)
	app.Delete("/users/:id", h.RequireAuth, h.RequireAdmin, h.DeleteUser)
}
