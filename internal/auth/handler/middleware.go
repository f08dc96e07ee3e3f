package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hoangbru/blulog-api/internal/auth/domain"
	autherror "github.com/hoangbru/blulog-api/internal/errors"
	"github.com/hoangbru/blulog-api/pkg/constant"
)

const bearerPrefix = "Bearer "

// RequireAuth extracts the access token from the Authorization header,
// verifies it, resolves the subject to an account and attaches the account to
// the request. Terminal outcomes: proceed, or reject with 401/400/404/500.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return respondError(c, fiber.StatusUnauthorized, autherror.ErrNoToken.Error())
	}

	claims, err := h.tokens.VerifyAccessToken(strings.TrimPrefix(header, bearerPrefix))
	switch {
	case errors.Is(err, autherror.ErrTokenExpired):
		return respondError(c, fiber.StatusUnauthorized, autherror.ErrTokenExpired.Error())
	case errors.Is(err, autherror.ErrMalformedSubject):
		return respondError(c, fiber.StatusBadRequest, autherror.ErrMalformedSubject.Error())
	case err != nil:
		return respondError(c, fiber.StatusUnauthorized, autherror.ErrInvalidToken.Error())
	}

	user, err := h.users.GetByID(c.Context(), claims.Subject)
	if err != nil {
		h.logger.Errorw("account lookup failed during authentication", "err", err)
		return respondError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if user == nil {
		// Account deleted after the token was issued.
		return respondError(c, fiber.StatusNotFound, "authentication failed")
	}

	user.PasswordHash = ""
	c.Locals(constant.ContextUserKey, user)

	return c.Next()
}

// RequireAdmin layers a role check on top of RequireAuth; it must be
// registered after it.
func (h *AuthHandler) RequireAdmin(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil || !user.Role.CanManageUsers() {
		return respondError(c, fiber.StatusForbidden, "admin access required")
	}

	return c.Next()
}

// CurrentUser returns the account attached by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(constant.ContextUserKey).(*domain.User)
	return user
}
