package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/hoangbru/blulog-api/internal/auth/dto"
	"github.com/hoangbru/blulog-api/internal/auth/service"
	autherror "github.com/hoangbru/blulog-api/internal/errors"
	"github.com/hoangbru/blulog-api/pkg/constant"
)

type AuthHandler struct {
	users  *service.UserService
	tokens service.TokenGenerator
	env    string
	logger *zap.SugaredLogger
}

func NewAuthHandler(users *service.UserService, tokens service.TokenGenerator,
	env string, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, env: env, logger: logger}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.users.Register(c.Context(), input)
	if err != nil {
		return h.handleError(c, err)
	}

	return respond(c, fiber.StatusCreated, "Registration successful", dto.RegisterOutput{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	accessToken, refreshToken, user, err := h.users.Login(c.Context(), input)
	if err != nil {
		return h.handleError(c, err)
	}

	h.setRefreshCookie(c, refreshToken)

	return respond(c, fiber.StatusOK, "Login successful", dto.LoginOutput{
		AccessToken: accessToken,
		User: dto.LoginUser{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Role:     string(user.Role),
		},
	})
}

// Refresh reads the refresh token from the session cookie only. The cookie is
// cleared on any verification failure so a broken session does not linger.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(constant.RefreshCookieName)
	if refreshToken == "" {
		return respondError(c, fiber.StatusUnauthorized, "no refresh token provided")
	}

	accessToken, err := h.users.Refresh(c.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, autherror.ErrTokenExpired),
			errors.Is(err, autherror.ErrInvalidToken),
			errors.Is(err, autherror.ErrMalformedSubject),
			errors.Is(err, autherror.ErrUserNotFound):
			h.clearRefreshCookie(c)
			return respondError(c, fiber.StatusForbidden, "invalid refresh token")
		default:
			h.logger.Errorw("refresh failed", "err", err)
			return respondError(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}

	return respond(c, fiber.StatusOK, "Token refreshed", dto.RefreshOutput{AccessToken: accessToken})
}

// Logout clears the session cookie. Tokens already issued stay valid until
// their embedded expiry; there is no server-side revocation state.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearRefreshCookie(c)
	return respond(c, fiber.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input dto.ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.users.ForgotPassword(c.Context(), input); err != nil {
		return h.handleError(c, err)
	}

	return respond(c, fiber.StatusOK, "Password reset email sent", nil)
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input dto.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.users.ResetPassword(c.Context(), input); err != nil {
		return h.handleError(c, err)
	}

	return respond(c, fiber.StatusOK, "Password has been reset", nil)
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     constant.RefreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(h.tokens.RefreshTokenExpiry().Seconds()),
		HTTPOnly: true,
		Secure:   h.env == constant.EnvProduction,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     constant.RefreshCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.env == constant.EnvProduction,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// handleError maps expected failures to their envelope; anything else is
// logged and returned as a bare 500.
func (h *AuthHandler) handleError(c *fiber.Ctx, err error) error {
	var verr *autherror.ValidationError
	switch {
	case errors.As(err, &verr):
		return respondValidation(c, verr.Fields)
	case errors.Is(err, autherror.ErrEmailAlreadyInUse),
		errors.Is(err, autherror.ErrInvalidCredentials),
		errors.Is(err, autherror.ErrResetTokenInvalid):
		return respondError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, autherror.ErrUserNotFound):
		return respondError(c, fiber.StatusNotFound, err.Error())
	default:
		h.logger.Errorw("unexpected error", "path", c.Path(), "err", err)
		return respondError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
