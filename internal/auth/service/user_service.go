package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hoangbru/blulog-api/internal/auth/domain"
	"github.com/hoangbru/blulog-api/internal/auth/dto"
	autherror "github.com/hoangbru/blulog-api/internal/errors"
	"github.com/hoangbru/blulog-api/pkg/constant"
)

type UserService struct {
	repo   domain.UserRepository
	tokens TokenGenerator
	mailer Mailer
	appURL string
	logger *zap.SugaredLogger
}

func NewUserService(repo domain.UserRepository, tokens TokenGenerator, mailer Mailer,
	appURL string, logger *zap.SugaredLogger) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		mailer: mailer,
		appURL: appURL,
		logger: logger,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	if fields := dto.Validate(input); fields != nil {
		return nil, autherror.NewValidationError(fields)
	}

	email := normalizeEmail(input.Email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), constant.BcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		FullName:     strings.TrimSpace(input.FullName),
		Email:        email,
		PasswordHash: string(hashedPassword),
		AvatarURL:    constant.DefaultAvatarURL,
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique index on email resolves a concurrent duplicate registration;
	// the losing request sees ErrEmailAlreadyInUse from the store.
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login returns an access token, a refresh token and the account. Unknown
// email and wrong password take the same failure path so the response never
// reveals whether the email exists.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (string, string, *domain.User, error) {
	if fields := dto.Validate(input); fields != nil {
		return "", "", nil, autherror.NewValidationError(fields)
	}

	user, err := s.repo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return "", "", nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return "", "", nil, autherror.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", nil, err
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return "", "", nil, err
	}

	return accessToken, refreshToken, user, nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is not rotated; it stays valid until its embedded expiry.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.repo.GetByID(ctx, claims.Subject)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", autherror.ErrUserNotFound
	}

	return s.tokens.GenerateAccessToken(user.ID, user.Email)
}

// ForgotPassword mints a reset token and emails a link embedding it. Unlike
// Login this reports unknown emails as not found.
func (s *UserService) ForgotPassword(ctx context.Context, input dto.ForgotPasswordInput) error {
	if fields := dto.Validate(input); fields != nil {
		return autherror.NewValidationError(fields)
	}

	user, err := s.repo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrUserNotFound
	}

	resetToken, err := s.tokens.GenerateResetToken(user.ID)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.appURL, url.QueryEscape(resetToken))
	body := fmt.Sprintf(
		`<p>Hello,</p><p>We received a request to reset your password. Click the link below to choose a new one:</p><p><a href="%s">Reset password</a></p><p>If you did not request this, you can safely ignore this email.</p>`,
		link)

	// Token issuance stands regardless of dispatch outcome.
	if err := s.mailer.Send(user.Email, "Reset your password", body); err != nil {
		s.logger.Warnw("reset email dispatch failed", "email", user.Email, "err", err)
	}

	return nil
}

// ResetPassword consumes a reset token and overwrites the password hash. The
// token is not invalidated on use; it simply expires on schedule.
func (s *UserService) ResetPassword(ctx context.Context, input dto.ResetPasswordInput) error {
	if fields := dto.Validate(input); fields != nil {
		return autherror.NewValidationError(fields)
	}

	claims, err := s.tokens.VerifyResetToken(input.Token)
	if err != nil {
		return autherror.ErrResetTokenInvalid
	}

	user, err := s.repo.GetByID(ctx, claims.Subject)
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrUserNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), constant.BcryptCost)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, user.ID, string(hashedPassword))
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) UpdateStatus(ctx context.Context, id string, input dto.UpdateStatusInput) error {
	if fields := dto.Validate(input); fields != nil {
		return autherror.NewValidationError(fields)
	}
	if _, err := uuid.Parse(id); err != nil {
		return autherror.ErrUserNotFound
	}
	return s.repo.UpdateStatus(ctx, id, domain.Status(input.Status))
}

func (s *UserService) UpdateUser(ctx context.Context, id string, input dto.UpdateUserInput) (*domain.User, error) {
	if fields := dto.Validate(input); fields != nil {
		return nil, autherror.NewValidationError(fields)
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, autherror.ErrUserNotFound
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	if input.FullName != "" {
		user.FullName = strings.TrimSpace(input.FullName)
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Address != "" {
		user.Address = input.Address
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return autherror.ErrUserNotFound
	}
	return s.repo.Delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
