package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hoangbru/blulog-api/internal/auth/domain"
	"github.com/hoangbru/blulog-api/internal/auth/dto"
	"github.com/hoangbru/blulog-api/internal/auth/service"
	autherror "github.com/hoangbru/blulog-api/internal/errors"
	"github.com/hoangbru/blulog-api/internal/mocks"
	"github.com/hoangbru/blulog-api/pkg/constant"
)

const testAppURL = "https://blulog.app"

func newService(t *testing.T) (*service.UserService, *mocks.MockUserRepository, *mocks.MockTokenGenerator, *mocks.MockMailer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokens := mocks.NewMockTokenGenerator(ctrl)
	mockMailer := mocks.NewMockMailer(ctrl)
	s := service.NewUserService(mockRepo, mockTokens, mockMailer, testAppURL, zap.NewNop().Sugar())

	return s, mockRepo, mockTokens, mockMailer
}

func TestUserService_Register_Success(t *testing.T) {
	s, mockRepo, _, _ := newService(t)

	input := dto.RegisterInput{
		FullName: "Jane Doe",
		Email:    "JANE@x.com",
		Password: "secret1",
	}

	var created *domain.User
	mockRepo.EXPECT().GetByEmail(gomock.Any(), "jane@x.com").Return(nil, nil)
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u *domain.User) error {
			created = u
			return nil
		})

	user, err := s.Register(context.Background(), input)

	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, created)
	assert.Equal(t, "jane@x.com", created.Email)
	assert.Equal(t, "Jane Doe", created.FullName)
	assert.Equal(t, domain.RoleUser, created.Role)
	assert.Equal(t, domain.StatusActive, created.Status)
	assert.Equal(t, constant.DefaultAvatarURL, created.AvatarURL)
	assert.NotZero(t, created.CreatedAt)
	assert.NotZero(t, created.UpdatedAt)

	// The stored hash is not the plaintext, and verifies against it.
	assert.NotEqual(t, input.Password, created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte(input.Password)))

	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err)
}

func TestUserService_Register_ValidationFailsBeforeSideEffects(t *testing.T) {
	s, _, _, _ := newService(t)

	tests := []struct {
		name  string
		input dto.RegisterInput
		field string
	}{
		{"missing email", dto.RegisterInput{Password: "secret1"}, "email"},
		{"malformed email", dto.RegisterInput{Email: "nope", Password: "secret1"}, "email"},
		{"missing password", dto.RegisterInput{Email: "jane@x.com"}, "password"},
		{"short password", dto.RegisterInput{Email: "jane@x.com", Password: "12345"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No repo expectations: validation failure must precede lookups.
			user, err := s.Register(context.Background(), tt.input)

			assert.Nil(t, user)
			var verr *autherror.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestUserService_Register_EmailAlreadyExists(t *testing.T) {
	s, mockRepo, _, _ := newService(t)

	input := dto.RegisterInput{Email: "jane@x.com", Password: "secret1"}
	existing := &domain.User{ID: uuid.NewString(), Email: input.Email}

	mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(existing, nil)

	user, err := s.Register(context.Background(), input)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, autherror.ErrEmailAlreadyInUse)
}

func TestUserService_Register_StoreError(t *testing.T) {
	s, mockRepo, _, _ := newService(t)

	input := dto.RegisterInput{Email: "jane@x.com", Password: "secret1"}
	expectedErr := errors.New("database error")

	mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, expectedErr)

	user, err := s.Register(context.Background(), input)

	assert.Nil(t, user)
	assert.Equal(t, expectedErr, err)
}

func TestUserService_Login_Success(t *testing.T) {
	s, mockRepo, mockTokens, _ := newService(t)

	password := "secret1"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		ID:           uuid.NewString(),
		FullName:     "Jane Doe",
		Email:        "jane@x.com",
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	mockRepo.EXPECT().GetByEmail(gomock.Any(), "jane@x.com").Return(user, nil)
	mockTokens.EXPECT().GenerateAccessToken(user.ID, user.Email).Return("access-token", nil)
	mockTokens.EXPECT().GenerateRefreshToken(user.ID).Return("refresh-token", nil)

	accessToken, refreshToken, got, err := s.Login(context.Background(), dto.LoginInput{
		Email:    "Jane@X.com",
		Password: password,
	})

	require.NoError(t, err)
	assert.Equal(t, "access-token", accessToken)
	assert.Equal(t, "refresh-token", refreshToken)
	assert.Equal(t, user, got)
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestUserService_Login_EnumerationSafe(t *testing.T) {
	s, mockRepo, _, _ := newService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: uuid.NewString(), Email: "jane@x.com", PasswordHash: string(hash)}

	mockRepo.EXPECT().GetByEmail(gomock.Any(), "nobody@x.com").Return(nil, nil)
	_, _, _, errUnknown := s.Login(context.Background(), dto.LoginInput{
		Email: "nobody@x.com", Password: "whatever",
	})

	mockRepo.EXPECT().GetByEmail(gomock.Any(), "jane@x.com").Return(user, nil)
	_, _, _, errWrongPassword := s.Login(context.Background(), dto.LoginInput{
		Email: "jane@x.com", Password: "wrong",
	})

	assert.ErrorIs(t, errUnknown, autherror.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPassword, autherror.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPassword.Error())
}

func TestUserService_Refresh_Success(t *testing.T) {
	s, mockRepo, mockTokens, _ := newService(t)

	userID := uuid.NewString()
	user := &domain.User{ID: userID, Email: "jane@x.com"}
	claims := &service.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: userID}}

	// A new access token only; the refresh token is never rotated.
	mockTokens.EXPECT().VerifyRefreshToken("refresh-token").Return(claims, nil)
	mockRepo.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
	mockTokens.EXPECT().GenerateAccessToken(userID, user.Email).Return("new-access-token", nil)

	accessToken, err := s.Refresh(context.Background(), "refresh-token")

	require.NoError(t, err)
	assert.Equal(t, "new-access-token", accessToken)
}

func TestUserService_Refresh_ReusableWithoutRotation(t *testing.T) {
	s, mockRepo, mockTokens, _ := newService(t)

	userID := uuid.NewString()
	user := &domain.User{ID: userID, Email: "jane@x.com"}
	claims := &service.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: userID}}

	mockTokens.EXPECT().VerifyRefreshToken("refresh-token").Return(claims, nil).Times(2)
	mockRepo.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil).Times(2)
	gomock.InOrder(
		mockTokens.EXPECT().GenerateAccessToken(userID, user.Email).Return("access-1", nil),
		mockTokens.EXPECT().GenerateAccessToken(userID, user.Email).Return("access-2", nil),
	)

	first, err := s.Refresh(context.Background(), "refresh-token")
	require.NoError(t, err)
	second, err := s.Refresh(context.Background(), "refresh-token")
	require.NoError(t, err)

	assert.Equal(t, "access-1", first)
	assert.Equal(t, "access-2", second)
}

func TestUserService_Refresh_InvalidToken(t *testing.T) {
	s, _, mockTokens, _ := newService(t)

	mockTokens.EXPECT().VerifyRefreshToken("bad").Return(nil, autherror.ErrInvalidToken)

	_, err := s.Refresh(context.Background(), "bad")
	assert.ErrorIs(t, err, autherror.ErrInvalidToken)
}

func TestUserService_Refresh_AccountDeleted(t *testing.T) {
	s, mockRepo, mockTokens, _ := newService(t)

	userID := uuid.NewString()
	claims := &service.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: userID}}

	mockTokens.EXPECT().VerifyRefreshToken("refresh-token").Return(claims, nil)
	mockRepo.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)

	_, err := s.Refresh(context.Background(), "refresh-token")
	assert.ErrorIs(t, err, autherror.ErrUserNotFound)
}

func TestUserService_ForgotPassword_SendsLinkWithToken(t *testing.T) {
	s, mockRepo, mockTokens, mockMailer := newService(t)

	user := &domain.User{ID: uuid.NewString(), Email: "jane@x.com"}
	var sentBody string

	mockRepo.EXPECT().GetByEmail(gomock.Any(), "jane@x.com").Return(user, nil)
	mockTokens.EXPECT().GenerateResetToken(user.ID).Return("reset-token", nil)
	mockMailer.EXPECT().Send(user.Email, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_, _, htmlBody string) error {
			sentBody = htmlBody
			return nil
		})

	err := s.ForgotPassword(context.Background(), dto.ForgotPasswordInput{Email: "jane@x.com"})

	require.NoError(t, err)
	assert.True(t, strings.Contains(sentBody, testAppURL+"/reset-password?token=reset-token"))
}

func TestUserService_ForgotPassword_UnknownEmail(t *testing.T) {
	s, mockRepo, _, _ := newService(t)

	mockRepo.EXPECT().GetByEmail(gomock.Any(), "nobody@x.com").Return(nil, nil)

	err := s.ForgotPassword(context.Background(), dto.ForgotPasswordInput{Email: "nobody@x.com"})
	assert.ErrorIs(t, err, autherror.ErrUserNotFound)
}

// Email dispatch is fire-and-forget: a failure does not fail the operation.
func TestUserService_ForgotPassword_MailFailureIgnored(t *testing.T) {
	s, mockRepo, mockTokens, mockMailer := newService(t)

	user := &domain.User{ID: uuid.NewString(), Email: "jane@x.com"}

	mockRepo.EXPECT().GetByEmail(gomock.Any(), "jane@x.com").Return(user, nil)
	mockTokens.EXPECT().GenerateResetToken(user.ID).Return("reset-token", nil)
	mockMailer.EXPECT().Send(user.Email, gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

	err := s.ForgotPassword(context.Background(), dto.ForgotPasswordInput{Email: "jane@x.com"})
	assert.NoError(t, err)
}

func TestUserService_ResetPassword_Success(t *testing.T) {
	s, mockRepo, mockTokens, _ := newService(t)

	userID := uuid.NewString()
	user := &domain.User{ID: userID, Email: "jane@x.com"}
	claims := &service.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: userID}}
	var storedHash string

	mockTokens.EXPECT().VerifyResetToken("reset-token").Return(claims, nil)
	mockRepo.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
	mockRepo.EXPECT().UpdatePassword(gomock.Any(), userID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _, hash string) error {
			storedHash = hash
			return nil
		})

	err := s.ResetPassword(context.Background(), dto.ResetPasswordInput{
		Token:       "reset-token",
		NewPassword: "brand-new",
	})

	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("brand-new")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("old-password")))
}

func TestUserService_ResetPassword_InvalidToken(t *testing.T) {
	s, _, mockTokens, _ := newService(t)

	mockTokens.EXPECT().VerifyResetToken("bad").Return(nil, autherror.ErrTokenExpired)

	err := s.ResetPassword(context.Background(), dto.ResetPasswordInput{
		Token:       "bad",
		NewPassword: "brand-new",
	})
	assert.ErrorIs(t, err, autherror.ErrResetTokenInvalid)
}

func TestUserService_ResetPassword_AccountDeleted(t *testing.T) {
	s, mockRepo, mockTokens, _ := newService(t)

	userID := uuid.NewString()
	claims := &service.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: userID}}

	mockTokens.EXPECT().VerifyResetToken("reset-token").Return(claims, nil)
	mockRepo.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)

	err := s.ResetPassword(context.Background(), dto.ResetPasswordInput{
		Token:       "reset-token",
		NewPassword: "brand-new",
	})
	assert.ErrorIs(t, err, autherror.ErrUserNotFound)
}

func TestUserService_UpdateStatus(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mockRepo, _, _ := newService(t)
		id := uuid.NewString()

		mockRepo.EXPECT().UpdateStatus(gomock.Any(), id, domain.StatusInactive).Return(nil)

		err := s.UpdateStatus(context.Background(), id, dto.UpdateStatusInput{Status: "inactive"})
		assert.NoError(t, err)
	})

	t.Run("invalid status value", func(t *testing.T) {
		s, _, _, _ := newService(t)

		err := s.UpdateStatus(context.Background(), uuid.NewString(), dto.UpdateStatusInput{Status: "paused"})

		var verr *autherror.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "status")
	})

	t.Run("malformed id", func(t *testing.T) {
		s, _, _, _ := newService(t)

		err := s.UpdateStatus(context.Background(), "not-a-uuid", dto.UpdateStatusInput{Status: "active"})
		assert.ErrorIs(t, err, autherror.ErrUserNotFound)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Run("updates provided fields only", func(t *testing.T) {
		s, mockRepo, _, _ := newService(t)
		id := uuid.NewString()
		existing := &domain.User{ID: id, FullName: "Jane Doe", Email: "jane@x.com", Phone: "+15550001111"}

		mockRepo.EXPECT().GetByID(gomock.Any(), id).Return(existing, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u *domain.User) error {
				assert.Equal(t, "Jane Smith", u.FullName)
				assert.Equal(t, "+15550001111", u.Phone) // untouched
				return nil
			})

		user, err := s.UpdateUser(context.Background(), id, dto.UpdateUserInput{FullName: "Jane Smith"})
		require.NoError(t, err)
		assert.Equal(t, "Jane Smith", user.FullName)
	})

	t.Run("rejects malformed phone", func(t *testing.T) {
		s, _, _, _ := newService(t)

		_, err := s.UpdateUser(context.Background(), uuid.NewString(), dto.UpdateUserInput{Phone: "555-ABC"})

		var verr *autherror.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "phone")
	})

	t.Run("unknown account", func(t *testing.T) {
		s, mockRepo, _, _ := newService(t)
		id := uuid.NewString()

		mockRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

		_, err := s.UpdateUser(context.Background(), id, dto.UpdateUserInput{FullName: "Jane"})
		assert.ErrorIs(t, err, autherror.ErrUserNotFound)
	})
}

func TestUserService_DeleteUser_MalformedID(t *testing.T) {
	s, _, _, _ := newService(t)

	err := s.DeleteUser(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, autherror.ErrUserNotFound)
}
