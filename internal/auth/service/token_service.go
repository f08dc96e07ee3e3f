package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/hoangbru/blulog-api/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hoangbru/blulog-api/config"
	autherror "github.com/hoangbru/blulog-api/internal/errors"
)

// TokenGenerator signs and verifies the three token classes. Each class has
// its own secret and TTL; verification is a pure function of the token, the
// secret and the clock.
type TokenGenerator interface {
	GenerateAccessToken(userID, email string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	GenerateResetToken(userID string) (string, error)
	VerifyAccessToken(tokenString string) (*TokenClaims, error)
	VerifyRefreshToken(tokenString string) (*TokenClaims, error)
	VerifyResetToken(tokenString string) (*TokenClaims, error)
	RefreshTokenExpiry() time.Duration
}

type TokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	resetSecret   []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	resetExpiry   time.Duration
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		resetSecret:   []byte(cfg.ResetTokenSecret),
		accessExpiry:  time.Duration(cfg.AccessExpiryMin) * time.Minute,
		refreshExpiry: time.Duration(cfg.RefreshExpiryMin) * time.Minute,
		resetExpiry:   time.Duration(cfg.ResetExpiryMin) * time.Minute,
	}
}

func (ts *TokenService) GenerateAccessToken(userID, email string) (string, error) {
	return ts.sign(userID, email, ts.accessSecret, ts.accessExpiry)
}

func (ts *TokenService) GenerateRefreshToken(userID string) (string, error) {
	return ts.sign(userID, "", ts.refreshSecret, ts.refreshExpiry)
}

func (ts *TokenService) GenerateResetToken(userID string) (string, error) {
	return ts.sign(userID, "", ts.resetSecret, ts.resetExpiry)
}

// VerifyAccessToken additionally requires the subject to be a well-formed
// account id; a valid signature over a garbage subject is its own failure.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*TokenClaims, error) {
	claims, err := ts.verify(tokenString, ts.accessSecret)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, autherror.ErrMalformedSubject
	}
	return claims, nil
}

func (ts *TokenService) VerifyRefreshToken(tokenString string) (*TokenClaims, error) {
	return ts.verify(tokenString, ts.refreshSecret)
}

func (ts *TokenService) VerifyResetToken(tokenString string) (*TokenClaims, error) {
	claims, err := ts.verify(tokenString, ts.resetSecret)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, autherror.ErrMalformedSubject
	}
	return claims, nil
}

func (ts *TokenService) RefreshTokenExpiry() time.Duration {
	return ts.refreshExpiry
}

func (ts *TokenService) sign(subject, email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// verify reports exactly three outcomes: claims, ErrTokenExpired, or
// ErrInvalidToken. A wrong secret and a tampered token are indistinguishable.
func (ts *TokenService) verify(tokenString string, secret []byte) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherror.ErrTokenExpired
		}
		return nil, autherror.ErrInvalidToken
	}

	if !token.Valid {
		return nil, autherror.ErrInvalidToken
	}

	return claims, nil
}
