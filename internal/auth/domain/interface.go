package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/hoangbru/blulog-api/internal/auth/domain UserRepository

import "context"

// UserRepository is the credential store contract. Lookups return (nil, nil)
// when no record matches; email uniqueness is enforced at the store level.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]User, error)
}
