package dto

import (
	"time"

	"github.com/hoangbru/blulog-api/internal/auth/domain"
)

// UserOutput is the full public projection of an account. The password hash
// is excluded by construction.
type UserOutput struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName,omitempty"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	AvatarURL string    `json:"avatarUrl"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserOutput(u *domain.User) UserOutput {
	return UserOutput{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		AvatarURL: u.AvatarURL,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type UpdateUserInput struct {
	FullName  string `json:"fullName" validate:"omitempty,max=100"`
	Phone     string `json:"phone" validate:"omitempty,e164"`
	Address   string `json:"address" validate:"omitempty,max=255"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
}

type UpdateStatusInput struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}
