package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// CanManageUsers is the single capability check backing the admin-gated
// routes. Role comparisons happen here, not at call sites.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// User is the account record. PasswordHash never leaves the service layer;
// every outward projection lives in the dto package and excludes it.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	AvatarURL    string
	Role         Role
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
