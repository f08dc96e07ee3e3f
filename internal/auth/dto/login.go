package dto

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput carries the access token in the body. The refresh token travels
// only in the session cookie, never here.
type LoginOutput struct {
	AccessToken string    `json:"accessToken"`
	User        LoginUser `json:"user"`
}

type LoginUser struct {
	ID       string `json:"id"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
