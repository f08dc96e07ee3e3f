package constant

const (
	// RefreshCookieName is the cookie carrying the refresh token. The token
	// never appears in a response body or header.
	RefreshCookieName = "refreshToken"

	// ContextUserKey is the fiber.Ctx locals key the authenticated account is
	// stored under by the auth middleware.
	ContextUserKey = "currentUser"

	// DefaultAvatarURL is assigned to every account at registration.
	DefaultAvatarURL = "https://res.cloudinary.com/blulog/image/upload/v1/defaults/avatar.png"

	// BcryptCost is the work factor for password hashing.
	BcryptCost = 10

	EnvProduction = "production"
)
