package middleware

// Gin context keys set by this package.
const (
	UserIDKey    = "user_id"
	RoleKey      = "role"
	CartTokenKey = "cart_token"
	RequestIDKey = "X-Request-ID"
)
