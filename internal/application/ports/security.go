package ports

// TokenVerifier validates a session bearer token and returns the opaque user
// id it carries. Token issuance (login, cookies) lives outside this service.
type TokenVerifier interface {
	VerifyAccessToken(tokenString string) (userID string, err error)
}

// APIKeyGenerator mints the opaque device credential from a cryptographically
// strong random source.
type APIKeyGenerator func() (string, error)
