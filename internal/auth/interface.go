package auth

import "askweb/internal/domain/models"

// TokenVerifier validates bearer tokens presented to the HTTP API.
type TokenVerifier interface {
	// VerifyToken validates a JWT and returns its claims.
	// Returns domain.ErrUnauthorized if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*models.AccessClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}
