package ports

import (
	"context"

	"github.com/google/uuid"
)

// AuthClaims is the verified identity attached to a request. Tokens are
// minted by the platform auth service; this service only verifies them.
type AuthClaims struct {
	UserID uuid.UUID
	Role   string
}

// TokenVerifier validates a bearer token and extracts its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (AuthClaims, error)
}
