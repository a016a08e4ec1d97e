package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"libris/internal/domain/entity"
)

// Claims is the structured payload embedded in a bearer token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Username returns the token's subject.
func (c *Claims) Username() string {
	return c.Subject
}

// AccountRole returns the embedded role as a domain Role.
func (c *Claims) AccountRole() entity.Role {
	return entity.RoleFromString(c.Role)
}

// TokenService signs and verifies the self-contained bearer tokens that gate
// every catalog operation. Tokens are stateless: validity is determined
// solely by signature and expiry at verification time.
type TokenService interface {
	// Issue creates a signed token for a subject with an absolute expiry of
	// exactly now + ttl. The ttl is never adjusted: a non-positive value
	// produces an already-expired token that Verify rejects. Callers wanting
	// the configured default pass AccessTokenTTL().
	Issue(subject string, role entity.Role, ttl time.Duration) (string, error)

	// Verify parses and validates a token. Signature, structure and expiry
	// are all checked here; callers never re-implement expiry checks.
	Verify(token string) (*Claims, error)

	// AccessTokenTTL returns the default lifetime applied by Issue.
	AccessTokenTTL() time.Duration
}
