package middleware

import (
	"net/http"
	"strings"

	"libris/internal/delivery/http/response"
	"libris/internal/domain/entity"
	"libris/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys under which Authenticate stores the verified identity.
const (
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
)

// headerWWWAuthenticate is sent with every 401 so clients know the expected
// authentication scheme.
const headerWWWAuthenticate = "WWW-Authenticate"

// AuthMiddleware provides middleware for bearer-token authentication and
// role-based authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token on every request it guards.
// Signature and expiry are both checked by the token service; a request with
// a missing, malformed, invalid or expired token never reaches the handler.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return m.unauthorized(c, "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return m.unauthorized(c, "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			return m.unauthorized(c, "Invalid or expired token")
		}

		// Set the verified identity on the context for handlers to use
		c.Set(ContextKeyUsername, claims.Username())
		c.Set(ContextKeyRole, claims.AccountRole())

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the authenticated account's
// role. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextKeyRole).(entity.Role)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: role information missing")
			}

			if !role.Satisfies(requiredRole) {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+string(requiredRole)+"' role")
			}

			return next(c)
		}
	}
}

func (m *AuthMiddleware) unauthorized(c echo.Context, details string) error {
	c.Response().Header().Set(headerWWWAuthenticate, "Bearer")

	return response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "could not validate credentials", details)
}
