// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"libris/config"
	"libris/internal/domain/entity"
	"libris/internal/domain/service"
)

// insecureDevSecret is the documented fallback used when no signing secret is
// configured outside production. It exists so local setups work out of the
// box; startup logs a loud warning whenever it is in effect.
const insecureDevSecret = "libris-insecure-dev-secret"

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Tokens are signed HS256 with a single process-wide secret, read-only after startup.
type jwtService struct {
	secret    string
	accessTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config, logger *slog.Logger) (service.TokenService, error) {
	secret := cfg.SecretKey.Signing
	if secret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("jwt signing secret must be provided in production")
		}

		logger.Warn("SECRETKEY_SIGNING is not set, falling back to the built-in insecure development secret",
			slog.String("env", cfg.Env.Env))
		secret = insecureDevSecret
	}

	return &jwtService{
		secret:    secret,
		accessTTL: cfg.AccessTokenTTL(),
	}, nil
}

// Issue creates a signed token embedding the subject, its role, and an
// absolute expiry of now + ttl, exactly as given. A non-positive ttl
// therefore yields a token that is already expired; callers wanting the
// configured default pass AccessTokenTTL().
func (s *jwtService) Issue(subject string, role entity.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := service.Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify parses and validates a token string. Structure, signature and
// expiry are all checked in this one place; a token that decodes but is at
// or past its expiry is rejected the same way as a forged one.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify token")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	return claims, nil
}

// AccessTokenTTL returns the default lifetime applied by Issue.
func (s *jwtService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}
