// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import "context"

// --- Input DTOs ---

// SignupInput defines the data required to create a new account.
type SignupInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// SignupOutput returns the newly created account's public information.
type SignupOutput struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginOutput returns the issued bearer token.
type LoginOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Signup hashes the password and stores a credential with the configured
	// default role. Duplicate usernames fail; there is no update path.
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)

	// Login verifies the credential and issues a bearer token embedding the
	// stored role. Unknown users and wrong passwords fail identically.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
