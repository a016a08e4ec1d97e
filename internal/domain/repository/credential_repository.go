// Package repository defines the persistence interfaces of the domain layer.
// Concrete implementations live under internal/infra/persistence.
package repository

import (
	"context"

	"libris/internal/domain/entity"
	"libris/internal/errors"
)

// ErrCredentialNotFound is returned when no credential exists for a username.
var ErrCredentialNotFound = errors.New("credential not found")

// ErrDuplicateUsername is returned when a username is already registered.
var ErrDuplicateUsername = errors.New("username already exists")

// CredentialRepository is the credential store: a persistent mapping of
// usernames to password hashes and roles. Two interchangeable
// implementations exist (Postgres for production, in-memory for tests and
// lightweight deployments), selected by configuration.
type CredentialRepository interface {
	// Create persists a new credential. It fails with ErrDuplicateUsername
	// if the username is already taken.
	Create(ctx context.Context, credential *entity.Credential) error

	// FindByUsername retrieves a credential record, or ErrCredentialNotFound.
	FindByUsername(ctx context.Context, username string) (*entity.Credential, error)
}
