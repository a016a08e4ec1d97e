// Package memory provides an in-memory credential store, interchangeable
// with the Postgres implementation. It backs tests and single-process
// deployments that don't need durable credentials.
package memory

import (
	"context"
	"sync"
	"time"

	"libris/internal/domain/entity"
	"libris/internal/domain/repository"
)

// credentialRepository keeps credentials in a mutex-guarded map. Unlike the
// relational store it is race-free on concurrent signups of the same name,
// which is stricter than the contract requires.
type credentialRepository struct {
	mu          sync.RWMutex
	credentials map[string]entity.Credential
}

// NewCredentialRepository is the constructor for the in-memory credential store.
func NewCredentialRepository() repository.CredentialRepository {
	return &credentialRepository{
		credentials: make(map[string]entity.Credential),
	}
}

// Create stores a new credential, failing on duplicate usernames.
func (repo *credentialRepository) Create(_ context.Context, credential *entity.Credential) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.credentials[credential.Username]; exists {
		return repository.ErrDuplicateUsername
	}

	credential.CreatedAt = time.Now()
	repo.credentials[credential.Username] = *credential

	return nil
}

// FindByUsername retrieves a stored credential or ErrCredentialNotFound.
func (repo *credentialRepository) FindByUsername(_ context.Context, username string) (*entity.Credential, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	credential, exists := repo.credentials[username]
	if !exists {
		return nil, repository.ErrCredentialNotFound
	}

	return &credential, nil
}
