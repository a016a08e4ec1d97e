// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Credential represents one account's login material: a unique username, the
// bcrypt hash of its password, and the role embedded in issued tokens.
// The plaintext password never appears on this type.
type Credential struct {
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
