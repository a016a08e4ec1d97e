// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role an account can have in the system.
type Role string

const (
	// RoleAdmin grants access to catalog maintenance endpoints.
	RoleAdmin Role = "admin"
	// RoleUser indicates a regular account.
	RoleUser Role = "user"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// Satisfies reports whether this role meets a required role.
// Authorization is a plain equality check against a tagged set, so adding
// roles does not touch call sites.
func (r Role) Satisfies(required Role) bool {
	return r == required
}

// RoleFromString converts a string claim back to a Role, returning RoleUser
// for unrecognized values so a forged role string never widens access.
func RoleFromString(s string) Role {
	role := Role(s)
	if !role.IsValid() {
		return RoleUser
	}

	return role
}
