// Package auth implements the authentication gate for the user service:
// JWT issuance and validation, bcrypt credential verification, the
// request interception middleware that attaches a caller identity to the
// request context, and the route authorization rules evaluated after it.
//
// The gate is stateless. Every request re-establishes the caller's
// identity from the Authorization header alone; no session state is kept
// between requests. A request without a usable token proceeds as
// anonymous and is rejected only when it reaches a protected route.
package auth

import (
	"context"
	"sort"
)

// Role is the coarse access level assigned to a user at registration.
type Role string

const (
	// RoleAdmin grants the administrative permission set.
	RoleAdmin Role = "ADMIN"

	// RoleMember grants the management permission set.
	RoleMember Role = "MEMBER"
)

// Valid reports whether the role is one of the recognized values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

// Fine-grained permission labels. Each role expands to a fixed set of
// these; they appear alongside the ROLE_ marker in a principal's
// authority list and in issued tokens.
const (
	PermissionAdminRead        = "admin:read"
	PermissionAdminCreate      = "admin:create"
	PermissionManagementRead   = "management:read"
	PermissionManagementCreate = "management:create"
)

// RolePermissions maps each role to its permission set. ADMIN is a
// superset of MEMBER.
var RolePermissions = map[Role][]string{
	RoleAdmin: {
		PermissionAdminRead,
		PermissionAdminCreate,
		PermissionManagementRead,
		PermissionManagementCreate,
	},
	RoleMember: {
		PermissionManagementRead,
		PermissionManagementCreate,
	},
}

// RolePrefix marks a role-derived authority, distinguishing it from
// permission labels in the flattened authority list.
const RolePrefix = "ROLE_"

// Principal is a registered user as seen by the authentication gate.
// Email doubles as the unique login identifier and the token subject.
type Principal struct {
	// ID is the durable unique identifier of the user record.
	ID string

	// Email is the unique login identifier and token subject.
	Email string

	// FirstName is the user's given name.
	FirstName string

	// LastName is the user's family name.
	LastName string

	// PasswordHash is the bcrypt hash of the user's password. Never the
	// cleartext.
	PasswordHash string

	// Role is the user's access level.
	Role Role
}

// Permissions returns the permission labels granted by the principal's
// role, sorted. Unknown roles yield an empty set.
func (p *Principal) Permissions() []string {
	perms := RolePermissions[p.Role]
	out := make([]string, len(perms))
	copy(out, perms)
	sort.Strings(out)
	return out
}

// Authorities returns the principal's full authority list: each
// permission label plus the ROLE_ marker for the role itself. This is
// the set embedded in issued tokens and consulted by route rules.
func (p *Principal) Authorities() []string {
	out := p.Permissions()
	out = append(out, RolePrefix+string(p.Role))
	return out
}

// HasAuthority reports whether the authority list contains the given
// label.
func (p *Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities() {
		if a == authority {
			return true
		}
	}
	return false
}

// HasRole reports whether the principal holds the given role.
func (p *Principal) HasRole(role Role) bool {
	return p.Role == role
}

// PrincipalResolver looks up a principal by email. Implementations
// return an error carrying errors.CodeNotFoundUser when no user exists
// for the address.
type PrincipalResolver interface {
	ByEmail(ctx context.Context, email string) (*Principal, error)
}
