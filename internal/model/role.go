package model

import "strings"

// Role is the closed set of account roles. Every policy decision in the
// API goes through this type (or the RequireRole middleware built on it);
// there is no free-form role string anywhere else in the codebase.
type Role string

const (
	// RoleOwner marks users who manage restaurants and their menus.
	RoleOwner Role = "OWNER"
	// RoleCustomer marks users who browse menus and keep dietary restrictions.
	RoleCustomer Role = "CUSTOMER"
)

// ParseRole normalizes s and maps it onto the closed role set. The second
// return value reports whether s named a known role.
func ParseRole(s string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RoleOwner):
		return RoleOwner, true
	case string(RoleCustomer):
		return RoleCustomer, true
	}
	return "", false
}

// String returns the canonical uppercase form stored in the database and
// embedded in JWT claims.
func (r Role) String() string { return string(r) }
