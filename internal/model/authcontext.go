// Package model defines domain entities for the application.
package model

import "slices"

// AuthContext carries the identity and role claims of an authenticated
// caller through the request context.
type AuthContext struct {
	UserID string
	EMail  string
	Roles  []string
}

// HasRole reports whether the caller carries the given role tag.
func (a *AuthContext) HasRole(role string) bool {
	return slices.Contains(a.Roles, role)
}
