// Package model defines domain entities for the application.
package model

import (
	"slices"
	"time"
)

// Role tags recognized by the access policy. Other tags are preserved on
// the user record but carry no permissions.
const (
	RoleAdmin = "admin"
	RoleTP    = "tp"
)

// User represents an account able to authenticate against the API.
// Password holds the argon2id hash, never the clear text.
type User struct {
	ID        string    `json:"id"`
	EMail     string    `json:"eMail"`
	Password  string    `json:"password"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasRole reports whether the user carries the given role tag.
// Exact, case-sensitive string match; no hierarchy.
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// Condensed returns the snapshot shape embedded in transactions.
func (u *User) Condensed() CondensedUser {
	return CondensedUser{
		UserID:    u.ID,
		EMail:     u.EMail,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
