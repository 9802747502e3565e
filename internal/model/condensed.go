// Package model defines domain entities for the application.
package model

// CondensedEntity is a denormalized snapshot of an entity, embedded by
// value where a full join would otherwise be needed (transaction
// participants, parent reporting entity). It is taken at attach time and
// does not update when the source entity changes.
type CondensedEntity struct {
	EntityID  string `json:"entityId"`
	Name      string `json:"name"`
	Shortname string `json:"shortname,omitempty"`
	Type      string `json:"type"`
	Country   string `json:"country"`
}

// CondensedUser is a denormalized snapshot of a user, embedded by value
// in transactions (persons of contact). Same snapshot contract as
// CondensedEntity.
type CondensedUser struct {
	UserID    string `json:"userId"`
	EMail     string `json:"eMail"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}
