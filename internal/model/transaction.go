// Package model defines domain entities for the application.
package model

import "time"

// Transaction represents an intercompany transaction between entities.
// Participants and contact persons are embedded as by-value snapshots, so
// a transaction stays readable even after a source record changes or is
// deleted.
type Transaction struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Type             string            `json:"type"`
	Begin            *time.Time        `json:"begin,omitempty"`
	End              *time.Time        `json:"end,omitempty"`
	PersonsOfContact []CondensedUser   `json:"personsOfContact"`
	Entities         []CondensedEntity `json:"entities"`
	Questionnaire    Questionnaire     `json:"questionnaire"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// Normalize fills the embedded sequences so stored transactions always
// expose them, never absent fields.
func (t *Transaction) Normalize() {
	if t.PersonsOfContact == nil {
		t.PersonsOfContact = []CondensedUser{}
	}
	if t.Entities == nil {
		t.Entities = []CondensedEntity{}
	}
	t.Questionnaire.Normalize()
}
