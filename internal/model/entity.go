// Package model defines domain entities for the application.
package model

import "time"

// Entity represents an organizational unit (company or branch) that
// transfer-pricing documentation is maintained for.
type Entity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Shortname string `json:"shortname,omitempty"`
	Type      string `json:"type"`
	// Country is an ISO 3166-1 alpha-2 code (exactly two uppercase letters).
	Country string `json:"country"`
	// ParentReportingEntity links a branch to its owning company as a
	// snapshot; nil for top-level entities.
	ParentReportingEntity *CondensedEntity `json:"parentReportingEntity,omitempty"`
	Questionnaire         Questionnaire    `json:"questionnaire"`
	CreatedAt             time.Time        `json:"createdAt"`
	UpdatedAt             time.Time        `json:"updatedAt"`
}

// Condensed returns the snapshot shape embedded in transactions and
// parent references.
func (e *Entity) Condensed() CondensedEntity {
	return CondensedEntity{
		EntityID:  e.ID,
		Name:      e.Name,
		Shortname: e.Shortname,
		Type:      e.Type,
		Country:   e.Country,
	}
}
