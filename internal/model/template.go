// Package model defines domain entities for the application.
package model

import "time"

// Template targets: which resource kind a questionnaire template seeds.
const (
	TemplateForEntity      = "entity"
	TemplateForTransaction = "transaction"
)

// Template is a reusable questionnaire blueprint.
type Template struct {
	ID string `json:"id"`
	// For is the discriminator: "entity" or "transaction".
	For           string        `json:"for"`
	Type          string        `json:"type"`
	Version       string        `json:"version,omitempty"`
	Questionnaire Questionnaire `json:"questionnaire"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// IsValidTemplateFor reports whether v is an accepted template target.
func IsValidTemplateFor(v string) bool {
	return v == TemplateForEntity || v == TemplateForTransaction
}
