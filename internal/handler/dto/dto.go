// Package dto provides Data Transfer Objects for API requests.
// Unknown fields in request bodies are silently dropped during decoding.
// Responses reuse the model types directly: their JSON tags are the wire
// contract.
package dto

import (
	"time"

	"github.com/tpdocs/tpdocs/internal/model"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// CreateUserRequest represents the signup request body.
type CreateUserRequest struct {
	EMail     string   `json:"eMail"`
	Password  string   `json:"password"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Roles     []string `json:"roles,omitempty"`
}

// UpdateUserRequest represents the user update request body.
type UpdateUserRequest struct {
	EMail     string   `json:"eMail,omitempty"`
	Password  string   `json:"password,omitempty"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Roles     []string `json:"roles,omitempty"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	EMail    string `json:"eMail"`
	Password string `json:"password"`
}

// EntityRequest represents the create/update body for an entity.
type EntityRequest struct {
	Name                  string                 `json:"name"`
	Shortname             string                 `json:"shortname,omitempty"`
	Type                  string                 `json:"type"`
	Country               string                 `json:"country"`
	ParentReportingEntity *model.CondensedEntity `json:"parentReportingEntity,omitempty"`
	Questionnaire         model.Questionnaire    `json:"questionnaire"`
}

// TransactionRequest represents the create/update body for a transaction.
type TransactionRequest struct {
	Name             string                  `json:"name"`
	Type             string                  `json:"type"`
	Begin            *time.Time              `json:"begin,omitempty"`
	End              *time.Time              `json:"end,omitempty"`
	PersonsOfContact []model.CondensedUser   `json:"personsOfContact,omitempty"`
	Entities         []model.CondensedEntity `json:"entities,omitempty"`
	Questionnaire    model.Questionnaire     `json:"questionnaire"`
}

// TemplateRequest represents the create/update body for a template.
type TemplateRequest struct {
	For           string              `json:"for"`
	Type          string              `json:"type"`
	Version       string              `json:"version,omitempty"`
	Questionnaire model.Questionnaire `json:"questionnaire"`
}
