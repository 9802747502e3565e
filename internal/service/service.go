package service

import (
	"github.com/oklog/ulid/v2"

	"github.com/tpdocs/tpdocs/internal/model"
)

// newID generates a time-sortable unique record ID.
func newID() string {
	return ulid.Make().String()
}

// validateQuestionnaire rejects questions whose input type is missing or
// unknown. Everything else in the nested structure is free-form.
func validateQuestionnaire(q *model.Questionnaire) error {
	for _, g := range q.Groups {
		for _, question := range g.Questions {
			if !model.IsValidInputType(question.InputType) {
				return ErrInvalidInputType
			}
		}
	}
	return nil
}
