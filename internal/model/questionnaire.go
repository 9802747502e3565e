// Package model defines domain entities for the application.
package model

// Question input types.
const (
	InputTypeText = "text"
	InputTypeMemo = "memo"
)

// ValidInputTypes contains all accepted question input types.
var ValidInputTypes = []string{InputTypeText, InputTypeMemo}

// Question is a single questionnaire item.
type Question struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	InputType   string `json:"inputType"`
	Placeholder string `json:"placeholder"`
	Value       string `json:"value"`
}

// Group is an ordered collection of questions under a common heading.
type Group struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// Questionnaire is the nested groups-of-questions structure embedded in
// entities, transactions and templates. It is owned by value by its
// containing resource.
type Questionnaire struct {
	Description string  `json:"description,omitempty"`
	Groups      []Group `json:"groups"`
}

// Normalize fills defaults so a stored questionnaire always exposes its
// sequences, never absent fields. A partial payload such as {} becomes
// {groups: []}.
func (q *Questionnaire) Normalize() {
	if q.Groups == nil {
		q.Groups = []Group{}
	}
	for i := range q.Groups {
		if q.Groups[i].Questions == nil {
			q.Groups[i].Questions = []Question{}
		}
	}
}

// IsValidInputType reports whether t is an accepted question input type.
func IsValidInputType(t string) bool {
	for _, v := range ValidInputTypes {
		if t == v {
			return true
		}
	}
	return false
}
