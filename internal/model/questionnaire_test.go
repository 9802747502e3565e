package model

import (
	"encoding/json"
	"testing"
)

func TestQuestionnaireNormalizeFillsSequences(t *testing.T) {
	var q Questionnaire
	if err := json.Unmarshal([]byte(`{}`), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	q.Normalize()

	if q.Groups == nil {
		t.Fatal("groups should be an empty slice after Normalize")
	}

	out, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"groups":[]}` {
		t.Errorf("unexpected JSON shape: %s", out)
	}
}

func TestQuestionnaireNormalizeFillsNestedQuestions(t *testing.T) {
	q := Questionnaire{
		Groups: []Group{{Title: "General"}},
	}

	q.Normalize()

	if q.Groups[0].Questions == nil {
		t.Fatal("questions should be an empty slice after Normalize")
	}
}

func TestIsValidInputType(t *testing.T) {
	tests := []struct {
		inputType string
		want      bool
	}{
		{InputTypeText, true},
		{InputTypeMemo, true},
		{"dropdown", false},
		{"", false},
		{"Text", false},
	}

	for _, test := range tests {
		if got := IsValidInputType(test.inputType); got != test.want {
			t.Errorf("IsValidInputType(%q) = %v, want %v", test.inputType, got, test.want)
		}
	}
}
