//go:build integration

package repository

import (
	"errors"
	"testing"

	"github.com/tpdocs/tpdocs/internal/model"
	"github.com/tpdocs/tpdocs/internal/testutil"
)

func TestIntegrationTemplateRepository_ListSortedAndFiltered(t *testing.T) {
	ctx, repo := newTestEnv(t, "000004_templates")

	templates := []*model.Template{
		testutil.NewTestTemplate(t, model.TemplateForEntity, "zeta"),
		testutil.NewTestTemplate(t, model.TemplateForEntity, "alpha"),
		testutil.NewTestTemplate(t, model.TemplateForTransaction, "mid"),
	}
	for _, tmpl := range templates {
		if err := repo.CreateTemplate(ctx, tmpl); err != nil {
			t.Fatalf("CreateTemplate failed: %v", err)
		}
	}

	all, err := repo.ListTemplates(ctx, "")
	if err != nil {
		t.Fatalf("ListTemplates failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(all))
	}
	// Ascending type sort, regardless of target.
	if all[0].Type != "alpha" || all[1].Type != "mid" || all[2].Type != "zeta" {
		t.Errorf("wrong sort order: %s, %s, %s", all[0].Type, all[1].Type, all[2].Type)
	}

	entityOnly, err := repo.ListTemplates(ctx, model.TemplateForEntity)
	if err != nil {
		t.Fatalf("ListTemplates(entity) failed: %v", err)
	}
	if len(entityOnly) != 2 {
		t.Fatalf("expected 2 entity templates, got %d", len(entityOnly))
	}
	for _, tmpl := range entityOnly {
		if tmpl.For != model.TemplateForEntity {
			t.Errorf("unexpected target %q in filtered listing", tmpl.For)
		}
	}
}

func TestIntegrationTemplateRepository_RoundtripAndDelete(t *testing.T) {
	ctx, repo := newTestEnv(t, "000004_templates")

	tmpl := testutil.NewTestTemplate(t, model.TemplateForTransaction, "general")
	tmpl.Version = "2024-01"
	tmpl.Questionnaire = model.Questionnaire{
		Groups: []model.Group{{
			Title: "Pricing",
			Questions: []model.Question{{
				Title:       "Method",
				InputType:   model.InputTypeText,
				Placeholder: "e.g. CUP",
			}},
		}},
	}

	if err := repo.CreateTemplate(ctx, tmpl); err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}

	retrieved, err := repo.GetTemplateByID(ctx, tmpl.ID)
	if err != nil {
		t.Fatalf("GetTemplateByID failed: %v", err)
	}
	if retrieved.Version != "2024-01" || retrieved.For != model.TemplateForTransaction {
		t.Errorf("roundtrip mismatch: %+v", retrieved)
	}
	if len(retrieved.Questionnaire.Groups) != 1 {
		t.Errorf("questionnaire lost shape: %+v", retrieved.Questionnaire)
	}

	deleted, err := repo.DeleteTemplate(ctx, tmpl.ID)
	if err != nil {
		t.Fatalf("DeleteTemplate failed: %v", err)
	}
	if deleted.ID != tmpl.ID {
		t.Errorf("deleted record mismatch: %+v", deleted)
	}

	if _, err := repo.GetTemplateByID(ctx, tmpl.ID); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("Expected ErrTemplateNotFound after delete, got: %v", err)
	}
}
