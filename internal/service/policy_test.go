package service

import (
	"context"
	"errors"
	"testing"

	"github.com/tpdocs/tpdocs/internal/model"
	"github.com/tpdocs/tpdocs/internal/repository"
)

// The role checks run before any validation or database access, so a
// zero-value service is enough to exercise denials.

func TestEntityMutationsRequireTPRole(t *testing.T) {
	svc := &EntityService{}
	input := EntityInput{Name: "Acme GmbH", Type: "company", Country: "DE"}

	contexts := map[string]context.Context{
		"no_roles":        ctxWithRoles(),
		"admin_only":      ctxWithRoles("admin"),
		"case_mismatch":   ctxWithRoles("TP"),
		"unrelated_roles": ctxWithRoles("auditor", "viewer"),
	}

	for name, ctx := range contexts {
		t.Run("create_"+name, func(t *testing.T) {
			if _, err := svc.CreateEntity(ctx, input); !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected %v, got %v", ErrForbidden, err)
			}
		})
		t.Run("update_"+name, func(t *testing.T) {
			if _, err := svc.UpdateEntity(ctx, "01HID", input); !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected %v, got %v", ErrForbidden, err)
			}
		})
		t.Run("delete_"+name, func(t *testing.T) {
			if _, err := svc.DeleteEntity(ctx, "01HID"); !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected %v, got %v", ErrForbidden, err)
			}
		})
	}
}

func TestTransactionListRequiresTPRole(t *testing.T) {
	svc := &TransactionService{}

	_, err := svc.ListTransactions(ctxWithRoles("admin"), repository.TransactionFilter{}, 0, 20)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected %v, got %v", ErrForbidden, err)
	}
}

func TestTemplateMutationsRequireAdminRole(t *testing.T) {
	svc := &TemplateService{}
	input := TemplateInput{For: model.TemplateForEntity, Type: "general"}

	for name, ctx := range map[string]context.Context{
		"no_roles": ctxWithRoles(),
		"tp_only":  ctxWithRoles("tp"),
	} {
		t.Run("create_"+name, func(t *testing.T) {
			if _, err := svc.CreateTemplate(ctx, input); !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected %v, got %v", ErrForbidden, err)
			}
		})
		t.Run("update_"+name, func(t *testing.T) {
			if _, err := svc.UpdateTemplate(ctx, "01HID", input); !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected %v, got %v", ErrForbidden, err)
			}
		})
		t.Run("delete_"+name, func(t *testing.T) {
			if _, err := svc.DeleteTemplate(ctx, "01HID"); !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected %v, got %v", ErrForbidden, err)
			}
		})
	}
}

func TestUploadDeleteRequiresTPRole(t *testing.T) {
	svc := &UploadService{}

	if _, err := svc.DeleteUpload(ctxWithRoles("admin"), "01HID"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected %v, got %v", ErrForbidden, err)
	}
}
