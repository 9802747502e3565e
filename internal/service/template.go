package service

import (
	"context"
	"errors"
	"time"

	"github.com/tpdocs/tpdocs/internal/auth"
	"github.com/tpdocs/tpdocs/internal/model"
	"github.com/tpdocs/tpdocs/internal/policy"
	"github.com/tpdocs/tpdocs/internal/repository"
)

// TemplateService handles questionnaire template business logic.
type TemplateService struct {
	repo *repository.Repository
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(repo *repository.Repository) *TemplateService {
	return &TemplateService{repo: repo}
}

// TemplateInput defines input for creating or updating a template.
type TemplateInput struct {
	For           string
	Type          string
	Version       string
	Questionnaire model.Questionnaire
}

func (in *TemplateInput) validate() error {
	if !model.IsValidTemplateFor(in.For) {
		return ErrInvalidTemplateFor
	}
	if in.Type == "" {
		return ErrTypeRequired
	}
	return validateQuestionnaire(&in.Questionnaire)
}

// CreateTemplate creates a new template. Requires the admin role.
func (s *TemplateService) CreateTemplate(ctx context.Context, input TemplateInput) (*model.Template, error) {
	if !policy.Allow(policy.ResourceTemplate, policy.VerbCreate, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tmpl := &model.Template{
		ID:            newID(),
		For:           input.For,
		Type:          input.Type,
		Version:       input.Version,
		Questionnaire: input.Questionnaire,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	tmpl.Questionnaire.Normalize()

	if err := s.repo.CreateTemplate(ctx, tmpl); err != nil {
		return nil, err
	}

	return tmpl, nil
}

// ListTemplates returns templates sorted by ascending type, optionally
// restricted to one target kind via forFilter.
func (s *TemplateService) ListTemplates(ctx context.Context, forFilter string) ([]*model.Template, error) {
	if !policy.Allow(policy.ResourceTemplate, policy.VerbList, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}
	if forFilter != "" && !model.IsValidTemplateFor(forFilter) {
		return nil, ErrInvalidTemplateFor
	}
	return s.repo.ListTemplates(ctx, forFilter)
}

// GetTemplate returns a template by ID.
func (s *TemplateService) GetTemplate(ctx context.Context, id string) (*model.Template, error) {
	if !policy.Allow(policy.ResourceTemplate, policy.VerbGet, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}

	tmpl, err := s.repo.GetTemplateByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tmpl, nil
}

// UpdateTemplate replaces a template record. Requires the admin role.
func (s *TemplateService) UpdateTemplate(ctx context.Context, id string, input TemplateInput) (*model.Template, error) {
	if !policy.Allow(policy.ResourceTemplate, policy.VerbUpdate, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	tmpl, err := s.repo.GetTemplateByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	tmpl.For = input.For
	tmpl.Type = input.Type
	tmpl.Version = input.Version
	tmpl.Questionnaire = input.Questionnaire
	tmpl.Questionnaire.Normalize()
	tmpl.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateTemplate(ctx, tmpl); err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return tmpl, nil
}

// DeleteTemplate removes a template and returns its last state.
// Requires the admin role.
func (s *TemplateService) DeleteTemplate(ctx context.Context, id string) (*model.Template, error) {
	if !policy.Allow(policy.ResourceTemplate, policy.VerbDelete, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}

	tmpl, err := s.repo.DeleteTemplate(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tmpl, nil
}
