package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/tpdocs/tpdocs/internal/auth"
	"github.com/tpdocs/tpdocs/internal/model"
	"github.com/tpdocs/tpdocs/internal/policy"
	"github.com/tpdocs/tpdocs/internal/repository"
)

// Country codes are ISO 3166-1 alpha-2, uppercase only.
var countryRegex = regexp.MustCompile(`^[A-Z]{2}$`)

// EntityService handles entity business logic.
type EntityService struct {
	repo *repository.Repository
}

// NewEntityService creates a new EntityService.
func NewEntityService(repo *repository.Repository) *EntityService {
	return &EntityService{repo: repo}
}

// EntityInput defines input for creating or updating an entity. The
// parent reporting entity is a caller-provided snapshot, not a foreign
// key: it is stored as given and never re-resolved.
type EntityInput struct {
	Name                  string
	Shortname             string
	Type                  string
	Country               string
	ParentReportingEntity *model.CondensedEntity
	Questionnaire         model.Questionnaire
}

func (in *EntityInput) validate() error {
	if in.Name == "" {
		return ErrNameRequired
	}
	if in.Type == "" {
		return ErrTypeRequired
	}
	if !countryRegex.MatchString(in.Country) {
		return ErrInvalidCountry
	}
	return validateQuestionnaire(&in.Questionnaire)
}

// CreateEntity creates a new entity. Requires the tp role.
func (s *EntityService) CreateEntity(ctx context.Context, input EntityInput) (*model.Entity, error) {
	if !policy.Allow(policy.ResourceEntity, policy.VerbCreate, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entity := &model.Entity{
		ID:                    newID(),
		Name:                  input.Name,
		Shortname:             input.Shortname,
		Type:                  input.Type,
		Country:               input.Country,
		ParentReportingEntity: input.ParentReportingEntity,
		Questionnaire:         input.Questionnaire,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	entity.Questionnaire.Normalize()

	if err := s.repo.CreateEntity(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

// ListEntities returns the condensed entity projection for a page.
func (s *EntityService) ListEntities(ctx context.Context, skip, limit int) ([]*repository.EntityListItem, error) {
	if !policy.Allow(policy.ResourceEntity, policy.VerbList, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}
	return s.repo.ListEntities(ctx, skip, limit)
}

// GetEntity returns a full entity record by ID.
func (s *EntityService) GetEntity(ctx context.Context, id string) (*model.Entity, error) {
	if !policy.Allow(policy.ResourceEntity, policy.VerbGet, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}

	entity, err := s.repo.GetEntityByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEntityNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entity, nil
}

// UpdateEntity replaces an entity record. Requires the tp role.
func (s *EntityService) UpdateEntity(ctx context.Context, id string, input EntityInput) (*model.Entity, error) {
	if !policy.Allow(policy.ResourceEntity, policy.VerbUpdate, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	entity, err := s.repo.GetEntityByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEntityNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	entity.Name = input.Name
	entity.Shortname = input.Shortname
	entity.Type = input.Type
	entity.Country = input.Country
	entity.ParentReportingEntity = input.ParentReportingEntity
	entity.Questionnaire = input.Questionnaire
	entity.Questionnaire.Normalize()
	entity.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateEntity(ctx, entity); err != nil {
		if errors.Is(err, repository.ErrEntityNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return entity, nil
}

// DeleteEntity removes an entity and returns its last state. Requires
// the tp role. Transactions keep their embedded snapshot of it.
func (s *EntityService) DeleteEntity(ctx context.Context, id string) (*model.Entity, error) {
	if !policy.Allow(policy.ResourceEntity, policy.VerbDelete, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}

	entity, err := s.repo.DeleteEntity(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEntityNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entity, nil
}
