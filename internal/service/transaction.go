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

// TransactionService handles intercompany transaction business logic.
type TransactionService struct {
	repo *repository.Repository
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(repo *repository.Repository) *TransactionService {
	return &TransactionService{repo: repo}
}

// TransactionInput defines input for creating or updating a transaction.
// Participants and contact persons arrive as caller-provided snapshots
// and are stored as given.
type TransactionInput struct {
	Name             string
	Type             string
	Begin            *time.Time
	End              *time.Time
	PersonsOfContact []model.CondensedUser
	Entities         []model.CondensedEntity
	Questionnaire    model.Questionnaire
}

func (in *TransactionInput) validate() error {
	if in.Name == "" {
		return ErrNameRequired
	}
	if in.Type == "" {
		return ErrTypeRequired
	}
	return validateQuestionnaire(&in.Questionnaire)
}

// CreateTransaction creates a new transaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, input TransactionInput) (*model.Transaction, error) {
	if !policy.Allow(policy.ResourceTransaction, policy.VerbCreate, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tx := &model.Transaction{
		ID:               newID(),
		Name:             input.Name,
		Type:             input.Type,
		Begin:            input.Begin,
		End:              input.End,
		PersonsOfContact: input.PersonsOfContact,
		Entities:         input.Entities,
		Questionnaire:    input.Questionnaire,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	tx.Normalize()

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// ListTransactions returns the condensed transaction projection for a
// page. Requires the tp role; the other transaction verbs do not.
func (s *TransactionService) ListTransactions(ctx context.Context, filter repository.TransactionFilter, skip, limit int) ([]*repository.TransactionListItem, error) {
	if !policy.Allow(policy.ResourceTransaction, policy.VerbList, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}
	return s.repo.ListTransactions(ctx, filter, skip, limit)
}

// GetTransaction returns a full transaction record by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	if !policy.Allow(policy.ResourceTransaction, policy.VerbGet, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}

	tx, err := s.repo.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tx, nil
}

// UpdateTransaction replaces a transaction record.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, input TransactionInput) (*model.Transaction, error) {
	if !policy.Allow(policy.ResourceTransaction, policy.VerbUpdate, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	tx, err := s.repo.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	tx.Name = input.Name
	tx.Type = input.Type
	tx.Begin = input.Begin
	tx.End = input.End
	tx.PersonsOfContact = input.PersonsOfContact
	tx.Entities = input.Entities
	tx.Questionnaire = input.Questionnaire
	tx.Normalize()
	tx.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return tx, nil
}

// DeleteTransaction removes a transaction and returns its last state.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	if !policy.Allow(policy.ResourceTransaction, policy.VerbDelete, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}

	tx, err := s.repo.DeleteTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tx, nil
}
