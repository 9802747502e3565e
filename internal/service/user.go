package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/tpdocs/tpdocs/internal/auth"
	"github.com/tpdocs/tpdocs/internal/model"
	"github.com/tpdocs/tpdocs/internal/policy"
	"github.com/tpdocs/tpdocs/internal/repository"
)

// eMail validation: local@domain with at least one dot in the domain.
var eMailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserService handles user account business logic.
type UserService struct {
	repo *repository.Repository
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository) *UserService {
	return &UserService{repo: repo}
}

// CreateUserInput defines input for creating a user account.
type CreateUserInput struct {
	EMail     string
	Password  string
	FirstName string
	LastName  string
	Roles     []string
}

// CreateUser registers a new account. Signup is open: no token or role
// is required, and the caller chooses their own role tags.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if !policy.Allow(policy.ResourceUser, policy.VerbCreate, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}

	if !eMailRegex.MatchString(input.EMail) {
		return nil, ErrInvalidEMail
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roles := input.Roles
	if roles == nil {
		roles = []string{}
	}

	user := &model.User{
		ID:        newID(),
		EMail:     input.EMail,
		Password:  hash,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Roles:     roles,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEMailExists) {
			return nil, ErrEMailExists
		}
		return nil, err
	}

	return user, nil
}

// ListUsers returns a page of user records.
func (s *UserService) ListUsers(ctx context.Context, skip, limit int) ([]*model.User, error) {
	if !policy.Allow(policy.ResourceUser, policy.VerbList, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}
	return s.repo.ListUsers(ctx, skip, limit)
}

// GetUser returns a single user record by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if !policy.Allow(policy.ResourceUser, policy.VerbGet, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUserInput defines input for updating a user account. A non-empty
// Password replaces the stored hash; an empty one keeps it.
type UpdateUserInput struct {
	EMail     string
	Password  string
	FirstName string
	LastName  string
	Roles     []string
}

// UpdateUser replaces a user record.
func (s *UserService) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*model.User, error) {
	if !policy.Allow(policy.ResourceUser, policy.VerbUpdate, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.EMail != "" {
		if !eMailRegex.MatchString(input.EMail) {
			return nil, ErrInvalidEMail
		}
		user.EMail = input.EMail
	}
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hash
	}
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	if input.Roles != nil {
		user.Roles = input.Roles
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrEMailExists):
			return nil, ErrEMailExists
		}
		return nil, err
	}

	return user, nil
}

// DeleteUser removes a user record and returns its last state.
func (s *UserService) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	if !policy.Allow(policy.ResourceUser, policy.VerbDelete, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}

	user, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
