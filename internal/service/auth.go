package service

import (
	"context"
	"errors"

	"github.com/tpdocs/tpdocs/internal/auth"
	"github.com/tpdocs/tpdocs/internal/model"
	"github.com/tpdocs/tpdocs/internal/repository"
)

// AuthService handles credential checks and token minting.
type AuthService struct {
	repo   *repository.Repository
	tokens *auth.TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.Repository, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// LoginResult is the successful login payload.
type LoginResult struct {
	Token string `json:"token"`
	EMail string `json:"eMail"`
}

// Login verifies the credentials and mints a capability token. Unknown
// accounts and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, eMail, password string) (*LoginResult, error) {
	user, err := s.repo.GetUserByEMail(ctx, eMail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := auth.VerifyPassword(password, user.Password)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Mint(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, EMail: user.EMail}, nil
}

// VerifyToken validates a capability token and returns the caller's
// auth context. Used by the authentication middleware.
func (s *AuthService) VerifyToken(raw string) (*model.AuthContext, error) {
	return s.tokens.Verify(raw)
}
