package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tpdocs/tpdocs/internal/model"
)

// Token errors.
var (
	// ErrInvalidToken indicates the token failed signature or claim checks.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the capability-token claims: identity plus role tags.
// The id claim is optional on tokens minted by older revisions.
type Claims struct {
	EMail string   `json:"eMail"`
	ID    string   `json:"id,omitempty"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS256 capability tokens.
type TokenIssuer struct {
	secret    []byte
	issuer    string
	expiresIn time.Duration
}

// NewTokenIssuer creates a TokenIssuer with the given signing secret,
// issuer name and token lifetime.
func NewTokenIssuer(secret, issuer string, expiresIn time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:    []byte(secret),
		issuer:    issuer,
		expiresIn: expiresIn,
	}
}

// Mint signs a capability token for the given user.
func (t *TokenIssuer) Mint(user *model.User) (string, error) {
	now := time.Now()

	claims := Claims{
		EMail: user.EMail,
		ID:    user.ID,
		Roles: user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a capability token, returning the caller's
// auth context.
func (t *TokenIssuer) Verify(raw string) (*model.AuthContext, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return t.secret, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithExpirationRequired())

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	roles := claims.Roles
	if roles == nil {
		roles = []string{}
	}

	return &model.AuthContext{
		UserID: claims.ID,
		EMail:  claims.EMail,
		Roles:  roles,
	}, nil
}
