// Package auth holds the credential check behind POST /auth/token.
// It knows nothing about HTTP or JWT.
package auth

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is returned for any failed login. Callers must not
// tell apart unknown users from wrong passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Credentials struct {
	Username string
	Password string
}

// AuthProvider authenticates editors and maps them to a role.
type AuthProvider interface {
	ValidateCredentials(ctx context.Context, creds Credentials) error
	// IdentifyUser returns the role of an authenticated user.
	IdentifyUser(ctx context.Context, username string) (string, error)
	Name() string
}

type AuthService struct {
	provider AuthProvider
}

func NewAuthService(provider AuthProvider) *AuthService {
	return &AuthService{provider: provider}
}

// Authenticate validates creds and returns the user's role.
func (s *AuthService) Authenticate(ctx context.Context, creds Credentials) (string, error) {
	if creds.Username == "" || creds.Password == "" {
		return "", ErrInvalidCredentials
	}
	if err := s.provider.ValidateCredentials(ctx, creds); err != nil {
		return "", errors.Join(ErrInvalidCredentials, err)
	}
	role, err := s.provider.IdentifyUser(ctx, creds.Username)
	if err != nil {
		return "", errors.Join(ErrInvalidCredentials, err)
	}
	return role, nil
}

func (s *AuthService) ProviderName() string {
	return s.provider.Name()
}
