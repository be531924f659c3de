package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"

	authservice "helpcenter/internal/service/auth"
)

// BasicAuthProvider checks credentials against ADMIN_USER and ADMIN_USER_PASSWORD.
type BasicAuthProvider struct{}

func NewBasicAuthProvider() *BasicAuthProvider {
	return &BasicAuthProvider{}
}

var _ authservice.AuthProvider = (*BasicAuthProvider)(nil)

// ValidateCredentials compares in constant time.
func (p *BasicAuthProvider) ValidateCredentials(_ context.Context, creds authservice.Credentials) error {
	adminUser := os.Getenv("ADMIN_USER")
	adminPass := os.Getenv("ADMIN_USER_PASSWORD")
	if adminUser == "" || adminPass == "" {
		return fmt.Errorf("admin credentials are not configured")
	}

	userMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(adminUser)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(adminPass)) == 1
	if !userMatch || !passMatch {
		return fmt.Errorf("invalid credentials")
	}
	return nil
}

// IdentifyUser returns RoleAdmin for ADMIN_USER and an error for anyone else.
func (p *BasicAuthProvider) IdentifyUser(_ context.Context, email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("email must not be empty")
	}
	if subtle.ConstantTimeCompare([]byte(email), []byte(os.Getenv("ADMIN_USER"))) == 1 {
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("user not found")
}

func (p *BasicAuthProvider) Name() string {
	return "basic"
}
