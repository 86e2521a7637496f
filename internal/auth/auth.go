package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordAuthorizer checks the administrator password against a bcrypt
// hash. It satisfies engine.Authorizer.
type PasswordAuthorizer struct {
	hash []byte
}

// NewPasswordAuthorizer creates an authorizer for the given bcrypt hash.
// An empty hash is rejected; callers disable admin mode by not configuring
// an authorizer at all.
func NewPasswordAuthorizer(hash string) (*PasswordAuthorizer, error) {
	if hash == "" {
		return nil, errors.New("admin password hash cannot be empty")
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}
	return &PasswordAuthorizer{hash: []byte(hash)}, nil
}

// Authorize reports whether password matches the configured hash.
func (a *PasswordAuthorizer) Authorize(password string) bool {
	return bcrypt.CompareHashAndPassword(a.hash, []byte(password)) == nil
}

// HashPassword hashes password with the default bcrypt cost, for producing
// ADMIN_PASSWORD_HASH values.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
