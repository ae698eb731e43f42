package domain

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned on login failure. It never
	// distinguishes an unknown identity from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated is returned when a presented token is missing,
	// malformed, forged or expired.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Admin is the single privileged identity permitted to mutate shipments.
// It is constructed once at process start from configuration and is
// immutable afterwards.
type Admin struct {
	// Email is the unique admin identifier.
	Email string
	// PasswordHash is the bcrypt hash of the admin secret.
	PasswordHash []byte
}

// NewAdmin builds the admin identity, hashing the plaintext secret with bcrypt.
func NewAdmin(email, password string) (*Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Admin{
		Email:        email,
		PasswordHash: hash,
	}, nil
}

// VerifyPassword compares a plaintext secret against the stored bcrypt hash.
func (a *Admin) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)) == nil
}
