package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Users own groups; members inside a group
// are plain roster entries and need not correspond to accounts.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the login identifier (unique).
	Email string

	// Name is the display name.
	Name string

	// PasswordHash is the bcrypt hash of the password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// NewUser creates a user with a fresh ID and timestamp.
func NewUser(email, name, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
