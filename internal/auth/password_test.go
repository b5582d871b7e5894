package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShotaYmzk/onme-backend/internal/models"
)

// memoryUsers is an in-memory UserStorage for tests.
type memoryUsers struct {
	byEmail map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: make(map[string]*models.User)}
}

func (m *memoryUsers) CreateUser(ctx context.Context, user *models.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return fmt.Errorf("email already exists: %s", user.Email)
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("user not found: %s", email)
	}
	return user, nil
}

func (m *memoryUsers) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	for _, user := range m.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user not found: %s", id)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	a := NewPasswordAuthenticator(newMemoryUsers())
	ctx := context.Background()

	user, err := a.Register(ctx, "shota@example.com", "Shota", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	got, err := a.Authenticate(ctx, "shota@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestRegisterWeakPassword(t *testing.T) {
	a := NewPasswordAuthenticator(newMemoryUsers())

	_, err := a.Register(context.Background(), "shota@example.com", "Shota", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	a := NewPasswordAuthenticator(newMemoryUsers())
	ctx := context.Background()

	_, err := a.Register(ctx, "shota@example.com", "Shota", "correct-horse")
	require.NoError(t, err)

	_, err = a.Register(ctx, "shota@example.com", "Other", "correct-horse")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	a := NewPasswordAuthenticator(newMemoryUsers())
	ctx := context.Background()

	_, err := a.Register(ctx, "shota@example.com", "Shota", "correct-horse")
	require.NoError(t, err)

	_, err = a.Authenticate(ctx, "shota@example.com", "wrong-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate(ctx, "nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
