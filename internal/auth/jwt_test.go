package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShotaYmzk/onme-backend/internal/models"
)

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate(&models.User{ID: "user-1", Email: "shota@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "shota@example.com", claims.Email)
}

func TestJWTExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate(&models.User{ID: "user-1", Email: "shota@example.com"})
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour).Generate(&models.User{ID: "user-1"})
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTGarbageToken(t *testing.T) {
	_, err := NewJWTManager("test-secret", time.Hour).Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
