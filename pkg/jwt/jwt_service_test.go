package jwt

import (
	"Product-Scanner/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndReadToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateTokenUser("4d7c1b7e-0000-4000-8000-000000000001", domain.RoleUser)
	require.NoError(t, err)

	userID, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "4d7c1b7e-0000-4000-8000-000000000001", userID)
	assert.Equal(t, domain.RoleUser, role)
}

func TestTokenFromOtherSecretIsRejected(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateTokenUser("u1", domain.RoleUser)
	require.NoError(t, err)

	_, _, err = NewJWTService("secret-b").GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGarbageToken(t *testing.T) {
	_, _, err := NewJWTService("s").GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
