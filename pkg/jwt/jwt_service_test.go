package jwt

import (
	"foodgram/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateUserToken(t *testing.T) {
	service := NewJWTService()

	token := service.GenerateTokenUser("some-user-id", domain.RoleUser)
	require.NotEmpty(t, token)

	id, role, err := service.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "some-user-id", id)
	assert.Equal(t, domain.RoleUser, role)
}

func TestValidateGarbageToken(t *testing.T) {
	service := NewJWTService()

	_, _, err := service.GetUserIDByToken("not.a.token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestResetPasswordTokenRoundTrip(t *testing.T) {
	service := NewJWTService()

	token, err := service.GenerateTokenResetPassword(
		map[string]any{"user_id": "some-user-id"},
		30*time.Minute,
	)
	require.NoError(t, err)

	claims, err := service.ValidateTokenResetPassword(token)
	require.NoError(t, err)
	assert.Equal(t, "some-user-id", claims["user_id"])
}

func TestResetPasswordTokenMalformed(t *testing.T) {
	service := NewJWTService()

	_, err := service.ValidateTokenResetPassword("not.a.token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestResetPasswordTokenExpired(t *testing.T) {
	service := NewJWTService()

	token, err := service.GenerateTokenResetPassword(
		map[string]any{"user_id": "some-user-id"},
		-time.Minute,
	)
	require.NoError(t, err)

	_, err = service.ValidateTokenResetPassword(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
