package jwttoken

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "bankpanel/pkg/domain-errors"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-signing-key", "bankpanel")
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "alice", "Admin", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, "bankpanel", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken_Errors(t *testing.T) {
	svc := NewJWTService("test-signing-key", "bankpanel")

	t.Run("expired token", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(uuid.New(), "alice", "User", -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewJWTService("another-key", "bankpanel")
		token, err := other.GenerateAccessToken(uuid.New(), "alice", "User", time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
	})

	t.Run("fresh tokens carry distinct ids", func(t *testing.T) {
		a, err := svc.GenerateAccessToken(uuid.New(), "alice", "User", time.Hour)
		require.NoError(t, err)
		b, err := svc.GenerateAccessToken(uuid.New(), "alice", "User", time.Hour)
		require.NoError(t, err)

		ca, err := svc.ValidateToken(a)
		require.NoError(t, err)
		cb, err := svc.ValidateToken(b)
		require.NoError(t, err)
		assert.NotEqual(t, ca.ID, cb.ID)
	})
}
