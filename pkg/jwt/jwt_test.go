package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewManager("test-secret", 15, 168)

	t.Run("access token carries the principal", func(t *testing.T) {
		token, err := manager.GenerateAccessToken(42, "reader@example.com")
		require.NoError(t, err)

		claims, err := manager.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.UserID)
		assert.Equal(t, "reader@example.com", claims.Email)
		assert.Equal(t, "access", claims.Type)
	})

	t.Run("refresh token validates as refresh only", func(t *testing.T) {
		token, err := manager.GenerateRefreshToken(42)
		require.NoError(t, err)

		claims, err := manager.ValidateRefreshToken(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.UserID)

		_, err = manager.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		token, err := manager.GenerateAccessToken(42, "reader@example.com")
		require.NoError(t, err)

		_, err = manager.ValidateRefreshToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token, err := manager.GenerateAccessToken(42, "reader@example.com")
		require.NoError(t, err)

		other := NewManager("different-secret", 15, 168)
		_, err = other.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := manager.ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}
