package usecase

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestValidateToken(t *testing.T) {
	validator := NewTokenValidator("secret")
	exp := time.Now().Add(time.Hour).Unix()

	t.Run("sub claim", func(t *testing.T) {
		userID, err := validator.ValidateToken(sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"sub": "u1", "exp": exp}))
		require.NoError(t, err)
		assert.Equal(t, "u1", userID)
	})

	t.Run("user_id claim", func(t *testing.T) {
		userID, err := validator.ValidateToken(sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"user_id": "u2", "exp": exp}))
		require.NoError(t, err)
		assert.Equal(t, "u2", userID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := validator.ValidateToken(sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "u1", "exp": exp}))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := validator.ValidateToken(sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Minute).Unix()}))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other algorithm", func(t *testing.T) {
		_, err := validator.ValidateToken(sign(t, jwt.SigningMethodHS512, []byte("secret"), jwt.MapClaims{"sub": "u1", "exp": exp}))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no user claim", func(t *testing.T) {
		_, err := validator.ValidateToken(sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"exp": exp}))
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := validator.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
