package services

import (
	"testing"
	"time"

	apperrors "travel-app/errors"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	tokens := NewTokenService("secret", time.Hour)
	token, err := tokens.GenerateToken(42)
	require.NoError(t, err)

	userID, err := tokens.GetUserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestTokenService_Rejects(t *testing.T) {
	tokens := NewTokenService("secret", time.Hour)
	token, err := tokens.GenerateToken(42)
	require.NoError(t, err)

	_, err = NewTokenService("other-secret", time.Hour).GetUserIDFromToken(token)
	assert.Equal(t, apperrors.ErrCodeInvalidToken, apperrors.Code(err))

	claims := &Claims{
		UserInfo:       UserInfo{UserId: 42},
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Minute).Unix()},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = tokens.GetUserIDFromToken(expired)
	assert.Equal(t, apperrors.ErrCodeInvalidToken, apperrors.Code(err))

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = tokens.GetUserIDFromToken(noUser)
	assert.Equal(t, "Token does not contain user information", apperrors.Message(err))

	_, err = tokens.GetUserIDFromToken("not-a-token")
	assert.Equal(t, 401, apperrors.HTTPStatus(err))
}
