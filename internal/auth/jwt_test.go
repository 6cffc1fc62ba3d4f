package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() *TokenService {
	return NewTokenService(
		"test-access-secret-for-testing",
		"test-refresh-secret-for-testing",
		15*time.Minute,
		7*24*time.Hour,
	)
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	service := newTestTokenService()

	token, expiresAt, err := service.GenerateAccessToken("user-123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.True(t, expiresAt.Before(time.Now().Add(16*time.Minute)))

	userID, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokenService_RefreshTokenRoundTrip(t *testing.T) {
	service := newTestTokenService()

	token, _, err := service.GenerateRefreshToken("user-456")
	require.NoError(t, err)

	userID, err := service.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-456", userID)
}

func TestTokenService_SecretsAreIndependent(t *testing.T) {
	service := newTestTokenService()

	accessToken, _, err := service.GenerateAccessToken("user-123")
	require.NoError(t, err)
	refreshToken, _, err := service.GenerateRefreshToken("user-123")
	require.NoError(t, err)

	// An access token is not accepted on the refresh path, and vice versa.
	_, err = service.ValidateRefreshToken(accessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = service.ValidateAccessToken(refreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	service := NewTokenService("access-secret", "refresh-secret", time.Millisecond, time.Millisecond)

	token, _, err := service.GenerateAccessToken("user-123")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = service.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenService_InvalidToken(t *testing.T) {
	service := newTestTokenService()

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong secret", func() string {
			other := NewTokenService("a-different-secret", "another", time.Minute, time.Minute)
			token, _, _ := other.GenerateAccessToken("user-123")
			return token
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
