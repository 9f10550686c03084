package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "bookmypg-test",
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, jti, err := m.GenerateAccessToken(42, "user@test.dev", "USER", 3)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@test.dev", claims.Email)
	assert.Equal(t, "USER", claims.Role)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, jti, claims.ID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewJWTManager(JWTConfig{Secret: "different", Expiry: time.Hour, RefreshExpiry: time.Hour, Issuer: "x"})

	token, _, err := m.GenerateAccessToken(1, "a@b.c", "USER", 0)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager(JWTConfig{
		Secret:        "test-secret",
		Expiry:        -time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "bookmypg-test",
	})

	token, _, err := m.GenerateAccessToken(1, "a@b.c", "USER", 0)
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRefreshAccessTokenRequiresRefreshType(t *testing.T) {
	m := newTestManager()

	accessToken, _, err := m.GenerateAccessToken(7, "a@b.c", "USER", 1)
	require.NoError(t, err)

	_, _, err = m.RefreshAccessToken(accessToken, 1)
	assert.ErrorIs(t, err, ErrInvalidToken)

	refreshToken, _, err := m.GenerateRefreshToken(7, "a@b.c", "USER", 1)
	require.NoError(t, err)

	newAccess, _, err := m.RefreshAccessToken(refreshToken, 1)
	require.NoError(t, err)

	claims, err := m.ValidateToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, uint(7), claims.UserID)
}
