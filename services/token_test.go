package services

import (
	"testing"
	"time"

	"notebook/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("test_secret_key", 7*24*time.Hour, "notebook")
	require.NoError(t, err)
	return m
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour, "notebook")
	assert.Error(t, err)

	_, err = NewTokenManager("secret", 0, "notebook")
	assert.Error(t, err)
}

func TestIssueThenVerify(t *testing.T) {
	m := newTestTokenManager(t)

	token, expiresAt, err := m.Issue("account-1", 3)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "account-1", claims.UserID)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, "notebook", claims.Issuer)
}

func TestVerifyExpiredToken(t *testing.T) {
	m := newTestTokenManager(t)

	m.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	token, _, err := m.Issue("account-1", 0)
	require.NoError(t, err)
	m.now = time.Now

	_, err = m.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyRejects(t *testing.T) {
	m := newTestTokenManager(t)
	valid, _, err := m.Issue("account-1", 0)
	require.NoError(t, err)

	other, err := NewTokenManager("another_secret", time.Hour, "notebook")
	require.NoError(t, err)
	foreign, _, err := other.Issue("account-1", 0)
	require.NoError(t, err)

	wrongIssuer, err := NewTokenManager("test_secret_key", time.Hour, "someone-else")
	require.NoError(t, err)
	misissued, _, err := wrongIssuer.Issue("account-1", 0)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "account-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "notebook",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "notebook",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test_secret_key"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           "account-1",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "notebook"},
	}).SignedString([]byte("test_secret_key"))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":        "not-a-token",
		"empty":          "",
		"bad signature":  foreign,
		"wrong issuer":   misissued,
		"alg none":       noneAlg,
		"missing user":   noUser,
		"missing expiry": noExpiry,
		"tampered":       valid + "A",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			claims, err := m.Verify(token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, apperror.ErrInvalidToken)
		})
	}
}
