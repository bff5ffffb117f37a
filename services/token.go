package services

import (
	"errors"
	"strings"
	"time"

	"notebook/apperror"

	"github.com/golang-jwt/jwt/v5"
)

// Claims identify an account. TokenVersion must match the account's current
// version for the token to be accepted.
type Claims struct {
	UserID       string `json:"user_id"`
	TokenVersion int    `json:"tv"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 identity tokens with a secret
// supplied from configuration.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration, issuer string) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token lifetime must be positive")
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}, nil
}

func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue signs a token for accountID valid for the configured lifetime.
func (m *TokenManager) Issue(accountID string, tokenVersion int) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		UserID:       accountID,
		TokenVersion: tokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature, issuer and expiry. Every failure is an
// apperror.KindInvalidToken.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, apperror.InvalidToken(err)
	}
	if !token.Valid {
		return nil, apperror.InvalidToken(errors.New("token not valid"))
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return nil, apperror.InvalidToken(errors.New("missing user id"))
	}

	return claims, nil
}
