// Package auth gates the admin surface. Credentials are checked by the
// hosted identity service; a successful sign-in yields a short-lived
// signed token the admin client presents on every request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrIdentityUnavailable = errors.New("identity service unavailable")
	ErrInvalidToken        = errors.New("invalid token")
)

type Service struct {
	checker CredentialChecker
	secret  []byte
	ttl     time.Duration
}

func NewService(checker CredentialChecker, secret []byte, ttl time.Duration) *Service {
	return &Service{
		checker: checker,
		secret:  secret,
		ttl:     ttl,
	}
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SignIn verifies the credentials and returns a signed session token.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	id, err := s.checker.Check(ctx, email, password)
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token, returning the identity
// it was issued for.
func (s *Service) Verify(tokenString string) (Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UID: c.Subject, Email: c.Email}, nil
}
