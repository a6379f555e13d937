package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Identity is what the hosted auth service knows about a signed-in
// user.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// CredentialChecker verifies a credential pair against the hosted
// identity service.
type CredentialChecker interface {
	Check(ctx context.Context, email, password string) (Identity, error)
}

type httpChecker struct {
	endpoint string
	client   *http.Client
	cb       *gobreaker.CircuitBreaker[Identity]
}

// NewHTTPChecker talks to the identity endpoint over HTTP. The circuit
// breaker trips on transport and server errors, not on rejected
// credentials, so a wave of bad passwords cannot take sign-in down.
func NewHTTPChecker(endpoint string) CredentialChecker {
	cb := gobreaker.NewCircuitBreaker[Identity](gobreaker.Settings{
		Name:    "identity",
		Timeout: 30 * time.Second,
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrInvalidCredentials)
		},
	})

	return &httpChecker{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		cb:       cb,
	}
}

type checkRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *httpChecker) Check(ctx context.Context, email, password string) (Identity, error) {
	id, err := c.cb.Execute(func() (Identity, error) {
		return c.check(ctx, email, password)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Identity{}, ErrIdentityUnavailable
		}
		return Identity{}, err
	}
	return id, nil
}

func (c *httpChecker) check(ctx context.Context, email, password string) (Identity, error) {
	body, err := json.Marshal(checkRequest{Email: email, Password: password})
	if err != nil {
		return Identity{}, fmt.Errorf("failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Identity{}, fmt.Errorf("failed to build identity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var id Identity
		if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
			return Identity{}, fmt.Errorf("failed to decode identity response: %w", err)
		}
		return id, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest:
		return Identity{}, ErrInvalidCredentials
	default:
		return Identity{}, fmt.Errorf("identity service returned status %d", resp.StatusCode)
	}
}
