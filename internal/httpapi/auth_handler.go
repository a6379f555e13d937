package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Mederbek08/muslim-kg/internal/auth"
)

// Authenticator is the slice of the auth service the login handler
// consumes.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (string, error)
}

type AuthHandler struct {
	auth Authenticator
	log  *zap.SugaredLogger
}

func NewAuthHandler(a Authenticator, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{auth: a, log: log}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponseDTO struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, h.log, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	token, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			respondError(w, h.log, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		case errors.Is(err, auth.ErrIdentityUnavailable):
			respondError(w, h.log, http.StatusServiceUnavailable, "service_unavailable", "sign-in is temporarily unavailable")
		default:
			h.log.Errorw("sign-in failed", "error", err)
			respondError(w, h.log, http.StatusInternalServerError, "internal_error", "sign-in failed")
		}
		return
	}

	respondJSON(w, h.log, http.StatusOK, LoginResponseDTO{Token: token})
}
