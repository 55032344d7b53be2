// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"funews/internal/auth"
	"funews/internal/metrics"
	"funews/internal/middleware"
	"funews/internal/models"
	"funews/internal/respond"
	"funews/internal/service"
)

// AuthService is the sign-in and profile surface used by Auth.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Register(ctx context.Context, in service.NewAccount) (*models.Account, error)
	Profile(ctx context.Context, accountID int64) (*models.Account, error)
	UpdateProfile(ctx context.Context, accountID int64, ch service.ProfileChanges) (*models.Account, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

// Auth serves /api/auth.
type Auth struct {
	svc AuthService
}

// NewAuth creates the auth handlers.
func NewAuth(svc AuthService) *Auth {
	return &Auth{svc: svc}
}

// loginResponse is the body of a successful login.
type loginResponse struct {
	Token     string    `json:"token"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login handles POST /api/auth/login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateLogin(req); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			metrics.RecordLogin(metrics.LoginFailure)
		} else {
			metrics.RecordLogin(metrics.LoginError)
		}
		writeError(w, r, err, "logging in")
		return
	}

	metrics.RecordLogin(metrics.LoginSuccess)
	respond.JSON(w, http.StatusOK, loginResponse{
		Token:     res.Token,
		Message:   "Login successful.",
		ExpiresAt: res.ExpiresAt,
	})
}

// Register handles POST /api/auth/register.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateAccount(req, true); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}

	a, err := h.svc.Register(r.Context(), service.NewAccount{
		Name:     deref(req.Name),
		Email:    deref(req.Email),
		Role:     models.Role(deref(req.Role)),
		Password: deref(req.Password),
	})
	if err != nil {
		writeError(w, r, err, "registering")
		return
	}
	respond.JSON(w, http.StatusCreated, createdResponse{Message: "Account registered successfully.", ID: a.ID})
}

// Profile handles GET /api/auth/profile.
func (h *Auth) Profile(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		respond.Message(w, http.StatusUnauthorized, msgInvalidToken)
		return
	}
	a, err := h.svc.Profile(r.Context(), c.ID)
	if err != nil {
		writeError(w, r, err, "getting profile")
		return
	}
	respond.JSON(w, http.StatusOK, a)
}

// profileRequest is the body of PUT /api/auth/profile. The role is not
// accepted here.
type profileRequest struct {
	Name     *string `json:"accountName"`
	Email    *string `json:"accountEmail"`
	Password *string `json:"accountPassword"`
}

// UpdateProfile handles PUT /api/auth/profile.
func (h *Auth) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		respond.Message(w, http.StatusUnauthorized, msgInvalidToken)
		return
	}
	var req profileRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateAccount(accountRequest{Name: req.Name, Email: req.Email, Password: req.Password}, false); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}

	_, err := h.svc.UpdateProfile(r.Context(), c.ID, service.ProfileChanges{
		Name:     deref(req.Name),
		Email:    deref(req.Email),
		Password: deref(req.Password),
	})
	if err != nil {
		writeError(w, r, err, "updating profile")
		return
	}
	respond.Message(w, http.StatusOK, "Profile updated successfully.")
}

// Logout handles POST /api/auth/logout by revoking the presented token.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		respond.Message(w, http.StatusUnauthorized, msgInvalidToken)
		return
	}
	if err := h.svc.Logout(r.Context(), claims); err != nil {
		writeError(w, r, err, "logging out")
		return
	}
	respond.Message(w, http.StatusOK, "Logout successful.")
}
