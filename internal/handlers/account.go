// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"funews/internal/models"
	"funews/internal/respond"
	"funews/internal/service"
)

// AccountService is the account management surface used by Accounts.
type AccountService interface {
	List(ctx context.Context) ([]models.Account, error)
	Get(ctx context.Context, id int64) (*models.Account, error)
	Search(ctx context.Context, term string) ([]models.Account, error)
	Create(ctx context.Context, in service.NewAccount) (*models.Account, error)
	Update(ctx context.Context, id int64, ch service.AccountChanges) (*models.Account, error)
	CanDelete(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// Accounts serves /api/account. Every route is Admin only.
type Accounts struct {
	svc AccountService
}

// NewAccounts creates the account handlers.
func NewAccounts(svc AccountService) *Accounts {
	return &Accounts{svc: svc}
}

// List handles GET /api/account.
func (h *Accounts) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err, "getting accounts")
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

// Get handles GET /api/account/{id}.
func (h *Accounts) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "getting account")
		return
	}
	respond.JSON(w, http.StatusOK, a)
}

// Search handles GET /api/account/search?searchTerm=.
func (h *Accounts) Search(w http.ResponseWriter, r *http.Request) {
	term, ok := searchTerm(r)
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgSearchRequired)
		return
	}
	items, err := h.svc.Search(r.Context(), term)
	if err != nil {
		writeError(w, r, err, "searching accounts")
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

// Create handles POST /api/account.
func (h *Accounts) Create(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateAccount(req, true); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}

	a, err := h.svc.Create(r.Context(), service.NewAccount{
		Name:     deref(req.Name),
		Email:    deref(req.Email),
		Role:     models.Role(deref(req.Role)),
		Password: deref(req.Password),
	})
	if err != nil {
		writeError(w, r, err, "creating account")
		return
	}
	respond.JSON(w, http.StatusCreated, createdResponse{Message: "Account created successfully.", ID: a.ID})
}

// Update handles PUT /api/account/{id}.
func (h *Accounts) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	var req accountRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateAccount(req, false); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}

	_, err := h.svc.Update(r.Context(), id, service.AccountChanges{
		Name:     deref(req.Name),
		Email:    deref(req.Email),
		Role:     models.Role(deref(req.Role)),
		Password: deref(req.Password),
	})
	if err != nil {
		writeError(w, r, err, "updating account")
		return
	}
	respond.Message(w, http.StatusOK, "Account updated successfully.")
}

// CanDelete handles GET /api/account/{id}/can-delete.
func (h *Accounts) CanDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	can, err := h.svc.CanDelete(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "checking account")
		return
	}
	respond.JSON(w, http.StatusOK, canDeleteResponse{CanDelete: can})
}

// Delete handles DELETE /api/account/{id}.
func (h *Accounts) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	can, err := h.svc.CanDelete(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "deleting account")
		return
	}
	if !can {
		respond.Message(w, http.StatusBadRequest, "Cannot delete account with existing news articles")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "deleting account")
		return
	}
	respond.Message(w, http.StatusOK, "Account deleted successfully.")
}
