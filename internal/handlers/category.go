package handlers

import (
	"context"
	"net/http"

	"funews/internal/models"
	"funews/internal/respond"
	"funews/internal/service"
)

// CategoryService is the category surface used by Categories.
type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	ListActive(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id int64) (*models.Category, error)
	Subcategories(ctx context.Context, parentID int64) ([]models.Category, error)
	Search(ctx context.Context, term string) ([]models.Category, error)
	Create(ctx context.Context, in service.NewCategory) (*models.Category, error)
	Update(ctx context.Context, id int64, ch service.CategoryChanges) (*models.Category, error)
	CanDelete(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// Categories serves /api/category.
type Categories struct {
	svc CategoryService
}

// NewCategories creates the category handlers.
func NewCategories(svc CategoryService) *Categories {
	return &Categories{svc: svc}
}

// List handles GET /api/category.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err, "getting categories")
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

// ListActive handles GET /api/category/active.
func (h *Categories) ListActive(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListActive(r.Context())
	if err != nil {
		writeError(w, r, err, "getting active categories")
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

// Get handles GET /api/category/{id}.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "getting category")
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

// Subcategories handles GET /api/category/{id}/subcategories.
func (h *Categories) Subcategories(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	items, err := h.svc.Subcategories(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "getting subcategories")
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

// Search handles GET /api/category/search?searchTerm=.
func (h *Categories) Search(w http.ResponseWriter, r *http.Request) {
	term, ok := searchTerm(r)
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgSearchRequired)
		return
	}
	items, err := h.svc.Search(r.Context(), term)
	if err != nil {
		writeError(w, r, err, "searching categories")
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

// Create handles POST /api/category.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateCategory(req, true); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}

	c, err := h.svc.Create(r.Context(), service.NewCategory{
		Name:        deref(req.Name),
		Description: req.Description,
		ParentID:    req.ParentID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		writeError(w, r, err, "creating category")
		return
	}
	respond.JSON(w, http.StatusCreated, createdResponse{Message: "Category created successfully.", ID: c.ID})
}

// Update handles PUT /api/category/{id}.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	var req categoryRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateCategory(req, false); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}

	_, err := h.svc.Update(r.Context(), id, service.CategoryChanges{
		Name:        deref(req.Name),
		Description: req.Description,
		ParentID:    req.ParentID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		writeError(w, r, err, "updating category")
		return
	}
	respond.Message(w, http.StatusOK, "Category updated successfully.")
}

// CanDelete handles GET /api/category/{id}/can-delete.
func (h *Categories) CanDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	can, err := h.svc.CanDelete(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "checking category")
		return
	}
	respond.JSON(w, http.StatusOK, canDeleteResponse{CanDelete: can})
}

// Delete refuses categories still referenced by live articles or
// subcategories before asking the service to delete.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	can, err := h.svc.CanDelete(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "deleting category")
		return
	}
	if !can {
		respond.Message(w, http.StatusBadRequest, "Cannot delete category with existing news articles or subcategories")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "deleting category")
		return
	}
	respond.Message(w, http.StatusOK, "Category deleted successfully.")
}
