package handlers

import (
	"context"
	"net/http"

	"funews/internal/models"
	"funews/internal/respond"
	"funews/internal/service"
)

// TagService is the tag surface used by Tags.
type TagService interface {
	List(ctx context.Context) ([]models.Tag, error)
	Get(ctx context.Context, id int64) (*models.Tag, error)
	Search(ctx context.Context, term string) ([]models.Tag, error)
	Create(ctx context.Context, name string, note *string) (*models.Tag, error)
	Update(ctx context.Context, id int64, ch service.TagChanges) (*models.Tag, error)
	Delete(ctx context.Context, id int64) error
}

// Tags serves /api/tag.
type Tags struct {
	svc TagService
}

// NewTags creates the tags handlers.
func NewTags(svc TagService) *Tags {
	return &Tags{svc: svc}
}

// List handles GET /api/tag.
func (h *Tags) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err, "getting tags")
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

// Get handles GET /api/tag/{id}.
func (h *Tags) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "getting tag")
		return
	}
	respond.JSON(w, http.StatusOK, t)
}

// Search handles GET /api/tag/search?searchTerm=.
func (h *Tags) Search(w http.ResponseWriter, r *http.Request) {
	term, ok := searchTerm(r)
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgSearchRequired)
		return
	}
	items, err := h.svc.Search(r.Context(), term)
	if err != nil {
		writeError(w, r, err, "searching tags")
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

// Create handles POST /api/tag.
func (h *Tags) Create(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateTag(req, true); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}

	t, err := h.svc.Create(r.Context(), deref(req.Name), req.Note)
	if err != nil {
		writeError(w, r, err, "creating tag")
		return
	}
	respond.JSON(w, http.StatusCreated, createdResponse{Message: "Tag created successfully.", ID: t.ID})
}

// Update handles PUT /api/tag/{id}.
func (h *Tags) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	var req tagRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateTag(req, false); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}

	if _, err := h.svc.Update(r.Context(), id, service.TagChanges{Name: deref(req.Name), Note: req.Note}); err != nil {
		writeError(w, r, err, "updating tag")
		return
	}
	respond.Message(w, http.StatusOK, "Tag updated successfully.")
}

// Delete soft-deletes a tag. Articles keep their links to it.
func (h *Tags) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "deleting tag")
		return
	}
	respond.Message(w, http.StatusOK, "Tag deleted successfully.")
}
