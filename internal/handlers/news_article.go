// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"time"

	"funews/internal/models"
	"funews/internal/respond"
	"funews/internal/service"
)

// NewsArticleService is the article surface used by NewsArticles.
type NewsArticleService interface {
	List(ctx context.Context) ([]models.NewsArticle, error)
	ListActive(ctx context.Context) ([]models.NewsArticle, error)
	Get(ctx context.Context, id int64) (*models.NewsArticle, error)
	ByCategory(ctx context.Context, categoryID int64) ([]models.NewsArticle, error)
	ByTag(ctx context.Context, tagID int64) ([]models.NewsArticle, error)
	ByStaff(ctx context.Context, accountID int64) ([]models.NewsArticle, error)
	Mine(ctx context.Context, caller service.Caller) ([]models.NewsArticle, error)
	ByDateRange(ctx context.Context, from, to time.Time) ([]models.NewsArticle, error)
	Search(ctx context.Context, term string) ([]models.NewsArticle, error)
	Create(ctx context.Context, caller service.Caller, in service.NewArticle) (*models.NewsArticle, error)
	Update(ctx context.Context, caller service.Caller, id int64, ch service.ArticleChanges) (*models.NewsArticle, error)
	Delete(ctx context.Context, id int64) error
}

// NewsArticles serves /api/newsarticle.
type NewsArticles struct {
	svc NewsArticleService
}

// NewNewsArticles creates the article handlers.
func NewNewsArticles(svc NewsArticleService) *NewsArticles {
	return &NewsArticles{svc: svc}
}

// list runs a list query and writes the result.
func (h *NewsArticles) list(w http.ResponseWriter, r *http.Request, action string, fn func(ctx context.Context) ([]models.NewsArticle, error)) {
	items, err := fn(r.Context())
	if err != nil {
		writeError(w, r, err, action)
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

// listByID is list for routes keyed by a path id.
func (h *NewsArticles) listByID(w http.ResponseWriter, r *http.Request, param string, fn func(ctx context.Context, id int64) ([]models.NewsArticle, error)) {
	id, ok := pathID(r, param)
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	h.list(w, r, "getting news articles", func(ctx context.Context) ([]models.NewsArticle, error) {
		return fn(ctx, id)
	})
}

// List handles GET /api/newsarticle.
func (h *NewsArticles) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "getting news articles", h.svc.List)
}

// ListActive handles GET /api/newsarticle/active.
func (h *NewsArticles) ListActive(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "getting active news articles", h.svc.ListActive)
}

// Get handles GET /api/newsarticle/{id}.
func (h *NewsArticles) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	n, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "getting news article")
		return
	}
	respond.JSON(w, http.StatusOK, n)
}

// ByCategory handles GET /api/newsarticle/category/{categoryId}.
func (h *NewsArticles) ByCategory(w http.ResponseWriter, r *http.Request) {
	h.listByID(w, r, "categoryId", h.svc.ByCategory)
}

// ByTag handles GET /api/newsarticle/tag/{tagId}.
func (h *NewsArticles) ByTag(w http.ResponseWriter, r *http.Request) {
	h.listByID(w, r, "tagId", h.svc.ByTag)
}

// ByStaff handles GET /api/newsarticle/staff/{accountId}.
func (h *NewsArticles) ByStaff(w http.ResponseWriter, r *http.Request) {
	h.listByID(w, r, "accountId", h.svc.ByStaff)
}

// Mine handles GET /api/newsarticle/my-articles for the calling Staff.
func (h *NewsArticles) Mine(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		respond.Message(w, http.StatusUnauthorized, msgInvalidToken)
		return
	}
	h.list(w, r, "getting news articles", func(ctx context.Context) ([]models.NewsArticle, error) {
		return h.svc.Mine(ctx, c)
	})
}

// ByDateRange handles GET /api/newsarticle/date-range?startDate=&endDate=.
func (h *NewsArticles) ByDateRange(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(r)
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidDates)
		return
	}
	h.list(w, r, "getting news articles", func(ctx context.Context) ([]models.NewsArticle, error) {
		return h.svc.ByDateRange(ctx, from, to)
	})
}

// Search handles GET /api/newsarticle/search?searchTerm=.
func (h *NewsArticles) Search(w http.ResponseWriter, r *http.Request) {
	term, ok := searchTerm(r)
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgSearchRequired)
		return
	}
	h.list(w, r, "searching news articles", func(ctx context.Context) ([]models.NewsArticle, error) {
		return h.svc.Search(ctx, term)
	})
}

// Create handles POST /api/newsarticle. The caller becomes the author.
func (h *NewsArticles) Create(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		respond.Message(w, http.StatusUnauthorized, msgInvalidToken)
		return
	}
	var req articleRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateArticle(req, true); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}

	in := service.NewArticle{
		Title:      deref(req.Title),
		Headline:   req.Headline,
		Content:    deref(req.Content),
		Source:     req.Source,
		Status:     deref(req.Status),
		CategoryID: *req.CategoryID,
	}
	if req.TagIDs != nil {
		in.TagIDs = *req.TagIDs
	}

	n, err := h.svc.Create(r.Context(), c, in)
	if err != nil {
		writeError(w, r, err, "creating news article")
		return
	}
	respond.JSON(w, http.StatusCreated, createdResponse{Message: "News article created successfully.", ID: n.ID})
}

// Update handles PUT /api/newsarticle/{id}. Staff may only edit their own
// articles; the service enforces it.
func (h *NewsArticles) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		respond.Message(w, http.StatusUnauthorized, msgInvalidToken)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	var req articleRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateArticle(req, false); msg != "" {
		respond.Message(w, http.StatusBadRequest, msg)
		return
	}

	_, err := h.svc.Update(r.Context(), c, id, service.ArticleChanges{
		Title:      deref(req.Title),
		Headline:   req.Headline,
		Content:    deref(req.Content),
		Source:     req.Source,
		Status:     deref(req.Status),
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
	})
	if err != nil {
		writeError(w, r, err, "updating news article")
		return
	}
	respond.Message(w, http.StatusOK, "News article updated successfully.")
}

// Delete handles DELETE /api/newsarticle/{id}.
func (h *NewsArticles) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Message(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "deleting news article")
		return
	}
	respond.Message(w, http.StatusOK, "News article deleted successfully.")
}
