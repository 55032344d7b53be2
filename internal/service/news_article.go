// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"funews/internal/models"
	"funews/internal/store"
)

const (
	MsgArticleNotFound      = "News article not found."
	MsgArticleForbidden     = "You can only update your own news articles."
	MsgDateRangeInverted    = "Start date must be before end date"
	msgArticleLookupMissing = "News article not found"
)

// Caller identifies the authenticated account performing an operation.
type Caller struct {
	ID   int64
	Role models.Role
}

// NewArticle carries the fields needed to create an article. TagIDs that do
// not name a live tag are dropped silently.
type NewArticle struct {
	Title      string
	Headline   *string
	Content    string
	Source     *string
	Status     string
	CategoryID int64
	TagIDs     []int64
}

// ArticleChanges is a partial update. Empty strings and nil pointers leave
// the stored value unchanged. A non-nil TagIDs, even an empty one, replaces
// every tag link.
type ArticleChanges struct {
	Title      string
	Headline   *string
	Content    string
	Source     *string
	Status     string
	CategoryID *int64
	TagIDs     *[]int64
}

// NewsArticleService manages articles and their tag links.
type NewsArticleService struct {
	uow store.UnitOfWork
}

// NewNewsArticleService creates a NewsArticleService.
func NewNewsArticleService(uow store.UnitOfWork) *NewsArticleService {
	return &NewsArticleService{uow: uow}
}

func (s *NewsArticleService) list(ctx context.Context, op string, f store.ArticleFilter) ([]models.NewsArticle, error) {
	f.IncludeTags = true
	items, err := s.uow.Articles().List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// List returns every live article, newest first.
func (s *NewsArticleService) List(ctx context.Context) ([]models.NewsArticle, error) {
	return s.list(ctx, "list articles", store.ArticleFilter{})
}

// ListActive returns live articles whose status is active.
func (s *NewsArticleService) ListActive(ctx context.Context) ([]models.NewsArticle, error) {
	return s.list(ctx, "list active articles", store.ArticleFilter{ActiveOnly: true})
}

// Get returns a live article with its category, author and tags.
func (s *NewsArticleService) Get(ctx context.Context, id int64) (*models.NewsArticle, error) {
	n, err := s.uow.Articles().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if n == nil {
		return nil, notFound(msgArticleLookupMissing)
	}
	return n, nil
}

// ByCategory returns live articles in the category.
func (s *NewsArticleService) ByCategory(ctx context.Context, categoryID int64) ([]models.NewsArticle, error) {
	return s.list(ctx, "list articles by category", store.ArticleFilter{CategoryID: &categoryID})
}

// ByTag returns live articles linked to the tag.
func (s *NewsArticleService) ByTag(ctx context.Context, tagID int64) ([]models.NewsArticle, error) {
	return s.list(ctx, "list articles by tag", store.ArticleFilter{TagID: &tagID})
}

// ByStaff returns every live article. The account id is accepted for API
// compatibility but does not narrow the result.
func (s *NewsArticleService) ByStaff(ctx context.Context, accountID int64) ([]models.NewsArticle, error) {
	slog.Debug("listing articles by staff", "account_id", accountID)
	return s.list(ctx, "list articles by staff", store.ArticleFilter{})
}

// Mine returns the caller's articles through ByStaff.
func (s *NewsArticleService) Mine(ctx context.Context, caller Caller) ([]models.NewsArticle, error) {
	return s.ByStaff(ctx, caller.ID)
}

// ByDateRange returns live articles created within [from, to].
func (s *NewsArticleService) ByDateRange(ctx context.Context, from, to time.Time) ([]models.NewsArticle, error) {
	if from.After(to) {
		return nil, invalid(MsgDateRangeInverted)
	}
	return s.list(ctx, "list articles by date", store.ArticleFilter{From: &from, To: &to})
}

// Search matches title, headline, content or source.
func (s *NewsArticleService) Search(ctx context.Context, term string) ([]models.NewsArticle, error) {
	return s.list(ctx, "search articles", store.ArticleFilter{Search: term})
}

// Create writes the article and its live tag links in one transaction.
// The caller becomes the author.
func (s *NewsArticleService) Create(ctx context.Context, caller Caller, in NewArticle) (*models.NewsArticle, error) {
	var created *models.NewsArticle
	err := s.uow.Do(ctx, func(tx store.Repositories) error {
		cat, err := tx.Categories().FindByID(ctx, in.CategoryID)
		if err != nil {
			return fmt.Errorf("create article: %w", err)
		}
		if cat == nil {
			return invalid(MsgCategoryNotFound)
		}

		n, err := tx.Articles().Create(ctx, &models.NewsArticle{
			Title:      in.Title,
			Headline:   in.Headline,
			Content:    in.Content,
			Source:     in.Source,
			Status:     in.Status,
			CategoryID: in.CategoryID,
			CreatedBy:  caller.ID,
		})
		if err != nil {
			return err
		}

		live, err := tx.Tags().FilterLive(ctx, in.TagIDs)
		if err != nil {
			return fmt.Errorf("create article: %w", err)
		}
		if err := tx.Articles().AddTags(ctx, n.ID, live); err != nil {
			return err
		}

		created = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("article created", "news_article_id", created.ID, "created_by", caller.ID)
	return created, nil
}

// Update applies ch to a live article. Staff callers may only update
// articles they wrote; admins may update any.
func (s *NewsArticleService) Update(ctx context.Context, caller Caller, id int64, ch ArticleChanges) (*models.NewsArticle, error) {
	var updated *models.NewsArticle
	err := s.uow.Do(ctx, func(tx store.Repositories) error {
		n, err := tx.Articles().FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("update article: %w", err)
		}
		if n == nil {
			return notFound(MsgArticleNotFound)
		}
		if caller.Role == models.RoleStaff && n.CreatedBy != caller.ID {
			return forbidden(MsgArticleForbidden)
		}

		if ch.Title != "" {
			n.Title = ch.Title
		}
		if ch.Headline != nil {
			n.Headline = ch.Headline
		}
		if ch.Content != "" {
			n.Content = ch.Content
		}
		if ch.Source != nil {
			n.Source = ch.Source
		}
		if ch.Status != "" {
			n.Status = ch.Status
		}
		if ch.CategoryID != nil {
			cat, err := tx.Categories().FindByID(ctx, *ch.CategoryID)
			if err != nil {
				return fmt.Errorf("update article: %w", err)
			}
			if cat == nil {
				return invalid(MsgCategoryNotFound)
			}
			n.CategoryID = *ch.CategoryID
		}

		if err := tx.Articles().Update(ctx, n); err != nil {
			return missingAs(err, MsgArticleNotFound)
		}

		if ch.TagIDs != nil {
			live, err := tx.Tags().FilterLive(ctx, *ch.TagIDs)
			if err != nil {
				return fmt.Errorf("update article: %w", err)
			}
			if err := tx.Articles().ReplaceTags(ctx, id, live); err != nil {
				return err
			}
		}

		updated = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes an article. Tag links are kept.
func (s *NewsArticleService) Delete(ctx context.Context, id int64) error {
	if err := s.uow.Articles().SoftDelete(ctx, id); err != nil {
		return missingAs(err, MsgArticleNotFound)
	}
	slog.Debug("article deleted", "news_article_id", id)
	return nil
}
