// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"funews/internal/models"
)

// NewsArticleStore handles articles and their tag links.
type NewsArticleStore struct {
	db Querier
}

// NewNewsArticleStore creates a new NewsArticleStore.
func NewNewsArticleStore(db Querier) *NewsArticleStore {
	return &NewsArticleStore{db: db}
}

const articleColumns = `news_article_id, news_title, headline, news_content, news_source,
	news_status, category_id, created_by, created_at, updated_at, deleted_at, is_deleted`

// articleSelect joins the category and author names. The category name is
// kept after the category is soft-deleted; a deleted author yields NULL.
const articleSelect = `
	SELECT n.news_article_id, n.news_title, n.headline, n.news_content, n.news_source,
	       n.news_status, n.category_id, n.created_by, n.created_at, n.updated_at,
	       n.deleted_at, n.is_deleted,
	       c.category_name, a.account_name
	FROM news_articles n
	LEFT JOIN categories c ON c.category_id = n.category_id
	LEFT JOIN accounts a ON a.account_id = n.created_by AND NOT a.is_deleted`

func scanArticle(scanner interface{ Scan(...any) error }) (*models.NewsArticle, error) {
	var n models.NewsArticle
	err := scanner.Scan(
		&n.ID, &n.Title, &n.Headline, &n.Content, &n.Source,
		&n.Status, &n.CategoryID, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt,
		&n.DeletedAt, &n.IsDeleted,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func scanArticleJoined(scanner interface{ Scan(...any) error }) (*models.NewsArticle, error) {
	var n models.NewsArticle
	err := scanner.Scan(
		&n.ID, &n.Title, &n.Headline, &n.Content, &n.Source,
		&n.Status, &n.CategoryID, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt,
		&n.DeletedAt, &n.IsDeleted,
		&n.CategoryName, &n.CreatedByName,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// buildArticleQuery renders the filter as a WHERE clause with positional
// arguments.
func buildArticleQuery(f ArticleFilter) (string, []any) {
	where := []string{"NOT n.is_deleted"}
	var args []any

	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.ActiveOnly {
		where = append(where, "LOWER(n.news_status) = 'active'")
	}
	if f.CategoryID != nil {
		add("n.category_id = $%d", *f.CategoryID)
	}
	if f.TagID != nil {
		add(`EXISTS (SELECT 1 FROM news_tags nt WHERE nt.news_article_id = n.news_article_id AND nt.tag_id = $%d)`, *f.TagID)
	}
	if f.CreatedBy != nil {
		add("n.created_by = $%d", *f.CreatedBy)
	}
	if f.From != nil {
		add("n.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("n.created_at <= $%d", *f.To)
	}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		where = append(where, fmt.Sprintf(
			"(n.news_title ILIKE $%[1]d OR n.headline ILIKE $%[1]d OR n.news_content ILIKE $%[1]d OR n.news_source ILIKE $%[1]d)",
			len(args)))
	}

	q := articleSelect + "\n\tWHERE " + strings.Join(where, " AND ") +
		"\n\tORDER BY n.created_at DESC, n.news_article_id DESC"
	return q, args
}

// List returns live articles matching f, newest first.
func (s *NewsArticleStore) List(ctx context.Context, f ArticleFilter) ([]models.NewsArticle, error) {
	q, args := buildArticleQuery(f)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	items := []models.NewsArticle{}
	for rows.Next() {
		n, err := scanArticleJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	if f.IncludeTags && len(items) > 0 {
		if err := s.attachTags(ctx, items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// FindByID returns a live article with its category name, author name and
// tags. Returns nil if not found.
func (s *NewsArticleStore) FindByID(ctx context.Context, id int64) (*models.NewsArticle, error) {
	row := s.db.QueryRowContext(ctx, articleSelect+"\n\tWHERE n.news_article_id = $1 AND NOT n.is_deleted", id)
	n, err := scanArticleJoined(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}

	items := []models.NewsArticle{*n}
	if err := s.attachTags(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// attachTags loads live tags for every article in one query.
func (s *NewsArticleStore) attachTags(ctx context.Context, items []models.NewsArticle) error {
	ids := make([]int64, len(items))
	index := make(map[int64]int, len(items))
	for i := range items {
		ids[i] = items[i].ID
		index[items[i].ID] = i
		items[i].Tags = []models.Tag{}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT nt.news_article_id, t.tag_id, t.tag_name, t.note, t.created_at, t.updated_at
		FROM news_tags nt
		JOIN tags t ON t.tag_id = nt.tag_id AND NOT t.is_deleted
		WHERE nt.news_article_id = ANY($1)
		ORDER BY t.tag_name, t.tag_id`, ids)
	if err != nil {
		return fmt.Errorf("load article tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var articleID int64
		var t models.Tag
		if err := rows.Scan(&articleID, &t.ID, &t.Name, &t.Note, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return fmt.Errorf("scan article tag: %w", err)
		}
		if i, ok := index[articleID]; ok {
			items[i].Tags = append(items[i].Tags, t)
		}
	}
	return rows.Err()
}

// AnyLive reports whether at least one live article exists.
func (s *NewsArticleStore) AnyLive(ctx context.Context) (bool, error) {
	var found bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM news_articles WHERE NOT is_deleted)`).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("check live articles: %w", err)
	}
	return found, nil
}

// ExistsInCategory reports whether a live article references the category.
func (s *NewsArticleStore) ExistsInCategory(ctx context.Context, categoryID int64) (bool, error) {
	var found bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM news_articles WHERE category_id = $1 AND NOT is_deleted
		)`, categoryID).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("check category articles: %w", err)
	}
	return found, nil
}

// Create inserts an article and returns the stored row.
func (s *NewsArticleStore) Create(ctx context.Context, n *models.NewsArticle) (*models.NewsArticle, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO news_articles
			(news_title, headline, news_content, news_source, news_status, category_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+articleColumns,
		n.Title, n.Headline, n.Content, n.Source, n.Status, n.CategoryID, n.CreatedBy,
	)
	created, err := scanArticle(row)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", translate(err))
	}
	return created, nil
}

// Update replaces every mutable column of a live article. The author is
// never changed.
func (s *NewsArticleStore) Update(ctx context.Context, n *models.NewsArticle) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE news_articles SET
			news_title = $1, headline = $2, news_content = $3, news_source = $4,
			news_status = $5, category_id = $6, updated_at = NOW()
		WHERE news_article_id = $7 AND NOT is_deleted
	`, n.Title, n.Headline, n.Content, n.Source, n.Status, n.CategoryID, n.ID)
	if err != nil {
		return fmt.Errorf("update article: %w", translate(err))
	}
	if err := mustAffect(res); err != nil {
		return fmt.Errorf("update article %d: %w", n.ID, err)
	}
	return nil
}

// SoftDelete flags a live article as deleted.
func (s *NewsArticleStore) SoftDelete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE news_articles SET is_deleted = TRUE, deleted_at = NOW()
		WHERE news_article_id = $1 AND NOT is_deleted
	`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if err := mustAffect(res); err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}
	return nil
}

// AddTags links the article to each tag. Existing links are left alone.
func (s *NewsArticleStore) AddTags(ctx context.Context, articleID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO news_tags (news_article_id, tag_id)
		SELECT $1, UNNEST($2::BIGINT[])
		ON CONFLICT DO NOTHING`, articleID, tagIDs)
	if err != nil {
		return fmt.Errorf("add article tags: %w", err)
	}
	return nil
}

// ReplaceTags removes every link of the article and adds tagIDs. Run it
// inside a transaction.
func (s *NewsArticleStore) ReplaceTags(ctx context.Context, articleID int64, tagIDs []int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM news_tags WHERE news_article_id = $1`, articleID); err != nil {
		return fmt.Errorf("clear article tags: %w", err)
	}
	return s.AddTags(ctx, articleID, tagIDs)
}
