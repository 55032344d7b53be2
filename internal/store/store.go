// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all FUNews entities.
// Each store wraps a Querier (a pool or a transaction) and exposes typed
// query methods. Soft-deleted rows are excluded from every read.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"funews/internal/models"
)

var (
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("store: duplicate key")

	// ErrNotFound is returned when a mutation matched no live row.
	ErrNotFound = errors.New("store: no live row")
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// AccountRepository is the typed data access for accounts.
type AccountRepository interface {
	List(ctx context.Context) ([]models.Account, error)
	FindByID(ctx context.Context, id int64) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	Search(ctx context.Context, term string) ([]models.Account, error)
	Create(ctx context.Context, a *models.Account) (*models.Account, error)
	Update(ctx context.Context, a *models.Account) error
	SoftDelete(ctx context.Context, id int64) error
}

// CategoryRepository is the typed data access for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	ListActive(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
	Children(ctx context.Context, parentID int64) ([]models.Category, error)
	HasChildren(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, term string) ([]models.Category, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	SoftDelete(ctx context.Context, id int64) error
}

// TagRepository is the typed data access for tags.
type TagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
	FindByID(ctx context.Context, id int64) (*models.Tag, error)
	FilterLive(ctx context.Context, ids []int64) ([]int64, error)
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
	Search(ctx context.Context, term string) ([]models.Tag, error)
	Create(ctx context.Context, t *models.Tag) (*models.Tag, error)
	Update(ctx context.Context, t *models.Tag) error
	SoftDelete(ctx context.Context, id int64) error
}

// NewsArticleRepository is the typed data access for articles and their
// tag links.
type NewsArticleRepository interface {
	List(ctx context.Context, f ArticleFilter) ([]models.NewsArticle, error)
	FindByID(ctx context.Context, id int64) (*models.NewsArticle, error)
	AnyLive(ctx context.Context) (bool, error)
	ExistsInCategory(ctx context.Context, categoryID int64) (bool, error)
	Create(ctx context.Context, n *models.NewsArticle) (*models.NewsArticle, error)
	Update(ctx context.Context, n *models.NewsArticle) error
	SoftDelete(ctx context.Context, id int64) error
	AddTags(ctx context.Context, articleID int64, tagIDs []int64) error
	ReplaceTags(ctx context.Context, articleID int64, tagIDs []int64) error
}

// ArticleFilter selects live articles. Zero values disable a condition.
type ArticleFilter struct {
	ActiveOnly bool
	CategoryID *int64
	TagID      *int64
	CreatedBy  *int64
	From       *time.Time // inclusive
	To         *time.Time // inclusive
	Search     string

	// IncludeTags loads each article's live tags in one extra query.
	IncludeTags bool
}

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

// mustAffect returns ErrNotFound when an UPDATE matched nothing.
func mustAffect(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// likePattern turns a search term into a substring ILIKE pattern with the
// LIKE wildcards escaped.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
