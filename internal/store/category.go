// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"funews/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db Querier
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db Querier) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `category_id, category_name, category_description, parent_category_id,
	is_active, created_at, updated_at, deleted_at, is_deleted`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Description, &c.ParentID,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt, &c.IsDeleted,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CategoryStore) query(ctx context.Context, op, q string, args ...any) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// List returns all live categories ordered by name.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	return s.query(ctx, "list categories",
		`SELECT `+categoryColumns+` FROM categories WHERE NOT is_deleted ORDER BY category_name, category_id`)
}

// ListActive returns live categories with is_active set.
func (s *CategoryStore) ListActive(ctx context.Context) ([]models.Category, error) {
	return s.query(ctx, "list active categories",
		`SELECT `+categoryColumns+` FROM categories WHERE NOT is_deleted AND is_active ORDER BY category_name, category_id`)
}

// FindByID retrieves a live category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE category_id = $1 AND NOT is_deleted`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// NameTaken reports whether another live category uses name.
func (s *CategoryStore) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var taken bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE category_name = $1 AND category_id <> $2 AND NOT is_deleted
		)`, name, excludeID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return taken, nil
}

// Children returns the live direct subcategories of parentID.
func (s *CategoryStore) Children(ctx context.Context, parentID int64) ([]models.Category, error) {
	return s.query(ctx, "list subcategories",
		`SELECT `+categoryColumns+` FROM categories
		WHERE parent_category_id = $1 AND NOT is_deleted
		ORDER BY category_name, category_id`, parentID)
}

// HasChildren reports whether any live category has id as its parent.
func (s *CategoryStore) HasChildren(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM categories WHERE parent_category_id = $1 AND NOT is_deleted
		)`, id).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("check subcategories: %w", err)
	}
	return found, nil
}

// Search matches name or description by case-insensitive substring.
func (s *CategoryStore) Search(ctx context.Context, term string) ([]models.Category, error) {
	return s.query(ctx, "search categories", `
		SELECT `+categoryColumns+` FROM categories
		WHERE NOT is_deleted
		  AND (category_name ILIKE $1 OR category_description ILIKE $1)
		ORDER BY category_name, category_id`, likePattern(term))
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (category_name, category_description, parent_category_id, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns,
		c.Name, c.Description, c.ParentID, c.IsActive,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", translate(err))
	}
	return result, nil
}

// Update replaces every mutable column of a live category.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories SET
			category_name = $1, category_description = $2, parent_category_id = $3,
			is_active = $4, updated_at = NOW()
		WHERE category_id = $5 AND NOT is_deleted
	`, c.Name, c.Description, c.ParentID, c.IsActive, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", translate(err))
	}
	if err := mustAffect(res); err != nil {
		return fmt.Errorf("update category %d: %w", c.ID, err)
	}
	return nil
}

// SoftDelete flags a live category as deleted. Subcategories keep their
// parent reference.
func (s *CategoryStore) SoftDelete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories SET is_deleted = TRUE, deleted_at = NOW()
		WHERE category_id = $1 AND NOT is_deleted
	`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if err := mustAffect(res); err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return nil
}
