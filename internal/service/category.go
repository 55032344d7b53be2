package service

import (
	"context"
	"fmt"
	"log/slog"

	"funews/internal/models"
	"funews/internal/store"
)

const (
	MsgCategoryNameExists    = "Category name already exists."
	MsgParentNotFound        = "Parent category not found."
	MsgCategoryOwnParent     = "Category cannot be its own parent."
	MsgCategoryInUse         = "Cannot delete category. This category is being used by news articles or has subcategories."
	MsgCategoryNotFound      = "Category not found."
	msgCategoryLookupMissing = "Category not found"
)

// NewCategory carries the fields needed to create a category. A nil
// IsActive defaults to true.
type NewCategory struct {
	Name        string
	Description *string
	ParentID    *int64
	IsActive    *bool
}

// CategoryChanges is a partial update. An empty Name and nil pointers leave
// the stored value unchanged.
type CategoryChanges struct {
	Name        string
	Description *string
	ParentID    *int64
	IsActive    *bool
}

// CategoryService manages the category tree.
type CategoryService struct {
	uow store.UnitOfWork
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(uow store.UnitOfWork) *CategoryService {
	return &CategoryService{uow: uow}
}

// List returns every live category.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	items, err := s.uow.Categories().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

// ListActive returns live categories flagged active.
func (s *CategoryService) ListActive(ctx context.Context) ([]models.Category, error) {
	items, err := s.uow.Categories().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active categories: %w", err)
	}
	return items, nil
}

// Get returns a live category by id.
func (s *CategoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	c, err := s.uow.Categories().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if c == nil {
		return nil, notFound(msgCategoryLookupMissing)
	}
	return c, nil
}

// Subcategories returns the live direct children of parentID.
func (s *CategoryService) Subcategories(ctx context.Context, parentID int64) ([]models.Category, error) {
	items, err := s.uow.Categories().Children(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	return items, nil
}

// Search matches name or description.
func (s *CategoryService) Search(ctx context.Context, term string) ([]models.Category, error) {
	items, err := s.uow.Categories().Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search categories: %w", err)
	}
	return items, nil
}

// Create adds a category. The name must be free and the parent, if any,
// must be live.
func (s *CategoryService) Create(ctx context.Context, in NewCategory) (*models.Category, error) {
	var created *models.Category
	err := s.uow.Do(ctx, func(tx store.Repositories) error {
		repo := tx.Categories()

		taken, err := repo.NameTaken(ctx, in.Name, 0)
		if err != nil {
			return fmt.Errorf("create category: %w", err)
		}
		if taken {
			return conflict(MsgCategoryNameExists)
		}

		if in.ParentID != nil {
			parent, err := repo.FindByID(ctx, *in.ParentID)
			if err != nil {
				return fmt.Errorf("create category: %w", err)
			}
			if parent == nil {
				return invalid(MsgParentNotFound)
			}
		}

		active := true
		if in.IsActive != nil {
			active = *in.IsActive
		}

		c, err := repo.Create(ctx, &models.Category{
			Name:        in.Name,
			Description: in.Description,
			ParentID:    in.ParentID,
			IsActive:    active,
		})
		if err != nil {
			return duplicateAs(err, MsgCategoryNameExists)
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("category created", "category_id", created.ID)
	return created, nil
}

// Update applies ch to a live category. Only a direct self-reference is
// rejected; longer cycles through other categories are not detected.
func (s *CategoryService) Update(ctx context.Context, id int64, ch CategoryChanges) (*models.Category, error) {
	var updated *models.Category
	err := s.uow.Do(ctx, func(tx store.Repositories) error {
		repo := tx.Categories()

		c, err := repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("update category: %w", err)
		}
		if c == nil {
			return notFound(MsgCategoryNotFound)
		}

		if ch.Name != "" {
			taken, err := repo.NameTaken(ctx, ch.Name, id)
			if err != nil {
				return fmt.Errorf("update category: %w", err)
			}
			if taken {
				return conflict(MsgCategoryNameExists)
			}
			c.Name = ch.Name
		}
		if ch.Description != nil {
			c.Description = ch.Description
		}
		if ch.ParentID != nil {
			if *ch.ParentID == id {
				return invalid(MsgCategoryOwnParent)
			}
			parent, err := repo.FindByID(ctx, *ch.ParentID)
			if err != nil {
				return fmt.Errorf("update category: %w", err)
			}
			if parent == nil {
				return invalid(MsgParentNotFound)
			}
			c.ParentID = ch.ParentID
		}
		if ch.IsActive != nil {
			c.IsActive = *ch.IsActive
		}

		if err := repo.Update(ctx, c); err != nil {
			return missingAs(duplicateAs(err, MsgCategoryNameExists), MsgCategoryNotFound)
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CanDelete reports whether no live article and no live subcategory
// reference the category.
func (s *CategoryService) CanDelete(ctx context.Context, id int64) (bool, error) {
	return canDeleteCategory(ctx, s.uow, id)
}

func canDeleteCategory(ctx context.Context, r store.Repositories, id int64) (bool, error) {
	used, err := r.Articles().ExistsInCategory(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check category %d: %w", id, err)
	}
	if used {
		return false, nil
	}

	hasChildren, err := r.Categories().HasChildren(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check category %d: %w", id, err)
	}
	return !hasChildren, nil
}

// Delete soft-deletes a category that CanDelete allows.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.uow.Do(ctx, func(tx store.Repositories) error {
		ok, err := canDeleteCategory(ctx, tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return conflict(MsgCategoryInUse)
		}

		if err := tx.Categories().SoftDelete(ctx, id); err != nil {
			return missingAs(err, MsgCategoryNotFound)
		}
		slog.Debug("category deleted", "category_id", id)
		return nil
	})
}
