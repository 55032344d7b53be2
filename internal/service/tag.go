package service

import (
	"context"
	"fmt"
	"log/slog"

	"funews/internal/models"
	"funews/internal/store"
)

const (
	MsgTagNameExists    = "Tag name already exists."
	MsgTagNotFound      = "Tag not found."
	msgTagLookupMissing = "Tag not found"
)

// TagChanges is a partial update. An empty Name and a nil Note leave the
// stored value unchanged.
type TagChanges struct {
	Name string
	Note *string
}

// TagService manages tags.
type TagService struct {
	uow store.UnitOfWork
}

// NewTagService creates a TagService.
func NewTagService(uow store.UnitOfWork) *TagService {
	return &TagService{uow: uow}
}

// List returns every live tag.
func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	items, err := s.uow.Tags().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return items, nil
}

// Get returns a live tag by id.
func (s *TagService) Get(ctx context.Context, id int64) (*models.Tag, error) {
	t, err := s.uow.Tags().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	if t == nil {
		return nil, notFound(msgTagLookupMissing)
	}
	return t, nil
}

// Search matches name or note.
func (s *TagService) Search(ctx context.Context, term string) ([]models.Tag, error) {
	items, err := s.uow.Tags().Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search tags: %w", err)
	}
	return items, nil
}

// Create adds a tag with a name not used by any live tag.
func (s *TagService) Create(ctx context.Context, name string, note *string) (*models.Tag, error) {
	repo := s.uow.Tags()

	taken, err := repo.NameTaken(ctx, name, 0)
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	if taken {
		return nil, conflict(MsgTagNameExists)
	}

	t, err := repo.Create(ctx, &models.Tag{Name: name, Note: note})
	if err != nil {
		return nil, duplicateAs(err, MsgTagNameExists)
	}
	slog.Debug("tag created", "tag_id", t.ID)
	return t, nil
}

// Update applies ch to a live tag.
func (s *TagService) Update(ctx context.Context, id int64, ch TagChanges) (*models.Tag, error) {
	var updated *models.Tag
	err := s.uow.Do(ctx, func(tx store.Repositories) error {
		repo := tx.Tags()

		t, err := repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("update tag: %w", err)
		}
		if t == nil {
			return notFound(MsgTagNotFound)
		}

		if ch.Name != "" {
			taken, err := repo.NameTaken(ctx, ch.Name, id)
			if err != nil {
				return fmt.Errorf("update tag: %w", err)
			}
			if taken {
				return conflict(MsgTagNameExists)
			}
			t.Name = ch.Name
		}
		if ch.Note != nil {
			t.Note = ch.Note
		}

		if err := repo.Update(ctx, t); err != nil {
			return missingAs(duplicateAs(err, MsgTagNameExists), MsgTagNotFound)
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes a tag. Article links are kept and simply stop showing
// up because reads skip deleted tags.
func (s *TagService) Delete(ctx context.Context, id int64) error {
	if err := s.uow.Tags().SoftDelete(ctx, id); err != nil {
		return missingAs(err, MsgTagNotFound)
	}
	slog.Debug("tag deleted", "tag_id", id)
	return nil
}
