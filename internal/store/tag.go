package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"funews/internal/models"
)

// TagStore manages tags in the database.
type TagStore struct {
	db Querier
}

// NewTagStore returns a new TagStore.
func NewTagStore(db Querier) *TagStore {
	return &TagStore{db: db}
}

const tagColumns = `tag_id, tag_name, note, created_at, updated_at, deleted_at, is_deleted`

func scanTag(scanner interface{ Scan(...any) error }) (*models.Tag, error) {
	var t models.Tag
	err := scanner.Scan(&t.ID, &t.Name, &t.Note, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt, &t.IsDeleted)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TagStore) query(ctx context.Context, op, q string, args ...any) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := []models.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// List returns all live tags ordered by name.
func (s *TagStore) List(ctx context.Context) ([]models.Tag, error) {
	return s.query(ctx, "list tags",
		`SELECT `+tagColumns+` FROM tags WHERE NOT is_deleted ORDER BY tag_name, tag_id`)
}

// FindByID retrieves a live tag. Returns nil if not found.
func (s *TagStore) FindByID(ctx context.Context, id int64) (*models.Tag, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE tag_id = $1 AND NOT is_deleted`, id)
	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tag by id: %w", err)
	}
	return t, nil
}

// FilterLive returns the subset of ids that name live tags, in ascending
// order and without duplicates.
func (s *TagStore) FilterLive(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT tag_id FROM tags
		WHERE tag_id = ANY($1) AND NOT is_deleted
		ORDER BY tag_id`, ids)
	if err != nil {
		return nil, fmt.Errorf("filter live tags: %w", err)
	}
	defer rows.Close()

	live := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan tag id: %w", err)
		}
		live = append(live, id)
	}
	return live, rows.Err()
}

// NameTaken reports whether another live tag uses name.
func (s *TagStore) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var taken bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tags WHERE tag_name = $1 AND tag_id <> $2 AND NOT is_deleted
		)`, name, excludeID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check tag name: %w", err)
	}
	return taken, nil
}

// Search matches name or note by case-insensitive substring.
func (s *TagStore) Search(ctx context.Context, term string) ([]models.Tag, error) {
	return s.query(ctx, "search tags", `
		SELECT `+tagColumns+` FROM tags
		WHERE NOT is_deleted AND (tag_name ILIKE $1 OR note ILIKE $1)
		ORDER BY tag_name, tag_id`, likePattern(term))
}

// Create inserts a new tag and returns it.
func (s *TagStore) Create(ctx context.Context, t *models.Tag) (*models.Tag, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO tags (tag_name, note) VALUES ($1, $2)
		RETURNING `+tagColumns, t.Name, t.Note)
	created, err := scanTag(row)
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", translate(err))
	}
	return created, nil
}

// Update replaces the name and note of a live tag.
func (s *TagStore) Update(ctx context.Context, t *models.Tag) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tags SET tag_name = $1, note = $2, updated_at = NOW()
		WHERE tag_id = $3 AND NOT is_deleted
	`, t.Name, t.Note, t.ID)
	if err != nil {
		return fmt.Errorf("update tag: %w", translate(err))
	}
	if err := mustAffect(res); err != nil {
		return fmt.Errorf("update tag %d: %w", t.ID, err)
	}
	return nil
}

// SoftDelete flags a live tag as deleted. Existing article links are kept;
// reads skip deleted tags.
func (s *TagStore) SoftDelete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tags SET is_deleted = TRUE, deleted_at = NOW()
		WHERE tag_id = $1 AND NOT is_deleted
	`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if err := mustAffect(res); err != nil {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}
	return nil
}
