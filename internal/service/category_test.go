package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funews/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestCategoryServiceCreate(t *testing.T) {
	db := newMemDB()
	svc := NewCategoryService(db)
	ctx := context.Background()

	parent, err := svc.Create(ctx, NewCategory{Name: "Campus"})
	require.NoError(t, err)
	assert.True(t, parent.IsActive, "isActive defaults to true")

	child, err := svc.Create(ctx, NewCategory{Name: "Clubs", ParentID: &parent.ID, IsActive: ptr(false)})
	require.NoError(t, err)
	assert.False(t, child.IsActive)

	_, err = svc.Create(ctx, NewCategory{Name: "Campus"})
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, MsgCategoryNameExists, err.Error())

	_, err = svc.Create(ctx, NewCategory{Name: "Orphan", ParentID: ptr(int64(404))})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, MsgParentNotFound, err.Error())
}

func TestCategoryServiceUpdate(t *testing.T) {
	db := newMemDB()
	a := db.seedCategory("A", nil)
	b := db.seedCategory("B", &a.ID)
	gone := db.seedCategory("Gone", nil)
	require.NoError(t, db.Categories().SoftDelete(context.Background(), gone.ID))
	svc := NewCategoryService(db)
	ctx := context.Background()

	_, err := svc.Update(ctx, a.ID, CategoryChanges{ParentID: &a.ID})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, MsgCategoryOwnParent, err.Error())

	_, err = svc.Update(ctx, a.ID, CategoryChanges{ParentID: &gone.ID})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, MsgParentNotFound, err.Error())

	// A two-step cycle is not detected.
	_, err = svc.Update(ctx, a.ID, CategoryChanges{ParentID: &b.ID})
	require.NoError(t, err)

	_, err = svc.Update(ctx, b.ID, CategoryChanges{Name: "A"})
	assert.ErrorIs(t, err, ErrConflict)

	updated, err := svc.Update(ctx, b.ID, CategoryChanges{Description: ptr(""), IsActive: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "B", updated.Name)
	assert.Equal(t, "", *updated.Description)
	assert.False(t, updated.IsActive)

	_, err = svc.Update(ctx, 999, CategoryChanges{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryServiceDeleteGuards(t *testing.T) {
	db := newMemDB()
	author := db.seedAccount("Author", "author@funews.local", models.RoleStaff, "")
	parent := db.seedCategory("Parent", nil)
	child := db.seedCategory("Child", &parent.ID)
	used := db.seedCategory("Used", nil)
	free := db.seedCategory("Free", nil)
	db.seedArticle("Story", "Active", used.ID, author.ID, db.now)
	svc := NewCategoryService(db)
	ctx := context.Background()

	for _, id := range []int64{parent.ID, used.ID} {
		ok, err := svc.CanDelete(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok)

		err = svc.Delete(ctx, id)
		require.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, MsgCategoryInUse, err.Error())
	}

	ok, err := svc.CanDelete(ctx, free.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, svc.Delete(ctx, free.ID))

	// Once the child is gone the parent becomes deletable.
	require.NoError(t, svc.Delete(ctx, child.ID))
	assert.NoError(t, svc.Delete(ctx, parent.ID))

	_, err = svc.Get(ctx, parent.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryServiceQueries(t *testing.T) {
	db := newMemDB()
	root := db.seedCategory("World", nil)
	db.seedCategory("Asia", &root.ID)
	inactive := db.seedCategory("Archive", nil)
	inactive.IsActive = false
	inactive.Description = ptr("old world stories")
	db.categories[inactive.ID] = inactive
	svc := NewCategoryService(db)
	ctx := context.Background()

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	kids, err := svc.Subcategories(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, kids, 1)
	assert.Equal(t, "Asia", kids[0].Name)

	found, err := svc.Search(ctx, "WORLD")
	require.NoError(t, err)
	assert.Len(t, found, 2, "name and description both match")
}
