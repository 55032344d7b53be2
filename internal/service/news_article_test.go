package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funews/internal/models"
)

type articleFixture struct {
	db      *memDB
	svc     *NewsArticleService
	admin   Caller
	staff   Caller
	other   Caller
	cat     models.Category
	liveTag models.Tag
	deadTag models.Tag
}

func newArticleFixture(t *testing.T) *articleFixture {
	t.Helper()
	db := newMemDB()
	admin := db.seedAccount("Admin", "admin@funews.local", models.RoleAdmin, "")
	staff := db.seedAccount("Staff", "staff@funews.local", models.RoleStaff, "")
	other := db.seedAccount("Other", "other@funews.local", models.RoleStaff, "")
	cat := db.seedCategory("News", nil)
	live := db.seedTag("live")
	dead := db.seedTag("dead")
	require.NoError(t, db.Tags().SoftDelete(context.Background(), dead.ID))

	return &articleFixture{
		db:      db,
		svc:     NewNewsArticleService(db),
		admin:   Caller{ID: admin.ID, Role: admin.Role},
		staff:   Caller{ID: staff.ID, Role: staff.Role},
		other:   Caller{ID: other.ID, Role: other.Role},
		cat:     cat,
		liveTag: live,
		deadTag: dead,
	}
}

func TestNewsArticleServiceCreateLinksOnlyLiveTags(t *testing.T) {
	f := newArticleFixture(t)
	ctx := context.Background()

	n, err := f.svc.Create(ctx, f.staff, NewArticle{
		Title: "Exam week", Content: "body", Status: "Active",
		CategoryID: f.cat.ID,
		TagIDs:     []int64{f.liveTag.ID, f.deadTag.ID, 9999, f.liveTag.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, f.staff.ID, n.CreatedBy)

	got, err := f.svc.Get(ctx, n.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, f.liveTag.ID, got.Tags[0].ID)
	assert.False(t, f.db.links[n.ID][f.deadTag.ID], "deleted tag must not be linked")
}

func TestNewsArticleServiceCreateRequiresLiveCategory(t *testing.T) {
	f := newArticleFixture(t)
	require.NoError(t, f.db.Categories().SoftDelete(context.Background(), f.cat.ID))

	_, err := f.svc.Create(context.Background(), f.staff, NewArticle{
		Title: "t", Content: "c", Status: "Active", CategoryID: f.cat.ID,
	})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, MsgCategoryNotFound, err.Error())
	assert.Empty(t, f.db.articles)
}

func TestNewsArticleServiceCreateRollsBack(t *testing.T) {
	f := newArticleFixture(t)
	f.db.linkErr = errors.New("link insert failed")

	_, err := f.svc.Create(context.Background(), f.staff, NewArticle{
		Title: "t", Content: "c", Status: "Active", CategoryID: f.cat.ID, TagIDs: []int64{f.liveTag.ID},
	})
	require.Error(t, err)
	assert.Empty(t, f.db.articles, "article insert must be rolled back with its links")
}

func TestNewsArticleServiceUpdateTagSemantics(t *testing.T) {
	f := newArticleFixture(t)
	ctx := context.Background()

	n, err := f.svc.Create(ctx, f.staff, NewArticle{
		Title: "t", Content: "c", Status: "Active", CategoryID: f.cat.ID, TagIDs: []int64{f.liveTag.ID},
	})
	require.NoError(t, err)

	// Absent tagIds keeps links.
	_, err = f.svc.Update(ctx, f.staff, n.ID, ArticleChanges{Title: "t2"})
	require.NoError(t, err)
	got, _ := f.svc.Get(ctx, n.ID)
	assert.Equal(t, "t2", got.Title)
	assert.Len(t, got.Tags, 1)

	// An empty list clears them.
	_, err = f.svc.Update(ctx, f.staff, n.ID, ArticleChanges{TagIDs: &[]int64{}})
	require.NoError(t, err)
	got, _ = f.svc.Get(ctx, n.ID)
	assert.Empty(t, got.Tags)
	assert.Equal(t, "t2", got.Title)
}

func TestNewsArticleServiceUpdateFields(t *testing.T) {
	f := newArticleFixture(t)
	ctx := context.Background()
	other := f.db.seedCategory("Other", nil)

	n, err := f.svc.Create(ctx, f.staff, NewArticle{
		Title: "t", Headline: ptr("h"), Content: "c", Source: ptr("s"), Status: "Active", CategoryID: f.cat.ID,
	})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, f.admin, n.ID, ArticleChanges{
		Headline: ptr(""), Status: "Inactive", CategoryID: &other.ID,
	})
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "", *got.Headline, "empty headline is allowed")
	assert.Equal(t, "s", *got.Source)
	assert.Equal(t, "c", got.Content)
	assert.Equal(t, "Inactive", got.Status)
	assert.Equal(t, other.ID, got.CategoryID)
	assert.Equal(t, f.staff.ID, got.CreatedBy, "author never changes")

	_, err = f.svc.Update(ctx, f.admin, n.ID, ArticleChanges{CategoryID: ptr(int64(9999))})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, MsgCategoryNotFound, err.Error())
}

func TestNewsArticleServiceUpdateOwnership(t *testing.T) {
	f := newArticleFixture(t)
	ctx := context.Background()

	n, err := f.svc.Create(ctx, f.staff, NewArticle{Title: "t", Content: "c", Status: "Active", CategoryID: f.cat.ID})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, f.other, n.ID, ArticleChanges{Title: "hijack"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Update(ctx, f.admin, n.ID, ArticleChanges{Title: "by admin"})
	assert.NoError(t, err)

	_, err = f.svc.Update(ctx, f.staff, 9999, ArticleChanges{Title: "x"})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, MsgArticleNotFound, err.Error())
}

func TestNewsArticleServiceDelete(t *testing.T) {
	f := newArticleFixture(t)
	ctx := context.Background()
	n := f.db.seedArticle("t", "Active", f.cat.ID, f.staff.ID, f.db.now)

	require.NoError(t, f.svc.Delete(ctx, n.ID))
	_, err := f.svc.Get(ctx, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, n.ID), ErrNotFound)
}

func TestNewsArticleServiceQueries(t *testing.T) {
	f := newArticleFixture(t)
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2026, 4, d, 12, 0, 0, 0, time.UTC) }
	second := f.db.seedCategory("Second", nil)

	a := f.db.seedArticle("Budget vote", "active", f.cat.ID, f.staff.ID, day(1))
	b := f.db.seedArticle("Sports day", "Inactive", second.ID, f.other.ID, day(2))
	c := f.db.seedArticle("Weather", "ACTIVE", f.cat.ID, f.other.ID, day(3))
	require.NoError(t, f.db.Articles().AddTags(ctx, b.ID, []int64{f.liveTag.ID}))

	ids := func(items []models.NewsArticle) []int64 {
		out := []int64{}
		for _, n := range items {
			out = append(out, n.ID)
		}
		return out
	}

	all, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{c.ID, b.ID, a.ID}, ids(all), "newest first")

	active, err := f.svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{c.ID, a.ID}, ids(active), "status compared case-insensitively")

	byCat, err := f.svc.ByCategory(ctx, f.cat.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{c.ID, a.ID}, ids(byCat))

	byTag, err := f.svc.ByTag(ctx, f.liveTag.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID}, ids(byTag))

	// ByStaff ignores the account id.
	byStaff, err := f.svc.ByStaff(ctx, f.staff.ID)
	require.NoError(t, err)
	assert.Len(t, byStaff, 3)
	mine, err := f.svc.Mine(ctx, f.staff)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	ranged, err := f.svc.ByDateRange(ctx, day(2), day(3))
	require.NoError(t, err)
	assert.Equal(t, []int64{c.ID, b.ID}, ids(ranged), "both ends inclusive")

	_, err = f.svc.ByDateRange(ctx, day(3), day(1))
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, MsgDateRangeInverted, err.Error())

	found, err := f.svc.Search(ctx, "VOTE")
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID}, ids(found))
}
