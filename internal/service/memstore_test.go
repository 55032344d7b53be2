package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"funews/internal/auth"
	"funews/internal/models"
	"funews/internal/store"
)

// memDB is an in-memory store.UnitOfWork. Do snapshots the data and
// restores it when the callback fails, mimicking a rolled back transaction.
type memDB struct {
	accounts   map[int64]models.Account
	categories map[int64]models.Category
	tags       map[int64]models.Tag
	articles   map[int64]models.NewsArticle
	links      map[int64]map[int64]bool

	nextID int64
	now    time.Time

	// err, when set, is returned by every read.
	err error
	// linkErr, when set, fails AddTags.
	linkErr error
}

func newMemDB() *memDB {
	return &memDB{
		accounts:   map[int64]models.Account{},
		categories: map[int64]models.Category{},
		tags:       map[int64]models.Tag{},
		articles:   map[int64]models.NewsArticle{},
		links:      map[int64]map[int64]bool{},
		now:        time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memDB) Accounts() store.AccountRepository     { return memAccounts{m} }
func (m *memDB) Categories() store.CategoryRepository  { return memCategories{m} }
func (m *memDB) Tags() store.TagRepository             { return memTags{m} }
func (m *memDB) Articles() store.NewsArticleRepository { return memArticles{m} }

func (m *memDB) Do(_ context.Context, fn func(tx store.Repositories) error) error {
	snap := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

type memSnapshot struct {
	accounts   map[int64]models.Account
	categories map[int64]models.Category
	tags       map[int64]models.Tag
	articles   map[int64]models.NewsArticle
	links      map[int64]map[int64]bool
	nextID     int64
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (m *memDB) snapshot() memSnapshot {
	links := make(map[int64]map[int64]bool, len(m.links))
	for k, v := range m.links {
		links[k] = copyMap(v)
	}
	return memSnapshot{
		accounts:   copyMap(m.accounts),
		categories: copyMap(m.categories),
		tags:       copyMap(m.tags),
		articles:   copyMap(m.articles),
		links:      links,
		nextID:     m.nextID,
	}
}

func (m *memDB) restore(s memSnapshot) {
	m.accounts, m.categories, m.tags = s.accounts, s.categories, s.tags
	m.articles, m.links, m.nextID = s.articles, s.links, s.nextID
}

func contains(field, term string) bool {
	return strings.Contains(strings.ToLower(field), strings.ToLower(term))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ─── accounts ────────────────────────────────────────────────────────────

type memAccounts struct{ m *memDB }

func (r memAccounts) live(keep func(models.Account) bool) ([]models.Account, error) {
	if r.m.err != nil {
		return nil, r.m.err
	}
	out := []models.Account{}
	for _, a := range r.m.accounts {
		if !a.IsDeleted && keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memAccounts) List(context.Context) ([]models.Account, error) {
	return r.live(func(models.Account) bool { return true })
}

func (r memAccounts) FindByID(_ context.Context, id int64) (*models.Account, error) {
	if r.m.err != nil {
		return nil, r.m.err
	}
	a, ok := r.m.accounts[id]
	if !ok || a.IsDeleted {
		return nil, nil
	}
	return &a, nil
}

func (r memAccounts) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	found, err := r.live(func(a models.Account) bool { return a.Email == email })
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return &found[0], nil
}

func (r memAccounts) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	found, err := r.live(func(a models.Account) bool { return a.Email == email && a.ID != excludeID })
	return len(found) > 0, err
}

func (r memAccounts) Search(_ context.Context, term string) ([]models.Account, error) {
	return r.live(func(a models.Account) bool {
		return contains(a.Name, term) || contains(a.Email, term) || contains(string(a.Role), term)
	})
}

func (r memAccounts) Create(_ context.Context, a *models.Account) (*models.Account, error) {
	c := *a
	c.ID = r.m.id()
	c.CreatedAt = r.m.now
	r.m.accounts[c.ID] = c
	return &c, nil
}

func (r memAccounts) Update(_ context.Context, a *models.Account) error {
	cur, ok := r.m.accounts[a.ID]
	if !ok || cur.IsDeleted {
		return store.ErrNotFound
	}
	u := *a
	u.UpdatedAt = &r.m.now
	r.m.accounts[a.ID] = u
	return nil
}

func (r memAccounts) SoftDelete(_ context.Context, id int64) error {
	a, ok := r.m.accounts[id]
	if !ok || a.IsDeleted {
		return store.ErrNotFound
	}
	a.IsDeleted = true
	r.m.accounts[id] = a
	return nil
}

// ─── categories ──────────────────────────────────────────────────────────

type memCategories struct{ m *memDB }

func (r memCategories) live(keep func(models.Category) bool) ([]models.Category, error) {
	if r.m.err != nil {
		return nil, r.m.err
	}
	out := []models.Category{}
	for _, c := range r.m.categories {
		if !c.IsDeleted && keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memCategories) List(context.Context) ([]models.Category, error) {
	return r.live(func(models.Category) bool { return true })
}

func (r memCategories) ListActive(context.Context) ([]models.Category, error) {
	return r.live(func(c models.Category) bool { return c.IsActive })
}

func (r memCategories) FindByID(_ context.Context, id int64) (*models.Category, error) {
	if r.m.err != nil {
		return nil, r.m.err
	}
	c, ok := r.m.categories[id]
	if !ok || c.IsDeleted {
		return nil, nil
	}
	return &c, nil
}

func (r memCategories) NameTaken(_ context.Context, name string, excludeID int64) (bool, error) {
	found, err := r.live(func(c models.Category) bool { return c.Name == name && c.ID != excludeID })
	return len(found) > 0, err
}

func (r memCategories) Children(_ context.Context, parentID int64) ([]models.Category, error) {
	return r.live(func(c models.Category) bool { return c.ParentID != nil && *c.ParentID == parentID })
}

func (r memCategories) HasChildren(ctx context.Context, id int64) (bool, error) {
	kids, err := r.Children(ctx, id)
	return len(kids) > 0, err
}

func (r memCategories) Search(_ context.Context, term string) ([]models.Category, error) {
	return r.live(func(c models.Category) bool {
		return contains(c.Name, term) || contains(deref(c.Description), term)
	})
}

func (r memCategories) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	n := *c
	n.ID = r.m.id()
	n.CreatedAt = r.m.now
	r.m.categories[n.ID] = n
	return &n, nil
}

func (r memCategories) Update(_ context.Context, c *models.Category) error {
	cur, ok := r.m.categories[c.ID]
	if !ok || cur.IsDeleted {
		return store.ErrNotFound
	}
	u := *c
	u.UpdatedAt = &r.m.now
	r.m.categories[c.ID] = u
	return nil
}

func (r memCategories) SoftDelete(_ context.Context, id int64) error {
	c, ok := r.m.categories[id]
	if !ok || c.IsDeleted {
		return store.ErrNotFound
	}
	c.IsDeleted = true
	r.m.categories[id] = c
	return nil
}

// ─── tags ────────────────────────────────────────────────────────────────

type memTags struct{ m *memDB }

func (r memTags) live(keep func(models.Tag) bool) ([]models.Tag, error) {
	if r.m.err != nil {
		return nil, r.m.err
	}
	out := []models.Tag{}
	for _, t := range r.m.tags {
		if !t.IsDeleted && keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memTags) List(context.Context) ([]models.Tag, error) {
	return r.live(func(models.Tag) bool { return true })
}

func (r memTags) FindByID(_ context.Context, id int64) (*models.Tag, error) {
	if r.m.err != nil {
		return nil, r.m.err
	}
	t, ok := r.m.tags[id]
	if !ok || t.IsDeleted {
		return nil, nil
	}
	return &t, nil
}

func (r memTags) FilterLive(_ context.Context, ids []int64) ([]int64, error) {
	want := map[int64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	found, err := r.live(func(t models.Tag) bool { return want[t.ID] })
	if err != nil {
		return nil, err
	}
	out := []int64{}
	for _, t := range found {
		out = append(out, t.ID)
	}
	return out, nil
}

func (r memTags) NameTaken(_ context.Context, name string, excludeID int64) (bool, error) {
	found, err := r.live(func(t models.Tag) bool { return t.Name == name && t.ID != excludeID })
	return len(found) > 0, err
}

func (r memTags) Search(_ context.Context, term string) ([]models.Tag, error) {
	return r.live(func(t models.Tag) bool { return contains(t.Name, term) || contains(deref(t.Note), term) })
}

func (r memTags) Create(_ context.Context, t *models.Tag) (*models.Tag, error) {
	n := *t
	n.ID = r.m.id()
	n.CreatedAt = r.m.now
	r.m.tags[n.ID] = n
	return &n, nil
}

func (r memTags) Update(_ context.Context, t *models.Tag) error {
	cur, ok := r.m.tags[t.ID]
	if !ok || cur.IsDeleted {
		return store.ErrNotFound
	}
	r.m.tags[t.ID] = *t
	return nil
}

func (r memTags) SoftDelete(_ context.Context, id int64) error {
	t, ok := r.m.tags[id]
	if !ok || t.IsDeleted {
		return store.ErrNotFound
	}
	t.IsDeleted = true
	r.m.tags[id] = t
	return nil
}

// ─── articles ────────────────────────────────────────────────────────────

type memArticles struct{ m *memDB }

func (r memArticles) withTags(n models.NewsArticle) models.NewsArticle {
	n.Tags = []models.Tag{}
	for id := range r.m.links[n.ID] {
		if t, ok := r.m.tags[id]; ok && !t.IsDeleted {
			n.Tags = append(n.Tags, t)
		}
	}
	sort.Slice(n.Tags, func(i, j int) bool { return n.Tags[i].ID < n.Tags[j].ID })
	return n
}

func (r memArticles) List(_ context.Context, f store.ArticleFilter) ([]models.NewsArticle, error) {
	if r.m.err != nil {
		return nil, r.m.err
	}
	out := []models.NewsArticle{}
	for _, n := range r.m.articles {
		switch {
		case n.IsDeleted,
			f.ActiveOnly && !n.IsActive(),
			f.CategoryID != nil && n.CategoryID != *f.CategoryID,
			f.TagID != nil && !r.m.links[n.ID][*f.TagID],
			f.CreatedBy != nil && n.CreatedBy != *f.CreatedBy,
			f.From != nil && n.CreatedAt.Before(*f.From),
			f.To != nil && n.CreatedAt.After(*f.To),
			f.Search != "" && !(contains(n.Title, f.Search) || contains(deref(n.Headline), f.Search) ||
				contains(n.Content, f.Search) || contains(deref(n.Source), f.Search)):
			continue
		}
		if c, ok := r.m.categories[n.CategoryID]; ok {
			name := c.Name
			n.CategoryName = &name
		}
		if f.IncludeTags {
			n = r.withTags(n)
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r memArticles) FindByID(_ context.Context, id int64) (*models.NewsArticle, error) {
	if r.m.err != nil {
		return nil, r.m.err
	}
	n, ok := r.m.articles[id]
	if !ok || n.IsDeleted {
		return nil, nil
	}
	n = r.withTags(n)
	return &n, nil
}

func (r memArticles) AnyLive(context.Context) (bool, error) {
	for _, n := range r.m.articles {
		if !n.IsDeleted {
			return true, nil
		}
	}
	return false, r.m.err
}

func (r memArticles) ExistsInCategory(_ context.Context, categoryID int64) (bool, error) {
	for _, n := range r.m.articles {
		if !n.IsDeleted && n.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, r.m.err
}

func (r memArticles) Create(_ context.Context, n *models.NewsArticle) (*models.NewsArticle, error) {
	c := *n
	c.ID = r.m.id()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.m.now
	}
	r.m.articles[c.ID] = c
	return &c, nil
}

func (r memArticles) Update(_ context.Context, n *models.NewsArticle) error {
	cur, ok := r.m.articles[n.ID]
	if !ok || cur.IsDeleted {
		return store.ErrNotFound
	}
	u := *n
	u.Tags = nil
	u.UpdatedAt = &r.m.now
	r.m.articles[n.ID] = u
	return nil
}

func (r memArticles) SoftDelete(_ context.Context, id int64) error {
	n, ok := r.m.articles[id]
	if !ok || n.IsDeleted {
		return store.ErrNotFound
	}
	n.IsDeleted = true
	r.m.articles[id] = n
	return nil
}

var errUnknownTag = errors.New("mem: tag does not exist")

func (r memArticles) AddTags(_ context.Context, articleID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	if r.m.linkErr != nil {
		return r.m.linkErr
	}
	if r.m.links[articleID] == nil {
		r.m.links[articleID] = map[int64]bool{}
	}
	for _, id := range tagIDs {
		if _, ok := r.m.tags[id]; !ok {
			return errUnknownTag
		}
		r.m.links[articleID][id] = true
	}
	return nil
}

func (r memArticles) ReplaceTags(ctx context.Context, articleID int64, tagIDs []int64) error {
	delete(r.m.links, articleID)
	return r.AddTags(ctx, articleID, tagIDs)
}

// ─── seed helpers ────────────────────────────────────────────────────────

func (m *memDB) seedAccount(name, email string, role models.Role, password string) models.Account {
	hash := ""
	if password != "" {
		var err error
		if hash, err = auth.HashPassword(password); err != nil {
			panic(err)
		}
	}
	a := models.Account{ID: m.id(), Name: name, Email: email, Role: role, PasswordHash: hash, CreatedAt: m.now}
	m.accounts[a.ID] = a
	return a
}

func (m *memDB) seedCategory(name string, parentID *int64) models.Category {
	c := models.Category{ID: m.id(), Name: name, ParentID: parentID, IsActive: true, CreatedAt: m.now}
	m.categories[c.ID] = c
	return c
}

func (m *memDB) seedTag(name string) models.Tag {
	t := models.Tag{ID: m.id(), Name: name, CreatedAt: m.now}
	m.tags[t.ID] = t
	return t
}

func (m *memDB) seedArticle(title, status string, categoryID, authorID int64, createdAt time.Time) models.NewsArticle {
	n := models.NewsArticle{
		ID: m.id(), Title: title, Content: "body", Status: status,
		CategoryID: categoryID, CreatedBy: authorID, CreatedAt: createdAt,
	}
	m.articles[n.ID] = n
	return n
}

var _ store.UnitOfWork = (*memDB)(nil)
