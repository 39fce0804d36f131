package draft

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiomezzo/studio-site-backend/models"
)

type categoryMemoryStore struct {
	remote       []models.ServiceCategory
	writtenSlugs []string
}

func (s *categoryMemoryStore) Load(ctx context.Context) ([]models.ServiceCategory, error) {
	out := make([]models.ServiceCategory, len(s.remote))
	copy(out, s.remote)
	return out, nil
}

func (s *categoryMemoryStore) Delete(ctx context.Context, slug string) error { return nil }

func (s *categoryMemoryStore) Write(ctx context.Context, draft, committed []models.ServiceCategory) error {
	previous := make(map[string][]string, len(committed))
	for _, category := range committed {
		previous[category.Slug] = category.Images
	}
	for i, category := range draft {
		if sameImages(category.Images, previous[category.Slug]) {
			continue
		}
		s.writtenSlugs = append(s.writtenSlugs, category.Slug)
		s.remote[i] = category
	}
	return nil
}

func newCategoryTestManager(store *categoryMemoryStore) *Manager[models.ServiceCategory, string] {
	return NewManager("category-test", store,
		func(c models.ServiceCategory) string { return c.Slug },
		PreserveDraft,
	)
}

func categoryFixture() []models.ServiceCategory {
	return []models.ServiceCategory{
		{Slug: "ui-ux-design", Images: []string{"p1", "p2"}},
		{Slug: "advertising", Images: []string{"p3"}},
	}
}

func TestAddCategoryImageCapAndDuplicate(t *testing.T) {
	store := &categoryMemoryStore{remote: []models.ServiceCategory{
		{Slug: "ui-ux-design", Images: []string{"p1", "p2", "p3"}},
	}}
	m := newCategoryTestManager(store)
	require.NoError(t, m.Load(context.Background()))

	AddCategoryImage(m, "ui-ux-design", "p4")
	assert.False(t, m.Dirty(), "fourth image must be ignored and leave the draft clean")

	store2 := &categoryMemoryStore{remote: categoryFixture()}
	m2 := newCategoryTestManager(store2)
	require.NoError(t, m2.Load(context.Background()))

	AddCategoryImage(m2, "ui-ux-design", "p1")
	assert.False(t, m2.Dirty(), "duplicate image must be ignored")
}

func TestAddCategoryImageOnlyTouchesTargetSlug(t *testing.T) {
	store := &categoryMemoryStore{remote: categoryFixture()}
	m := newCategoryTestManager(store)
	require.NoError(t, m.Load(context.Background()))

	AddCategoryImage(m, "advertising", "p9")
	require.True(t, m.Dirty())

	require.NoError(t, m.Commit(context.Background()))
	assert.Equal(t, []string{"advertising"}, store.writtenSlugs,
		"only the changed slug is written")
	assert.Equal(t, []string{"p3", "p9"}, store.remote[1].Images)
}

func TestRemoveCategoryImagePreservesOrder(t *testing.T) {
	store := &categoryMemoryStore{remote: []models.ServiceCategory{
		{Slug: "ui-ux-design", Images: []string{"p1", "p2", "p3"}},
	}}
	m := newCategoryTestManager(store)
	require.NoError(t, m.Load(context.Background()))

	RemoveCategoryImage(m, "ui-ux-design", "p2")

	assert.Equal(t, []string{"p1", "p3"}, m.Draft()[0].Images)
	assert.True(t, m.Dirty())
}

func TestPruneStaleIsIdempotent(t *testing.T) {
	store := &categoryMemoryStore{remote: []models.ServiceCategory{
		{Slug: "ui-ux-design", Images: []string{"p1", "gone", "p2"}},
		{Slug: "advertising", Images: []string{"p3"}},
	}}
	m := newCategoryTestManager(store)
	require.NoError(t, m.Load(context.Background()))

	live := map[string]bool{"p1": true, "p2": true, "p3": true}

	PruneStale(m, live)
	require.True(t, m.Dirty())
	assert.Equal(t, []string{"p1", "p2"}, m.Draft()[0].Images,
		"surviving images keep their order")
	assert.Equal(t, []string{"p3"}, m.Draft()[1].Images)

	first := m.Draft()
	PruneStale(m, live)
	assert.Equal(t, first, m.Draft(), "second prune against the same live set changes nothing")
}

func TestPruneStaleNoOpLeavesDraftClean(t *testing.T) {
	store := &categoryMemoryStore{remote: categoryFixture()}
	m := newCategoryTestManager(store)
	require.NoError(t, m.Load(context.Background()))

	PruneStale(m, map[string]bool{"p1": true, "p2": true, "p3": true})

	assert.False(t, m.Dirty(), "a draft with nothing to prune must stay clean")
}
