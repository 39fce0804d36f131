package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiomezzo/studio-site-backend/errs"
	"github.com/studiomezzo/studio-site-backend/models"
)

type fakeCategoryStore struct {
	categories []*models.ServiceCategory
	updates    []string
}

func (s *fakeCategoryStore) FindAll(ctx context.Context) ([]*models.ServiceCategory, error) {
	return s.categories, nil
}

func (s *fakeCategoryStore) FindBySlug(ctx context.Context, slug string) (*models.ServiceCategory, error) {
	for _, c := range s.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, errs.NewNotFound("service category")
}

func (s *fakeCategoryStore) UpdateImages(ctx context.Context, slug string, images []string) error {
	s.updates = append(s.updates, slug)
	for _, c := range s.categories {
		if c.Slug == slug {
			c.Images = images
		}
	}
	return nil
}

func putCategoryImages(t *testing.T, h categoryHandler, slug string, images []string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(CategoryImagesRequest{Images: images})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/service-category/"+slug, bytes.NewReader(payload))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", slug)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	h.updateCategoryImages().ServeHTTP(rec, req)
	return rec
}

func TestUpdateCategoryImages(t *testing.T) {
	projects := liveProjects(2)
	categories := &fakeCategoryStore{categories: []*models.ServiceCategory{
		{Slug: "ui-ux-design", Images: []string{}},
	}}
	h := newCategoryHandler(categories, projects)

	images := []string{projects.projects[0].ID.String(), projects.projects[1].ID.String()}
	rec := putCategoryImages(t, h, "ui-ux-design", images)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"ui-ux-design"}, categories.updates)
	assert.Equal(t, images, categories.categories[0].Images)
}

func TestUpdateCategoryImagesRejectsUnknownSlug(t *testing.T) {
	h := newCategoryHandler(&fakeCategoryStore{}, liveProjects(0))

	rec := putCategoryImages(t, h, "branding", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCategoryImagesEnforcesCap(t *testing.T) {
	projects := liveProjects(4)
	categories := &fakeCategoryStore{categories: []*models.ServiceCategory{
		{Slug: "advertising"},
	}}
	h := newCategoryHandler(categories, projects)

	var images []string
	for _, p := range projects.projects {
		images = append(images, p.ID.String())
	}

	rec := putCategoryImages(t, h, "advertising", images)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, categories.updates)
}

func TestUpdateCategoryImagesRejectsDeadReference(t *testing.T) {
	categories := &fakeCategoryStore{categories: []*models.ServiceCategory{
		{Slug: "advertising"},
	}}
	h := newCategoryHandler(categories, liveProjects(0))

	rec := putCategoryImages(t, h, "advertising", []string{uuid.New().String()})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPruneCategories(t *testing.T) {
	projects := liveProjects(1)
	live := projects.projects[0].ID.String()
	stale := uuid.New().String()

	categories := &fakeCategoryStore{categories: []*models.ServiceCategory{
		{Slug: "ui-ux-design", Images: []string{live, stale}},
		{Slug: "advertising", Images: []string{live}},
	}}
	h := newCategoryHandler(categories, projects)

	req := httptest.NewRequest(http.MethodPost, "/service-categories/prune", nil)
	rec := httptest.NewRecorder()
	h.pruneCategories().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result PruneResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, map[string]int{"ui-ux-design": 1}, result.Removed)
	assert.Equal(t, []string{"ui-ux-design"}, categories.updates,
		"untouched categories are not rewritten")
	assert.Equal(t, []string{live}, categories.categories[0].Images)
}

func TestPruneCategoriesIdempotent(t *testing.T) {
	projects := liveProjects(1)
	live := projects.projects[0].ID.String()

	categories := &fakeCategoryStore{categories: []*models.ServiceCategory{
		{Slug: "ui-ux-design", Images: []string{live, uuid.New().String()}},
	}}
	h := newCategoryHandler(categories, projects)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/service-categories/prune", nil)
		rec := httptest.NewRecorder()
		h.pruneCategories().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, []string{"ui-ux-design"}, categories.updates,
		"second prune finds nothing to remove")
	assert.Equal(t, []string{live}, categories.categories[0].Images)
}
