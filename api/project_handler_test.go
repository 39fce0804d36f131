package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiomezzo/studio-site-backend/models"
)

type fakeUploader struct {
	keys      []string
	uploadErr error
}

func (u *fakeUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if u.uploadErr != nil {
		return "", u.uploadErr
	}
	u.keys = append(u.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func multipartProjectBody(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}

	if withImage {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="image"; filename="cover.webp"`)
		header.Set("Content-Type", "image/webp")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("not really an image"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestCreateProject(t *testing.T) {
	store := &fakeProjectStore{}
	uploads := &fakeUploader{}
	h := newProjectHandler(store, uploads)

	body, contentType := multipartProjectBody(t, map[string]string{
		"title":       "Rebrand Atelier",
		"description": "Identità visiva completa",
		"categories":  "branding, web-development",
	}, true)

	req := httptest.NewRequest(http.MethodPost, "/project", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.createProject().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, store.projects, 1)
	created := store.projects[0]
	assert.Equal(t, "Rebrand Atelier", created.Title)
	assert.Equal(t, []string{"branding", "web-development"}, created.Categories)
	require.Len(t, uploads.keys, 1)
	assert.Equal(t, "https://cdn.example.com/"+uploads.keys[0], created.ImageURL)
}

func TestCreateProjectRequiresImage(t *testing.T) {
	store := &fakeProjectStore{}
	h := newProjectHandler(store, &fakeUploader{})

	body, contentType := multipartProjectBody(t, map[string]string{
		"title":       "Senza immagine",
		"description": "desc",
		"categories":  "web-development",
	}, false)

	req := httptest.NewRequest(http.MethodPost, "/project", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.createProject().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.projects)
}

func TestCreateProjectRejectsUnknownCategory(t *testing.T) {
	h := newProjectHandler(&fakeProjectStore{}, &fakeUploader{})

	body, contentType := multipartProjectBody(t, map[string]string{
		"title":       "Categoria ignota",
		"description": "desc",
		"categories":  "sculpture",
	}, true)

	req := httptest.NewRequest(http.MethodPost, "/project", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.createProject().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProjectUploadFailureSkipsPersist(t *testing.T) {
	store := &fakeProjectStore{}
	h := newProjectHandler(store, &fakeUploader{uploadErr: errors.New("bucket unreachable")})

	body, contentType := multipartProjectBody(t, map[string]string{
		"title":       "Upload rotto",
		"description": "desc",
		"categories":  "web-development",
	}, true)

	req := httptest.NewRequest(http.MethodPost, "/project", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.createProject().ServeHTTP(rec, req)

	assert.NotEqual(t, http.StatusCreated, rec.Code)
	assert.Empty(t, store.projects, "record must not exist without its image")
}

func TestUpdateProjectPreservesOrderPosition(t *testing.T) {
	existing := &models.Project{
		ID:            uuid.New(),
		Title:         "Originale",
		Categories:    []string{"web-development"},
		OrderPosition: 4,
	}
	store := &fakeProjectStore{projects: []*models.Project{existing}}
	h := newProjectHandler(store, &fakeUploader{})

	payload, err := json.Marshal(models.Project{
		Title:         "Rinominato",
		Description:   "desc",
		Categories:    []string{"web-development"},
		OrderPosition: 0,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/project/"+existing.ID.String(), bytes.NewReader(payload))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("projectID", existing.ID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	h.updateProject().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Rinominato", updated.Title)
	assert.Equal(t, 4, updated.OrderPosition, "field updates never move the project")
}

func TestReorderProjectsRequiresOrder(t *testing.T) {
	h := newProjectHandler(&fakeProjectStore{}, &fakeUploader{})

	req := httptest.NewRequest(http.MethodPut, "/projects/reorder", bytes.NewReader([]byte(`{"order":[]}`)))
	rec := httptest.NewRecorder()
	h.reorderProjects().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteProjectUnknownID(t *testing.T) {
	h := newProjectHandler(&fakeProjectStore{}, &fakeUploader{})

	id := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/project/"+id.String(), nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("projectID", id.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	h.deleteProject().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
