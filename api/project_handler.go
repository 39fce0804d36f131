package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/studiomezzo/studio-site-backend/errs"
	"github.com/studiomezzo/studio-site-backend/models"
)

// maxUploadSize caps the multipart body of a project upload.
const maxUploadSize = 10 * 1024 * 1024

type projectStore interface {
	FindAll(ctx context.Context) ([]*models.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Add(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, orderedIDs []uuid.UUID) error
}

// uploader is the slice of the object store the handler needs.
type uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  projectStore
	uploader  uploader
}

func newProjectHandler(projects projectStore, uploader uploader) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		uploader:  uploader,
	}
}

// ProjectCollection wraps the ordered project list
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Total    int               `json:"total"`
}

// getAllProjects retrieves all projects ordered by display position
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		if projects == nil {
			projects = []*models.Project{}
		}

		h.responder.WriteJSON(w, ProjectCollection{Projects: projects, Total: len(projects)})
	}
}

// getProject retrieves a specific project by ID
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.parseProjectID(w, r)
		if !ok {
			return
		}

		project, err := h.projects.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject ingests the admin upload form: metadata fields plus the
// image file, which goes to object storage before the record is created.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		title := strings.TrimSpace(r.FormValue("title"))
		if title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}

		description := strings.TrimSpace(r.FormValue("description"))
		if description == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("description"))
			return
		}

		categories := splitCategories(r.FormValue("categories"))
		if len(categories) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("categories"))
			return
		}
		for _, c := range categories {
			if !models.IsKnownCategory(c) {
				h.responder.WriteError(w, errs.NewInvalidFieldError("categories", "unknown category "+c))
				return
			}
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("image"))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			h.responder.WriteError(w, errs.NewInvalidFieldError("image", "file must be an image"))
			return
		}

		id := uuid.New()
		key := "projects/" + id.String() + strings.ToLower(path.Ext(header.Filename))
		imageURL, err := h.uploader.Upload(r.Context(), key, contentType, file)
		if err != nil {
			h.logger.Error().Err(err).Str("key", key).Msg("Failed to upload project image")
			h.responder.WriteError(w, err)
			return
		}

		project := models.Project{
			ID:            id,
			Title:         title,
			TitleEn:       optionalFormValue(r, "title_en"),
			Categories:    categories,
			Description:   description,
			DescriptionEn: optionalFormValue(r, "description_en"),
			ImageURL:      imageURL,
			Link:          optionalFormValue(r, "link"),
		}

		if err := h.projects.Add(r.Context(), &project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

// updateProject replaces all fields of an existing project
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.parseProjectID(w, r)
		if !ok {
			return
		}

		existing, err := h.projects.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		var project models.Project
		if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if strings.TrimSpace(project.Title) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if len(project.Categories) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("categories"))
			return
		}
		for _, c := range project.Categories {
			if !models.IsKnownCategory(c) {
				h.responder.WriteError(w, errs.NewInvalidFieldError("categories", "unknown category "+c))
				return
			}
		}

		// The order position is owned by the reorder endpoint; a field
		// update never moves the project.
		project.ID = projectID
		project.OrderPosition = existing.OrderPosition
		project.CreatedAt = existing.CreatedAt

		if err := h.projects.Update(r.Context(), &project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by ID. Hero configs and service
// categories that reference it are left alone; their stale ids are cleaned
// up by the prune endpoint.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.parseProjectID(w, r)
		if !ok {
			return
		}

		if _, err := h.projects.FindByID(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		if err := h.projects.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteJSON(w, StatusResponse{
			Status:  "success",
			Message: "project deleted successfully",
		})
	}
}

// ReorderRequest carries the full ordered id list for the project set
type ReorderRequest struct {
	Order []uuid.UUID `json:"order"`
}

// reorderProjects rewrites the display order from the full ordered id list.
// Ids that vanished between building the list and applying it are skipped.
func (h projectHandler) reorderProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReorderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if len(req.Order) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("order"))
			return
		}

		if err := h.projects.Reorder(r.Context(), req.Order); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("reorder", "projects", err))
			return
		}

		h.responder.WriteJSON(w, StatusResponse{
			Status:  "success",
			Message: "projects reordered successfully",
		})
	}
}

func (h projectHandler) parseProjectID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		h.responder.WriteError(w, errs.NewMissingRequiredFieldError("projectID"))
		return uuid.Nil, false
	}

	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewInvalidFieldError("projectID", "must be a valid UUID"))
		return uuid.Nil, false
	}
	return projectID, true
}

func splitCategories(raw string) []string {
	parts := strings.Split(raw, ",")
	categories := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			categories = append(categories, trimmed)
		}
	}
	return categories
}

func optionalFormValue(r *http.Request, field string) *string {
	value := strings.TrimSpace(r.FormValue(field))
	if value == "" {
		return nil
	}
	return &value
}
