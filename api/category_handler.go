package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/studiomezzo/studio-site-backend/errs"
	"github.com/studiomezzo/studio-site-backend/models"
)

type categoryStore interface {
	FindAll(ctx context.Context) ([]*models.ServiceCategory, error)
	FindBySlug(ctx context.Context, slug string) (*models.ServiceCategory, error)
	UpdateImages(ctx context.Context, slug string, images []string) error
}

type categoryHandler struct {
	responder  Responder
	logger     zerolog.Logger
	categories categoryStore
	projects   projectStore
}

func newCategoryHandler(categories categoryStore, projects projectStore) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		categories: categories,
		projects:   projects,
	}
}

// CategoryImagesRequest sets the example-project list for one slug
type CategoryImagesRequest struct {
	Images []string `json:"images"`
}

// CategoryCollection wraps all category rows in taxonomy order
type CategoryCollection struct {
	Categories []*models.ServiceCategory `json:"categories"`
	Total      int                       `json:"total"`
}

// PruneResult reports, per slug, how many stale ids were removed
type PruneResult struct {
	Removed map[string]int `json:"removed"`
	Total   int            `json:"total"`
}

// getServiceCategories retrieves every category row
func (h categoryHandler) getServiceCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categories.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find categories", "service categories", err))
			return
		}

		h.responder.WriteJSON(w, CategoryCollection{Categories: categories, Total: len(categories)})
	}
}

// updateCategoryImages sets up to three example projects for one slug.
// Referenced projects must exist at write time; references only go stale
// later, through deletion, and are cleaned by pruneCategories.
func (h categoryHandler) updateCategoryImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if !models.IsKnownServiceCategory(slug) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("slug", "unknown service category "+slug))
			return
		}

		var req CategoryImagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if len(req.Images) > models.MaxCategoryImages {
			h.responder.WriteError(w, errs.NewInvalidFieldError("images",
				fmt.Sprintf("at most %d images are allowed", models.MaxCategoryImages)))
			return
		}

		for _, id := range req.Images {
			projectID, err := uuid.Parse(id)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("images", "invalid project id "+id))
				return
			}
			if _, err := h.projects.FindByID(r.Context(), projectID); err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("images",
					fmt.Sprintf("project %s does not exist", id)))
				return
			}
		}

		if err := h.categories.UpdateImages(r.Context(), slug, req.Images); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "service category", err))
			return
		}

		category, err := h.categories.FindBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find category", "service category", err))
			return
		}

		h.responder.WriteJSON(w, category)
	}
}

// pruneCategories removes ids that no longer reference a live project from
// every category, preserving the order of what remains.
func (h categoryHandler) pruneCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		live := make(map[string]bool, len(projects))
		for _, p := range projects {
			live[p.ID.String()] = true
		}

		categories, err := h.categories.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find categories", "service categories", err))
			return
		}

		result := PruneResult{Removed: make(map[string]int)}
		for _, category := range categories {
			pruned := models.PruneImages(category.Images, live)
			removed := len(category.Images) - len(pruned)
			if removed == 0 {
				continue
			}

			if err := h.categories.UpdateImages(r.Context(), category.Slug, pruned); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update", "service category", err))
				return
			}

			h.logger.Info().
				Str("slug", category.Slug).
				Int("removed", removed).
				Msg("Pruned stale category images")
			result.Removed[category.Slug] = removed
			result.Total += removed
		}

		h.responder.WriteJSON(w, result)
	}
}
