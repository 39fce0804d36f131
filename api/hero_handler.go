package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/studiomezzo/studio-site-backend/errs"
	"github.com/studiomezzo/studio-site-backend/models"
)

type heroStore interface {
	FindAll(ctx context.Context) ([]*models.HeroProjectConfig, error)
	ReplaceAll(ctx context.Context, configs []*models.HeroProjectConfig) error
}

type heroHandler struct {
	responder Responder
	logger    zerolog.Logger
	heroes    heroStore
	projects  projectStore
}

func newHeroHandler(heroes heroStore, projects projectStore) heroHandler {
	logger := log.With().Str("handlerName", "heroHandler").Logger()

	return heroHandler{
		responder: NewResponder(logger),
		logger:    logger,
		heroes:    heroes,
		projects:  projects,
	}
}

// HeroConfigPayload is one desired hero slot in a batch save
type HeroConfigPayload struct {
	ProjectID       uuid.UUID `json:"project_id"`
	Descriptions    []string  `json:"descriptions"`
	Images          []string  `json:"images"`
	BackgroundImage string    `json:"background_image"`
}

// HeroBatchRequest replaces the whole hero set; there is no partial patch.
type HeroBatchRequest struct {
	Configs []HeroConfigPayload `json:"configs"`
}

// HeroCollection wraps the live hero configs ordered by slide position
type HeroCollection struct {
	Configs []*models.HeroProjectConfig `json:"configs"`
	Total   int                         `json:"total"`
}

func (p HeroConfigPayload) validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ProjectID, validation.By(requiredProjectID)),
		validation.Field(&p.Descriptions,
			validation.Required,
			validation.Length(models.HeroSlideCount, models.HeroSlideCount).
				Error(fmt.Sprintf("exactly %d descriptions are required, one per slide", models.HeroSlideCount)),
		),
		validation.Field(&p.Images,
			validation.Required.Error("at least one image is required"),
		),
		validation.Field(&p.BackgroundImage, validation.Required),
	)
}

// requiredProjectID rejects the zero uuid, which ozzo's emptiness check
// does not catch on a [16]byte array.
func requiredProjectID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("validation_required", "project_id is required")
	}
	return nil
}

// getHeroProjects retrieves the live hero configs
func (h heroHandler) getHeroProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		configs, err := h.heroes.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find hero configs", "hero projects", err))
			return
		}

		if configs == nil {
			configs = []*models.HeroProjectConfig{}
		}

		h.responder.WriteJSON(w, HeroCollection{Configs: configs, Total: len(configs)})
	}
}

// replaceHeroProjects swaps the entire hero set for the submitted one.
// The request carries the full desired list: at most three configs, each
// referencing a distinct live project.
func (h heroHandler) replaceHeroProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req HeroBatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if len(req.Configs) > models.MaxHeroProjects {
			h.responder.WriteError(w, errs.NewInvalidFieldError("configs",
				fmt.Sprintf("at most %d hero projects are allowed", models.MaxHeroProjects)))
			return
		}

		seen := make(map[uuid.UUID]bool, len(req.Configs))
		configs := make([]*models.HeroProjectConfig, 0, len(req.Configs))
		for i, payload := range req.Configs {
			if err := payload.validate(); err != nil {
				h.responder.WriteError(w, errs.NewValidationError(err))
				return
			}

			if seen[payload.ProjectID] {
				h.responder.WriteError(w, errs.NewInvalidFieldError("project_id",
					fmt.Sprintf("project %s appears more than once", payload.ProjectID)))
				return
			}
			seen[payload.ProjectID] = true

			if _, err := h.projects.FindByID(r.Context(), payload.ProjectID); err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("project_id",
					fmt.Sprintf("project %s does not exist", payload.ProjectID)))
				return
			}

			configs = append(configs, &models.HeroProjectConfig{
				ProjectID:       payload.ProjectID,
				Descriptions:    payload.Descriptions,
				Images:          payload.Images,
				BackgroundImage: payload.BackgroundImage,
				Position:        i,
			})
		}

		if err := h.heroes.ReplaceAll(r.Context(), configs); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("replace", "hero projects", err))
			return
		}

		saved, err := h.heroes.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find hero configs", "hero projects", err))
			return
		}

		h.responder.WriteJSON(w, HeroCollection{Configs: saved, Total: len(saved)})
	}
}
