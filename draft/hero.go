package draft

import (
	"context"

	"github.com/google/uuid"

	"github.com/studiomezzo/studio-site-backend/apiclient"
	"github.com/studiomezzo/studio-site-backend/models"
)

// heroStore commits the hero-highlight surface with one batch replace of
// the full desired config list. Removals travel inside the draft itself,
// so the delete phase never runs here.
type heroStore struct {
	client *apiclient.Client
}

func (s heroStore) Load(ctx context.Context) ([]models.HeroProjectConfig, error) {
	return s.client.ListHeroProjects(ctx)
}

func (s heroStore) Delete(ctx context.Context, id uuid.UUID) error {
	// Unreachable on this surface: the batch replace carries removals.
	return nil
}

func (s heroStore) Write(ctx context.Context, draft, committed []models.HeroProjectConfig) error {
	configs := make([]apiclient.HeroConfig, 0, len(draft))
	for _, cfg := range draft {
		configs = append(configs, apiclient.HeroConfig{
			ProjectID:       cfg.ProjectID,
			Descriptions:    cfg.Descriptions,
			Images:          cfg.Images,
			BackgroundImage: cfg.BackgroundImage,
		})
	}
	return s.client.ReplaceHeroProjects(ctx, configs)
}

// NewHeroManager builds the draft manager for the hero-highlight surface.
func NewHeroManager(client *apiclient.Client) *Manager[models.HeroProjectConfig, uuid.UUID] {
	return NewManager("hero-projects", heroStore{client},
		func(cfg models.HeroProjectConfig) uuid.UUID { return cfg.ProjectID },
		PreserveDraft,
	)
}

// AddHero appends a new highlight to the draft. Adding beyond the
// system-wide cap, or adding a project that is already featured, is
// silently ignored and leaves the draft clean.
func AddHero(m *Manager[models.HeroProjectConfig, uuid.UUID], cfg models.HeroProjectConfig) {
	current := m.Draft()
	if len(current) >= models.MaxHeroProjects {
		return
	}
	for _, existing := range current {
		if existing.ProjectID == cfg.ProjectID {
			return
		}
	}

	m.Apply(func(draft []models.HeroProjectConfig) []models.HeroProjectConfig {
		return append(draft, cfg)
	})
}

// RemoveHero drops one highlight from the draft by project id. The removal
// is persisted by the next commit's batch replace.
func RemoveHero(m *Manager[models.HeroProjectConfig, uuid.UUID], projectID uuid.UUID) {
	found := false
	for _, existing := range m.Draft() {
		if existing.ProjectID == projectID {
			found = true
			break
		}
	}
	if !found {
		return
	}

	m.Apply(func(draft []models.HeroProjectConfig) []models.HeroProjectConfig {
		kept := make([]models.HeroProjectConfig, 0, len(draft))
		for _, cfg := range draft {
			if cfg.ProjectID != projectID {
				kept = append(kept, cfg)
			}
		}
		return kept
	})
}
