package draft

import (
	"context"

	"github.com/studiomezzo/studio-site-backend/apiclient"
	"github.com/studiomezzo/studio-site-backend/models"
)

// categoryStore commits the service-category surface with one targeted PUT
// per slug whose image list actually changed.
type categoryStore struct {
	client *apiclient.Client
}

func (s categoryStore) Load(ctx context.Context) ([]models.ServiceCategory, error) {
	return s.client.ListServiceCategories(ctx)
}

func (s categoryStore) Delete(ctx context.Context, slug string) error {
	// Unreachable on this surface: the taxonomy is fixed, slugs are never
	// deleted.
	return nil
}

func (s categoryStore) Write(ctx context.Context, draft, committed []models.ServiceCategory) error {
	previous := make(map[string][]string, len(committed))
	for _, category := range committed {
		previous[category.Slug] = category.Images
	}

	for _, category := range draft {
		if sameImages(category.Images, previous[category.Slug]) {
			continue
		}
		if err := s.client.UpdateServiceCategoryImages(ctx, category.Slug, category.Images); err != nil {
			return err
		}
	}
	return nil
}

// NewCategoryManager builds the draft manager for service-category image
// curation.
func NewCategoryManager(client *apiclient.Client) *Manager[models.ServiceCategory, string] {
	return NewManager("service-categories", categoryStore{client},
		func(c models.ServiceCategory) string { return c.Slug },
		PreserveDraft,
	)
}

// AddCategoryImage assigns a project to a category's showcase. Adding a
// fourth image, or one the category already shows, is silently ignored and
// leaves the draft clean.
func AddCategoryImage(m *Manager[models.ServiceCategory, string], slug, projectID string) {
	for _, category := range m.Draft() {
		if category.Slug != slug {
			continue
		}
		if len(category.Images) >= models.MaxCategoryImages {
			return
		}
		for _, id := range category.Images {
			if id == projectID {
				return
			}
		}

		m.Apply(func(draft []models.ServiceCategory) []models.ServiceCategory {
			for i := range draft {
				if draft[i].Slug == slug {
					images := make([]string, 0, len(draft[i].Images)+1)
					images = append(images, draft[i].Images...)
					draft[i].Images = append(images, projectID)
				}
			}
			return draft
		})
		return
	}
}

// RemoveCategoryImage drops one project id from a category's showcase.
func RemoveCategoryImage(m *Manager[models.ServiceCategory, string], slug, projectID string) {
	changed := false
	for _, category := range m.Draft() {
		if category.Slug == slug {
			for _, id := range category.Images {
				if id == projectID {
					changed = true
				}
			}
		}
	}
	if !changed {
		return
	}

	m.Apply(func(draft []models.ServiceCategory) []models.ServiceCategory {
		for i := range draft {
			if draft[i].Slug != slug {
				continue
			}
			kept := make([]string, 0, len(draft[i].Images))
			for _, id := range draft[i].Images {
				if id != projectID {
					kept = append(kept, id)
				}
			}
			draft[i].Images = kept
		}
		return draft
	})
}

// PruneStale removes image ids that no longer reference a live project from
// every category in the draft, preserving the order of what remains. A
// draft that needs no pruning is left clean; pruning twice against the same
// live set changes nothing the second time.
func PruneStale(m *Manager[models.ServiceCategory, string], live map[string]bool) {
	needed := false
	for _, category := range m.Draft() {
		if len(models.PruneImages(category.Images, live)) != len(category.Images) {
			needed = true
			break
		}
	}
	if !needed {
		return
	}

	m.Apply(func(draft []models.ServiceCategory) []models.ServiceCategory {
		for i := range draft {
			draft[i].Images = models.PruneImages(draft[i].Images, live)
		}
		return draft
	})
}

func sameImages(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
