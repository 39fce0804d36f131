package draft

import (
	"context"

	"github.com/google/uuid"

	"github.com/studiomezzo/studio-site-backend/apiclient"
	"github.com/studiomezzo/studio-site-backend/models"
)

// projectStore commits the project-reorder surface: per-id deletes followed
// by a single set-order call carrying the full ordered id list.
type projectStore struct {
	client *apiclient.Client
}

func (s projectStore) Load(ctx context.Context) ([]models.Project, error) {
	return s.client.ListProjects(ctx)
}

func (s projectStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.DeleteProject(ctx, id)
}

func (s projectStore) Write(ctx context.Context, draft, committed []models.Project) error {
	// Nothing left to order once every project was marked for deletion.
	if len(draft) == 0 {
		return nil
	}

	order := make([]uuid.UUID, 0, len(draft))
	for _, p := range draft {
		order = append(order, p.ID)
	}
	return s.client.ReorderProjects(ctx, order)
}

// NewProjectManager builds the draft manager for the admin project list.
// This surface alone discards the draft and reloads canonical state when a
// commit fails, instead of preserving it for retry. The asymmetry is
// carried over from the original product behavior on purpose.
func NewProjectManager(client *apiclient.Client) *Manager[models.Project, uuid.UUID] {
	return NewManager("projects", projectStore{client},
		func(p models.Project) uuid.UUID { return p.ID },
		ReloadOnFailure,
	)
}
