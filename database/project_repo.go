package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/studiomezzo/studio-site-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects ordered by their display position
func (r *ProjectRepo) FindAll(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).Order("order_position asc").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project at the end of the display order
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPosition *int
		if err := tx.Model(&models.Project{}).
			Select("max(order_position)").
			Scan(&maxPosition).Error; err != nil {
			return err
		}

		next := 0
		if maxPosition != nil {
			next = *maxPosition + 1
		}
		project.OrderPosition = next

		return tx.Create(project).Error
	})
}

// Update saves all fields of an existing project
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete removes a project by id. Hero and service-category references to
// the id are intentionally left in place; the admin prune operation cleans
// them up.
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id).Error
}

// Reorder rewrites order_position for every live project from an ordered id
// list. Ids that no longer exist are skipped rather than rejected, so a
// reorder list recorded before a delete still applies cleanly. Live projects
// missing from the list keep their relative order after the listed ones.
// Positions come out contiguous from 0 either way.
func (r *ProjectRepo) Reorder(ctx context.Context, orderedIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var projects []*models.Project
		if err := tx.Order("order_position asc").Find(&projects).Error; err != nil {
			return err
		}

		live := make(map[uuid.UUID]*models.Project, len(projects))
		for _, p := range projects {
			live[p.ID] = p
		}

		position := 0
		assign := func(p *models.Project) error {
			err := tx.Model(&models.Project{}).
				Where("id = ?", p.ID).
				Update("order_position", position).Error
			position++
			return err
		}

		seen := make(map[uuid.UUID]bool, len(orderedIDs))
		for _, id := range orderedIDs {
			p, ok := live[id]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			if err := assign(p); err != nil {
				return err
			}
		}

		for _, p := range projects {
			if seen[p.ID] {
				continue
			}
			if err := assign(p); err != nil {
				return err
			}
		}

		return nil
	})
}
