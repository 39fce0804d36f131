package apiclient

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/studiomezzo/studio-site-backend/models"
)

type projectList struct {
	Projects []models.Project `json:"projects"`
}

type heroList struct {
	Configs []models.HeroProjectConfig `json:"configs"`
}

type categoryList struct {
	Categories []models.ServiceCategory `json:"categories"`
}

type reorderRequest struct {
	Order []uuid.UUID `json:"order"`
}

// HeroConfig is the wire shape of one desired hero slot in a batch save.
type HeroConfig struct {
	ProjectID       uuid.UUID `json:"project_id"`
	Descriptions    []string  `json:"descriptions"`
	Images          []string  `json:"images"`
	BackgroundImage string    `json:"background_image"`
}

type heroBatchRequest struct {
	Configs []HeroConfig `json:"configs"`
}

type categoryImagesRequest struct {
	Images []string `json:"images"`
}

// ListProjects returns all projects in display order.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var out projectList
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &out); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

// UpdateProject replaces all fields of one project.
func (c *Client) UpdateProject(ctx context.Context, project models.Project) error {
	return c.do(ctx, http.MethodPut, "/project/"+project.ID.String(), project, nil)
}

// DeleteProject removes one project by id.
func (c *Client) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/project/"+id.String(), nil, nil)
}

// ReorderProjects persists the full display order in a single call.
func (c *Client) ReorderProjects(ctx context.Context, order []uuid.UUID) error {
	return c.do(ctx, http.MethodPut, "/projects/reorder", reorderRequest{Order: order}, nil)
}

// ListHeroProjects returns the live hero configs ordered by slide position.
func (c *Client) ListHeroProjects(ctx context.Context) ([]models.HeroProjectConfig, error) {
	var out heroList
	if err := c.do(ctx, http.MethodGet, "/hero-projects", nil, &out); err != nil {
		return nil, err
	}
	return out.Configs, nil
}

// ReplaceHeroProjects swaps the whole hero set for the desired one.
func (c *Client) ReplaceHeroProjects(ctx context.Context, configs []HeroConfig) error {
	if configs == nil {
		configs = []HeroConfig{}
	}
	return c.do(ctx, http.MethodPut, "/hero-projects", heroBatchRequest{Configs: configs}, nil)
}

// ListServiceCategories returns every category row in taxonomy order.
func (c *Client) ListServiceCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	var out categoryList
	if err := c.do(ctx, http.MethodGet, "/service-categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// UpdateServiceCategoryImages sets the example-project list for one slug.
func (c *Client) UpdateServiceCategoryImages(ctx context.Context, slug string, images []string) error {
	if images == nil {
		images = []string{}
	}
	return c.do(ctx, http.MethodPut, "/service-category/"+slug, categoryImagesRequest{Images: images}, nil)
}
