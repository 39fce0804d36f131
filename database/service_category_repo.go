package database

import (
	"context"

	"github.com/studiomezzo/studio-site-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ServiceCategoryRepo struct {
	db *gorm.DB
}

func NewServiceCategoryRepo(db *gorm.DB) *ServiceCategoryRepo {
	return &ServiceCategoryRepo{db}
}

// FindAll returns every category row in taxonomy order
func (r *ServiceCategoryRepo) FindAll(ctx context.Context) ([]*models.ServiceCategory, error) {
	var categories []*models.ServiceCategory
	if err := r.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}

	bySlug := make(map[string]*models.ServiceCategory, len(categories))
	for _, c := range categories {
		bySlug[c.Slug] = c
	}

	ordered := make([]*models.ServiceCategory, 0, len(models.ServiceCategorySlugs))
	for _, slug := range models.ServiceCategorySlugs {
		if c, ok := bySlug[slug]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

// FindBySlug returns one category row
func (r *ServiceCategoryRepo) FindBySlug(ctx context.Context, slug string) (*models.ServiceCategory, error) {
	var category models.ServiceCategory
	err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateImages sets the example-project id list for one slug
func (r *ServiceCategoryRepo) UpdateImages(ctx context.Context, slug string, images []string) error {
	if images == nil {
		images = []string{}
	}
	return r.db.WithContext(ctx).Model(&models.ServiceCategory{}).
		Where("slug = ?", slug).
		Update("images", images).Error
}

// EnsureDefaults seeds a row with an empty image list for every slug in the
// fixed taxonomy that does not exist yet.
func (r *ServiceCategoryRepo) EnsureDefaults(ctx context.Context) error {
	for _, slug := range models.ServiceCategorySlugs {
		category := models.ServiceCategory{Slug: slug, Images: []string{}}
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&category).Error
		if err != nil {
			return err
		}
	}
	return nil
}
