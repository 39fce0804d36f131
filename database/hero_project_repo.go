package database

import (
	"context"

	"github.com/studiomezzo/studio-site-backend/models"
	"gorm.io/gorm"
)

type HeroProjectRepo struct {
	db *gorm.DB
}

func NewHeroProjectRepo(db *gorm.DB) *HeroProjectRepo {
	return &HeroProjectRepo{db}
}

// FindAll returns the live hero configs ordered by slide position
func (r *HeroProjectRepo) FindAll(ctx context.Context) ([]*models.HeroProjectConfig, error) {
	var configs []*models.HeroProjectConfig
	err := r.db.WithContext(ctx).Order("position asc").Find(&configs).Error
	return configs, err
}

// ReplaceAll swaps the entire hero set for the desired one in a single
// transaction. There is no partial patch path: the admin save always sends
// the full list. Positions are rewritten from the list order.
func (r *HeroProjectRepo) ReplaceAll(ctx context.Context, configs []*models.HeroProjectConfig) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.HeroProjectConfig{}).Error; err != nil {
			return err
		}

		for i, cfg := range configs {
			cfg.Position = i
			if err := tx.Create(cfg).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
