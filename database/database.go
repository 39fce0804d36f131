package database

import (
	"context"

	"github.com/studiomezzo/studio-site-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	projectRepo         *ProjectRepo
	heroProjectRepo     *HeroProjectRepo
	serviceCategoryRepo *ServiceCategoryRepo
	bookingRepo         *BookingRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:         NewProjectRepo(db),
		heroProjectRepo:     NewHeroProjectRepo(db),
		serviceCategoryRepo: NewServiceCategoryRepo(db),
		bookingRepo:         NewBookingRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) HeroProjectRepo() *HeroProjectRepo {
	return d.heroProjectRepo
}

func (d Database) ServiceCategoryRepo() *ServiceCategoryRepo {
	return d.serviceCategoryRepo
}

func (d Database) BookingRepo() *BookingRepo {
	return d.bookingRepo
}

// Migrate creates or updates the tables for every entity and seeds the
// fixed service-category rows.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&models.Project{},
		&models.HeroProjectConfig{},
		&models.ServiceCategory{},
		&models.Booking{},
	); err != nil {
		return err
	}

	return NewServiceCategoryRepo(db).EnsureDefaults(ctx)
}
