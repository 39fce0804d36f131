package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxHeroProjects caps how many projects can be featured in the landing
// animation at once. Each config owns one slide slot (position 0..2).
const MaxHeroProjects = 3

// HeroSlideCount is the number of per-slide descriptions each hero config
// carries, one per slide of the landing animation.
const HeroSlideCount = 3

// HeroProjectConfig is the per-slide presentation of a featured project.
// It references the underlying Project by id but carries its own copy and
// ordering of descriptions and images; the set is always replaced wholesale
// on save, never patched.
type HeroProjectConfig struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID       uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;uniqueIndex"`
	Descriptions    []string  `json:"descriptions" db:"descriptions" gorm:"type:jsonb;serializer:json;not null"`
	Images          []string  `json:"images" db:"images" gorm:"type:jsonb;serializer:json;not null"`
	BackgroundImage string    `json:"background_image" db:"background_image" gorm:"type:text;not null"`
	Position        int       `json:"position" db:"position" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}
