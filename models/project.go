package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectCategories is the fixed vocabulary a project can be tagged with.
// The frontend filter bar and the admin upload form both draw from this list.
var ProjectCategories = []string{
	"ui-ux-design",
	"project-management",
	"advertising",
	"social-media-design",
	"branding",
	"web-development",
}

// Project represents a portfolio project shown on the public site and
// managed from the admin dashboard.
type Project struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title         string    `json:"title" db:"title" gorm:"type:text;not null"`
	TitleEn       *string   `json:"title_en,omitempty" db:"title_en" gorm:"type:text"`
	Categories    []string  `json:"categories" db:"categories" gorm:"type:jsonb;serializer:json;not null"`
	Description   string    `json:"description" db:"description" gorm:"type:text;not null"`
	DescriptionEn *string   `json:"description_en,omitempty" db:"description_en" gorm:"type:text"`
	ImageURL      string    `json:"image_url" db:"image_url" gorm:"type:text;not null"`
	Link          *string   `json:"link,omitempty" db:"link" gorm:"type:text"`
	OrderPosition int       `json:"order_position" db:"order_position" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// IsKnownCategory reports whether value belongs to the fixed category vocabulary.
func IsKnownCategory(value string) bool {
	for _, c := range ProjectCategories {
		if c == value {
			return true
		}
	}
	return false
}
