package models

import "time"

// MaxCategoryImages caps how many example projects a service category can
// showcase on the public services page.
const MaxCategoryImages = 3

// ServiceCategorySlugs is the fixed marketing taxonomy. Rows for these slugs
// are seeded at startup; no other slugs are accepted.
var ServiceCategorySlugs = []string{
	"ui-ux-design",
	"project-management",
	"advertising",
	"social-media-design",
}

// ServiceCategory maps a taxonomy slug to up to three example project ids.
// Project deletion does not cascade here: ids can go stale and are cleaned
// up explicitly by the admin prune operation.
type ServiceCategory struct {
	Slug      string    `json:"slug" db:"slug" gorm:"type:text;primaryKey;not null"`
	Images    []string  `json:"images" db:"images" gorm:"type:jsonb;serializer:json;not null"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// IsKnownServiceCategory reports whether slug belongs to the fixed taxonomy.
func IsKnownServiceCategory(slug string) bool {
	for _, s := range ServiceCategorySlugs {
		if s == slug {
			return true
		}
	}
	return false
}

// PruneImages returns a copy of images with every id missing from live
// removed, preserving the order of the remainder. Pruning an already-pruned
// list against the same live set returns the same result.
func PruneImages(images []string, live map[string]bool) []string {
	pruned := make([]string, 0, len(images))
	for _, id := range images {
		if live[id] {
			pruned = append(pruned, id)
		}
	}
	return pruned
}
