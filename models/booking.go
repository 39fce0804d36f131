package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceOther is the sentinel service value that requires the submitter to
// spell out what they actually need in CustomService.
const ServiceOther = "altro"

// BookingServices is the fixed vocabulary of the public booking form.
var BookingServices = []string{
	"sito web",
	"ui-ux design",
	"logo e branding",
	"social media design",
	"advertising",
	ServiceOther,
}

// ContactMethods enumerates how the studio may reach back to a lead.
var ContactMethods = []string{"email", "phone", "whatsapp"}

// Booking is an immutable lead record created by the public booking form.
// It is never updated, only deleted (singly or in bulk) from the admin area.
//
// Older records carry a single Service value instead of the Services list;
// ResolveServices folds the two shapes into one at read time so nothing
// downstream has to branch on the legacy column.
type Booking struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name          string    `json:"name" db:"name" gorm:"type:text;not null"`
	Surname       string    `json:"surname" db:"surname" gorm:"type:text;not null"`
	Email         string    `json:"email" db:"email" gorm:"type:text;not null"`
	Phone         string    `json:"phone" db:"phone" gorm:"type:text;not null"`
	Services      []string  `json:"services,omitempty" db:"services" gorm:"type:jsonb;serializer:json"`
	Service       *string   `json:"service,omitempty" db:"service" gorm:"type:text"`
	CustomService *string   `json:"custom_service,omitempty" db:"custom_service" gorm:"type:text"`
	ContactMethod string    `json:"contact_method" db:"contact_method" gorm:"type:text;not null"`
	CreatedAt     time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
}

// ServiceSelectionKind tags which shape a booking's service data arrived in.
type ServiceSelectionKind string

const (
	ServiceSelectionLegacy ServiceSelectionKind = "legacy"
	ServiceSelectionMulti  ServiceSelectionKind = "multi"
)

// ServiceSelection is the resolved form of the legacy-single / multi-select
// duality. Services always holds at least one value regardless of Kind.
type ServiceSelection struct {
	Kind     ServiceSelectionKind `json:"kind"`
	Services []string             `json:"services"`
}

// ResolveServices collapses the legacy single-service column and the current
// multi-select list into a tagged union. The multi shape wins when both are
// present; a record with neither resolves to an empty multi selection.
func (b Booking) ResolveServices() ServiceSelection {
	if len(b.Services) > 0 {
		return ServiceSelection{Kind: ServiceSelectionMulti, Services: b.Services}
	}
	if b.Service != nil && *b.Service != "" {
		return ServiceSelection{Kind: ServiceSelectionLegacy, Services: []string{*b.Service}}
	}
	return ServiceSelection{Kind: ServiceSelectionMulti, Services: []string{}}
}

// RequiresCustomService reports whether the selection includes the "altro"
// sentinel, which makes CustomService mandatory at intake.
func (s ServiceSelection) RequiresCustomService() bool {
	for _, svc := range s.Services {
		if svc == ServiceOther {
			return true
		}
	}
	return false
}

// IsKnownBookingService reports whether value belongs to the booking form
// vocabulary.
func IsKnownBookingService(value string) bool {
	for _, s := range BookingServices {
		if s == value {
			return true
		}
	}
	return false
}

// IsKnownContactMethod reports whether value is an accepted contact method.
func IsKnownContactMethod(value string) bool {
	for _, m := range ContactMethods {
		if m == value {
			return true
		}
	}
	return false
}
