package api

import (
	"github.com/studiomezzo/studio-site-backend/database"
	"github.com/studiomezzo/studio-site-backend/services"
	"github.com/studiomezzo/studio-site-backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, objects storage.ObjectStore, notifier *services.BookingNotifier) *routeHandlers {
	return &routeHandlers{
		projectHandler:  newProjectHandler(db.ProjectRepo(), objects),
		heroHandler:     newHeroHandler(db.HeroProjectRepo(), db.ProjectRepo()),
		categoryHandler: newCategoryHandler(db.ServiceCategoryRepo(), db.ProjectRepo()),
		bookingHandler:  newBookingHandler(db.BookingRepo(), notifier),
	}
}
