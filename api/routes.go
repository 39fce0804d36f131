package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes splits the surface in two: the public site endpoints and the
// token-gated admin area.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Get("/hero-projects", handlers.heroHandler.getHeroProjects())
		r.Get("/service-categories", handlers.categoryHandler.getServiceCategories())

		r.Post("/booking", handlers.bookingHandler.createBooking())
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/project", handlers.projectHandler.createProject())
		r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())
		r.Put("/projects/reorder", handlers.projectHandler.reorderProjects())

		r.Put("/hero-projects", handlers.heroHandler.replaceHeroProjects())

		r.Put("/service-category/{slug}", handlers.categoryHandler.updateCategoryImages())
		r.Post("/service-categories/prune", handlers.categoryHandler.pruneCategories())

		r.Get("/bookings", handlers.bookingHandler.getAllBookings())
		r.Delete("/booking/{bookingID}", handlers.bookingHandler.deleteBooking())
		r.Delete("/bookings", handlers.bookingHandler.deleteBookings())
	})
}
