package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler  projectHandler
	heroHandler     heroHandler
	categoryHandler categoryHandler
	bookingHandler  bookingHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// StatusResponse is the envelope for mutations that return no entity
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
