package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/studiomezzo/studio-site-backend/errs"
	"github.com/studiomezzo/studio-site-backend/models"
)

type bookingStore interface {
	Add(ctx context.Context, booking *models.Booking) error
	FindAll(ctx context.Context) ([]*models.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type bookingNotifier interface {
	Notify(ctx context.Context, booking *models.Booking) []*errs.ApiErr
}

type bookingHandler struct {
	responder Responder
	logger    zerolog.Logger
	bookings  bookingStore
	notifier  bookingNotifier
}

func newBookingHandler(bookings bookingStore, notifier bookingNotifier) bookingHandler {
	logger := log.With().Str("handlerName", "bookingHandler").Logger()

	return bookingHandler{
		responder: NewResponder(logger),
		logger:    logger,
		bookings:  bookings,
		notifier:  notifier,
	}
}

// BookingRequest is the public booking form submission
type BookingRequest struct {
	Name          string   `json:"name"`
	Surname       string   `json:"surname"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Services      []string `json:"services"`
	CustomService string   `json:"customService"`
	ContactMethod string   `json:"contactMethod"`
}

func (req BookingRequest) validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Surname, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Phone, validation.Required),
		validation.Field(&req.Services,
			validation.Required.Error("at least one service must be selected"),
			validation.Each(validation.By(knownBookingService)),
		),
		validation.Field(&req.CustomService, validation.By(req.customServiceRule)),
		validation.Field(&req.ContactMethod,
			validation.Required,
			validation.By(knownContactMethod),
		),
	)
}

// customServiceRule makes customService mandatory exactly when the "altro"
// sentinel is among the selected services.
func (req BookingRequest) customServiceRule(value interface{}) error {
	selection := models.ServiceSelection{Kind: models.ServiceSelectionMulti, Services: req.Services}
	if selection.RequiresCustomService() && strings.TrimSpace(req.CustomService) == "" {
		return validation.NewError(
			"validation_custom_service_required",
			`customService is required when services include "`+models.ServiceOther+`"`,
		)
	}
	return nil
}

func knownBookingService(value interface{}) error {
	s, _ := value.(string)
	if !models.IsKnownBookingService(s) {
		return validation.NewError("validation_unknown_service", "unknown service "+s)
	}
	return nil
}

func knownContactMethod(value interface{}) error {
	s, _ := value.(string)
	if !models.IsKnownContactMethod(s) {
		return validation.NewError("validation_unknown_contact_method", "unknown contact method "+s)
	}
	return nil
}

// BookingWithSelection pairs a stored booking with its resolved service
// selection, so admin consumers never branch on the legacy column.
type BookingWithSelection struct {
	Booking   *models.Booking         `json:"booking"`
	Selection models.ServiceSelection `json:"selection"`
}

// BookingCollection wraps all booking leads, newest first
type BookingCollection struct {
	Bookings []BookingWithSelection `json:"bookings"`
	Total    int                    `json:"total"`
}

// BulkDeleteRequest carries the ids for a bulk booking delete
type BulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// createBooking validates and persists a public submission. Persistence
// alone decides the response: the 201 is written as soon as the record
// exists, and only then do the two best-effort notifications go out. A
// failed email is logged and swallowed, never reported to the submitter.
func (h bookingHandler) createBooking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if err := req.validate(); err != nil {
			h.responder.WriteError(w, errs.NewValidationError(err))
			return
		}

		booking := models.Booking{
			Name:          strings.TrimSpace(req.Name),
			Surname:       strings.TrimSpace(req.Surname),
			Email:         strings.TrimSpace(req.Email),
			Phone:         strings.TrimSpace(req.Phone),
			Services:      req.Services,
			ContactMethod: req.ContactMethod,
		}
		if custom := strings.TrimSpace(req.CustomService); custom != "" {
			booking.CustomService = &custom
		}

		if err := h.bookings.Add(r.Context(), &booking); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create booking", "booking", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, booking)

		if swallowed := h.notifier.Notify(r.Context(), &booking); len(swallowed) > 0 {
			h.logger.Warn().
				Int("failedNotifications", len(swallowed)).
				Str("bookingId", booking.ID.String()).
				Msg("Booking persisted but notifications failed")
		}
	}
}

// getAllBookings retrieves every lead for the admin dashboard
func (h bookingHandler) getAllBookings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookings, err := h.bookings.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find bookings", "bookings", err))
			return
		}

		resolved := make([]BookingWithSelection, 0, len(bookings))
		for _, b := range bookings {
			resolved = append(resolved, BookingWithSelection{
				Booking:   b,
				Selection: b.ResolveServices(),
			})
		}

		h.responder.WriteJSON(w, BookingCollection{Bookings: resolved, Total: len(resolved)})
	}
}

// deleteBooking removes one lead by id
func (h bookingHandler) deleteBooking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingIDStr := chi.URLParam(r, "bookingID")
		bookingID, err := uuid.Parse(bookingIDStr)
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("bookingID", "must be a valid UUID"))
			return
		}

		if err := h.bookings.Delete(r.Context(), bookingID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete booking", "booking", err))
			return
		}

		h.responder.WriteJSON(w, StatusResponse{
			Status:  "success",
			Message: "booking deleted successfully",
		})
	}
}

// deleteBookings removes a batch of leads in one call
func (h bookingHandler) deleteBookings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BulkDeleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if len(req.IDs) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("ids"))
			return
		}

		deleted, err := h.bookings.DeleteMany(r.Context(), req.IDs)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete bookings", "bookings", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"status":  "success",
			"deleted": deleted,
		})
	}
}
