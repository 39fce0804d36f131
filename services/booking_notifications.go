package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/studiomezzo/studio-site-backend/config"
	"github.com/studiomezzo/studio-site-backend/errs"
	"github.com/studiomezzo/studio-site-backend/models"
)

// BookingNotifier sends the two best-effort emails that follow a persisted
// booking: a confirmation to the client and an alert to the studio inbox.
// Every send failure is logged with EMAIL_ERROR context and swallowed; the
// booking endpoint's response never depends on email delivery.
type BookingNotifier struct {
	mailer     Mailer
	adminEmail string
	logger     zerolog.Logger
}

func NewBookingNotifier(mailer Mailer, cfg map[string]string) *BookingNotifier {
	return &BookingNotifier{
		mailer:     mailer,
		adminEmail: config.GetString(cfg, "ADMIN_NOTIFICATION_EMAIL", ""),
		logger:     log.With().Str("component", "bookingNotifier").Logger(),
	}
}

// Notify attempts both notifications independently and returns the errors
// it swallowed, already logged, so callers (and tests) can count them.
func (n *BookingNotifier) Notify(ctx context.Context, booking *models.Booking) []*errs.ApiErr {
	var swallowed []*errs.ApiErr

	subject, html := clientConfirmation(booking)
	if err := n.mailer.Send(ctx, []string{booking.Email}, subject, html); err != nil {
		emailErr := errs.NewEmailError(booking.Email, err)
		n.logger.Error().
			Str("kind", errs.KindEmail).
			Str("recipient", booking.Email).
			Err(err).
			Msg("Failed to send client confirmation")
		swallowed = append(swallowed, emailErr)
	}

	if n.adminEmail != "" {
		subject, html = adminAlert(booking)
		if err := n.mailer.Send(ctx, []string{n.adminEmail}, subject, html); err != nil {
			emailErr := errs.NewEmailError(n.adminEmail, err)
			n.logger.Error().
				Str("kind", errs.KindEmail).
				Str("recipient", n.adminEmail).
				Err(err).
				Msg("Failed to send admin alert")
			swallowed = append(swallowed, emailErr)
		}
	}

	return swallowed
}

func clientConfirmation(booking *models.Booking) (subject, html string) {
	subject = "Abbiamo ricevuto la tua richiesta"
	html = fmt.Sprintf(
		"<p>Ciao %s,</p><p>grazie per averci contattato. Ti risponderemo al più presto via %s.</p>",
		booking.Name, booking.ContactMethod,
	)
	return subject, html
}

func adminAlert(booking *models.Booking) (subject, html string) {
	selection := booking.ResolveServices()
	services := strings.Join(selection.Services, ", ")
	if booking.CustomService != nil && *booking.CustomService != "" {
		services = services + " (" + *booking.CustomService + ")"
	}

	subject = fmt.Sprintf("Nuova richiesta da %s %s", booking.Name, booking.Surname)
	html = fmt.Sprintf(
		"<p>Nuova richiesta di preventivo.</p><ul><li>Nome: %s %s</li><li>Email: %s</li><li>Telefono: %s</li><li>Servizi: %s</li><li>Contatto preferito: %s</li></ul>",
		booking.Name, booking.Surname, booking.Email, booking.Phone, services, booking.ContactMethod,
	)
	return subject, html
}
