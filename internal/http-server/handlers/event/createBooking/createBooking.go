package createBooking

import (
	"bookmyslot/internal/http-server/middleware/viewertz"
	"bookmyslot/internal/lib/logger/sl"
	"bookmyslot/internal/models"
	"bookmyslot/internal/views"
	"bookmyslot/internal/web"
	"context"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"log/slog"
	"net/http"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	CreateBooking(ctx context.Context, eventID, slotID string, attendee models.Attendee) (*models.Booking, error)
	GetEvent(ctx context.Context, id string) (*models.EventDetail, error)
}

// New books a slot and renders the event again so the slot lists reflect the
// new booking counts.
func New(log *slog.Logger, bookingCreator BookingCreator, renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createBooking.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		conv := viewertz.Converter(r.Context())

		eventID := chi.URLParam(r, "id")
		if _, err := uuid.Parse(eventID); err != nil {
			log.Warn("invalid event id format", slog.String("event_id", eventID), sl.Err(err))
			renderer.Render(w, r, log, http.StatusBadRequest,
				web.NewPage(r, web.PageError, "Event not found", conv, views.ErrorPage("invalid event id format")))
			return
		}

		log = log.With(slog.String("event_id", eventID))

		var form views.BookingForm
		if err := render.DecodeForm(r.Body, &form); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			renderer.Render(w, r, log, http.StatusBadRequest,
				web.NewPage(r, web.PageError, "Error", conv, views.ErrorPage("failed to decode request")))
			return
		}

		slotID, attendee, bookErr := views.ValidateBooking(form)
		if bookErr != nil {
			log.Info("invalid booking form", sl.Err(bookErr))
		} else {
			log = log.With(slog.String("slot_id", slotID))

			_, bookErr = bookingCreator.CreateBooking(r.Context(), eventID, slotID, attendee)
			if bookErr != nil {
				if web.Abandoned(r, bookErr) {
					log.Info("viewer left before the booking completed")
					return
				}
				log.Error("failed to book slot", sl.Err(bookErr))
			} else {
				log.Info("slot booked successfully")
			}
		}

		detail, err := bookingCreator.GetEvent(r.Context(), eventID)
		if err != nil {
			if web.Abandoned(r, err) {
				log.Info("viewer left before the event arrived")
				return
			}

			log.Error("failed to refresh event", sl.Err(err))
			status, msg := web.StatusFor(err, "Failed to load event")
			renderer.Render(w, r, log, status, web.NewPage(r, web.PageError, "Error", conv, views.ErrorPage(msg)))
			return
		}

		state, err := views.LoadDetail(detail, conv)
		if err != nil {
			log.Error("failed to build event page", sl.Err(err))
			status, msg := web.StatusFor(err, "Failed to load event")
			renderer.Render(w, r, log, status, web.NewPage(r, web.PageError, "Error", conv, views.ErrorPage(msg)))
			return
		}

		status := http.StatusOK
		if bookErr != nil {
			var msg string
			status, msg = web.StatusFor(bookErr, "Failed to book time slot")
			state = views.WithNotice(views.WithForm(state, form), views.Failure(msg))
		} else {
			state = views.WithNotice(state, views.Success("Booking successful!"))
		}

		renderer.Render(w, r, log, status, web.NewPage(r, web.PageDetail, detail.Event.Title, conv, state))
	}
}
