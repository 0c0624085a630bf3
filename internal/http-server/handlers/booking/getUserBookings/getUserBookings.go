package getUserBookings

import (
	"bookmyslot/internal/http-server/middleware/viewertz"
	"bookmyslot/internal/lib/logger/sl"
	"bookmyslot/internal/models"
	"bookmyslot/internal/views"
	"bookmyslot/internal/web"
	"context"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

const (
	pageTitle = "My Bookings"

	// EmailParam lets a GET link straight to a search result.
	EmailParam = "email"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingsGetter
type BookingsGetter interface {
	ListBookingsByEmail(ctx context.Context, email string) ([]models.Booking, error)
}

func New(log *slog.Logger, bookingsGetter BookingsGetter, renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.getUserBookings.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		conv := viewertz.Converter(r.Context())
		state := views.NewLookup()

		var email string
		switch r.Method {
		case http.MethodPost:
			var form views.LookupForm
			if err := render.DecodeForm(r.Body, &form); err != nil {
				log.Error("failed to decode request body", sl.Err(err))
				state.Notice = views.Failure("failed to decode request")
				renderer.Render(w, r, log, http.StatusBadRequest, web.NewPage(r, web.PageBookings, pageTitle, conv, state))
				return
			}
			email = form.Email
		default:
			q := r.URL.Query()
			if !q.Has(EmailParam) {
				renderer.Render(w, r, log, http.StatusOK, web.NewPage(r, web.PageBookings, pageTitle, conv, state))
				return
			}
			email = q.Get(EmailParam)
		}

		addr, err := views.ValidateLookup(email)
		if err != nil {
			log.Info("invalid lookup", sl.Err(err))
			state = views.ChangeEmail(state, email)
			status, msg := web.StatusFor(err, "Failed to fetch bookings")
			state.Notice = views.Failure(msg)
			renderer.Render(w, r, log, status, web.NewPage(r, web.PageBookings, pageTitle, conv, state))
			return
		}

		state = views.StartLookup(state, addr)

		bookings, err := bookingsGetter.ListBookingsByEmail(r.Context(), addr)
		if err != nil {
			if web.Abandoned(r, err) {
				log.Info("viewer left before bookings arrived")
				return
			}

			log.Error("failed to get bookings", sl.Err(err))
			status, msg := web.StatusFor(err, "Failed to fetch bookings")
			renderer.Render(w, r, log, status,
				web.NewPage(r, web.PageBookings, pageTitle, conv, views.LookupFailed(state, msg)))
			return
		}

		state, err = views.LoadBookings(state, bookings, conv)
		if err != nil {
			log.Error("failed to build bookings list", sl.Err(err))
			status, msg := web.StatusFor(err, "Failed to fetch bookings")
			renderer.Render(w, r, log, status,
				web.NewPage(r, web.PageBookings, pageTitle, conv, views.LookupFailed(state, msg)))
			return
		}

		log.Info("bookings retrieved successfully", slog.Int("count", len(bookings)))

		renderer.Render(w, r, log, http.StatusOK, web.NewPage(r, web.PageBookings, pageTitle, conv, state))
	}
}
