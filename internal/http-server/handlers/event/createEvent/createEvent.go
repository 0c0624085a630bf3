package createEvent

import (
	"bookmyslot/internal/http-server/middleware/viewertz"
	"bookmyslot/internal/lib/logger/sl"
	"bookmyslot/internal/models"
	"bookmyslot/internal/tz"
	"bookmyslot/internal/views"
	"bookmyslot/internal/web"
	"context"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strconv"
)

const pageTitle = "Create Event"

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(ctx context.Context, draft models.EventDraft) (*models.Event, error)
}

// NewForm renders an empty create-event form.
func NewForm(log *slog.Logger, renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.NewForm"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		showForm(w, r, log, renderer, viewertz.Converter(r.Context()), http.StatusOK, views.NewCreateEventForm(), nil)
	}
}

// New handles every button on the create-event form. Slots accumulate in
// hidden inputs between posts; only the submit action reaches the backend.
func New(log *slog.Logger, eventCreator EventCreator, renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		conv := viewertz.Converter(r.Context())

		var form views.CreateEventForm
		if err := render.DecodeForm(r.Body, &form); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			showForm(w, r, log, renderer, conv, http.StatusBadRequest,
				views.NewCreateEventForm(), views.Failure("failed to decode request"))
			return
		}

		switch {
		case form.Remove != "" || form.Action == views.ActionRemoveSlot:
			i, err := strconv.Atoi(form.Remove)
			if err != nil {
				log.Warn("invalid slot index", slog.String("remove", form.Remove))
				i = -1
			}

			form = views.RemoveSlot(form, i)
			showForm(w, r, log, renderer, conv, http.StatusOK, form, nil)

		case form.Action == views.ActionAddSlot:
			next, err := views.AddSlot(form, conv)
			if err != nil {
				log.Info("slot rejected", sl.Err(err))
				status, msg := web.StatusFor(err, "Failed to add time slot")
				showForm(w, r, log, renderer, conv, status, next, views.Failure(msg))
				return
			}

			log.Debug("slot added", slog.Int("slots", len(next.Slots)))
			showForm(w, r, log, renderer, conv, http.StatusOK, next, views.Success("Time slot added"))

		default:
			draft, err := views.ValidateEvent(form)
			if err != nil {
				log.Info("invalid event form", sl.Err(err))
				status, msg := web.StatusFor(err, "Failed to create event")
				showForm(w, r, log, renderer, conv, status, form, views.Failure(msg))
				return
			}

			event, err := eventCreator.CreateEvent(r.Context(), draft)
			if err != nil {
				if web.Abandoned(r, err) {
					log.Info("viewer left before the event was created")
					return
				}

				log.Error("failed to create event", sl.Err(err))
				status, msg := web.StatusFor(err, "Failed to create event")
				showForm(w, r, log, renderer, conv, status, form, views.Failure(msg))
				return
			}

			log.Info("event created", slog.String("event_id", event.ID), slog.Int("slots", len(draft.TimeSlots)))

			http.Redirect(w, r, "/?notice="+views.NoticeEventCreated, http.StatusSeeOther)
		}
	}
}

func showForm(
	w http.ResponseWriter,
	r *http.Request,
	log *slog.Logger,
	renderer *web.Renderer,
	conv *tz.Converter,
	status int,
	form views.CreateEventForm,
	notice *views.Notice,
) {
	state, err := views.ShowCreateEvent(form, conv, notice)
	if err != nil {
		log.Error("failed to build create page", sl.Err(err))
		status, msg := web.StatusFor(err, "Failed to create event")
		renderer.Render(w, r, log, status, web.NewPage(r, web.PageError, "Error", conv, views.ErrorPage(msg)))
		return
	}

	renderer.Render(w, r, log, status, web.NewPage(r, web.PageCreate, pageTitle, conv, state))
}
