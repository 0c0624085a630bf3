package getEventInfo

import (
	"bookmyslot/internal/client"
	"bookmyslot/internal/http-server/middleware/viewertz"
	"bookmyslot/internal/lib/logger/sl"
	"bookmyslot/internal/models"
	"bookmyslot/internal/views"
	"bookmyslot/internal/web"
	"context"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"log/slog"
	"net/http"
)

// SlotParam preselects an available slot and opens the booking form.
const SlotParam = "slot"

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventGetter
type EventGetter interface {
	GetEvent(ctx context.Context, id string) (*models.EventDetail, error)
}

func New(log *slog.Logger, eventGetter EventGetter, renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEventInfo.New"

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

		detail, err := eventGetter.GetEvent(r.Context(), eventID)
		if err != nil {
			if web.Abandoned(r, err) {
				log.Info("viewer left before the event arrived")
				return
			}

			log.Error("failed to get event", sl.Err(err))
			status, msg := web.StatusFor(err, "Failed to load event")
			if client.IsNotFound(err) {
				msg = "Event not found"
			}
			renderer.Render(w, r, log, status, web.NewPage(r, web.PageError, "Event not found", conv, views.ErrorPage(msg)))
			return
		}

		state, err := views.LoadDetail(detail, conv)
		if err != nil {
			log.Error("failed to build event page", sl.Err(err))
			status, msg := web.StatusFor(err, "Failed to load event")
			renderer.Render(w, r, log, status, web.NewPage(r, web.PageError, "Error", conv, views.ErrorPage(msg)))
			return
		}

		if slotID := r.URL.Query().Get(SlotParam); slotID != "" {
			state = views.SelectSlot(state, slotID)
		}

		log.Info("event info successfully received", slog.Int("slots", len(detail.TimeSlots)))

		renderer.Render(w, r, log, http.StatusOK, web.NewPage(r, web.PageDetail, detail.Event.Title, conv, state))
	}
}
