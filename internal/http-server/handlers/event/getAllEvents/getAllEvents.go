package getAllEvents

import (
	"bookmyslot/internal/http-server/middleware/viewertz"
	"bookmyslot/internal/lib/logger/sl"
	"bookmyslot/internal/models"
	"bookmyslot/internal/views"
	"bookmyslot/internal/web"
	"context"
	"github.com/go-chi/chi/v5/middleware"
	"log/slog"
	"net/http"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsGetter
type EventsGetter interface {
	ListEvents(ctx context.Context) ([]models.EventSummary, error)
}

func New(log *slog.Logger, eventsGetter EventsGetter, renderer *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getAllEvents.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		conv := viewertz.Converter(r.Context())

		events, err := eventsGetter.ListEvents(r.Context())
		if err != nil {
			if web.Abandoned(r, err) {
				log.Info("viewer left before events arrived")
				return
			}

			log.Error("failed to get events", sl.Err(err))
			status, msg := web.StatusFor(err, "Failed to load events")
			renderer.Render(w, r, log, status, web.NewPage(r, web.PageHome, "Events", conv, views.HomeFailed(msg)))
			return
		}

		state, err := views.LoadHome(events, conv)
		if err != nil {
			log.Error("failed to build event list", sl.Err(err))
			status, msg := web.StatusFor(err, "Failed to load events")
			renderer.Render(w, r, log, status, web.NewPage(r, web.PageHome, "Events", conv, views.HomeFailed(msg)))
			return
		}

		if r.URL.Query().Get("notice") == views.NoticeEventCreated {
			state.Notice = views.Success("Event created successfully!")
		}

		log.Info("events retrieved successfully", slog.Int("count", len(events)))

		renderer.Render(w, r, log, http.StatusOK, web.NewPage(r, web.PageHome, "Events", conv, state))
	}
}
