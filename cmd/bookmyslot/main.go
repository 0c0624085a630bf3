package main

import (
	"bookmyslot/internal/client"
	"bookmyslot/internal/clock"
	"bookmyslot/internal/config"
	"bookmyslot/internal/http-server/handlers/booking/getUserBookings"
	"bookmyslot/internal/http-server/handlers/event/createBooking"
	"bookmyslot/internal/http-server/handlers/event/createEvent"
	"bookmyslot/internal/http-server/handlers/event/getAllEvents"
	"bookmyslot/internal/http-server/handlers/event/getEventInfo"
	"bookmyslot/internal/http-server/handlers/health"
	"bookmyslot/internal/http-server/middleware/mwlogger"
	"bookmyslot/internal/http-server/middleware/viewertz"
	"bookmyslot/internal/lib/logger/handlers/slogpretty"
	"bookmyslot/internal/lib/logger/sl"
	"bookmyslot/internal/tz"
	"bookmyslot/internal/web"
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting bookmyslot", slog.String("env", cfg.Env), slog.String("api", cfg.API.BaseURL))
	log.Debug("Debug messages are enabled")

	if !tz.Valid(cfg.DefaultTimezone) {
		log.Warn("unknown default timezone, using the process timezone",
			slog.String("timezone", cfg.DefaultTimezone),
			slog.String("process_timezone", tz.New(tz.System(), nil).Timezone()),
		)
	}

	api := client.New(cfg.API.BaseURL, &http.Client{Timeout: cfg.API.Timeout}, log)

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Error("failed to parse templates", sl.Err(err))
		os.Exit(1)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(viewertz.New(cfg.DefaultTimezone, clock.NewSystem()))

	router.Get("/healthz", health.New())

	router.Get("/", getAllEvents.New(log, api, renderer))
	router.Get("/events", getAllEvents.New(log, api, renderer))
	router.Get("/events/{id}", getEventInfo.New(log, api, renderer))
	router.Post("/events/{id}/bookings", createBooking.New(log, api, renderer))

	router.Get("/create", createEvent.NewForm(log, renderer))
	router.Post("/create", createEvent.New(log, api, renderer))

	router.Get("/bookings", getUserBookings.New(log, api, renderer))
	router.Post("/bookings", getUserBookings.New(log, api, renderer))

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout + cfg.API.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvLocal:
		log = setupPrettySlog()
	case config.EnvDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
