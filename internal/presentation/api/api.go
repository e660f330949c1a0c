package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/configs"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/logging"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/ratelimiter"
	healthHandler "github.com/Rapheal-Kwabena/movieroom-app/internal/presentation/handler/health"
	roomHandler "github.com/Rapheal-Kwabena/movieroom-app/internal/presentation/handler/rooms"
	watchHandler "github.com/Rapheal-Kwabena/movieroom-app/internal/presentation/handler/watch"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Application struct {
	config        configs.Config
	roomHandler   roomHandler.Handler
	healthHandler healthHandler.Handler
	watchHandler  watchHandler.Handler
	logger        logging.Logger
	ratelimiter   ratelimiter.Limiter
}

func NewApplication(
	config configs.Config,
	roomHandler roomHandler.Handler,
	healthHandler healthHandler.Handler,
	watchHandler watchHandler.Handler,
	logger logging.Logger,
	ratelimiter ratelimiter.Limiter,
) *Application {
	return &Application{
		config:        config,
		roomHandler:   roomHandler,
		healthHandler: healthHandler,
		watchHandler:  watchHandler,
		logger:        logger,
		ratelimiter:   ratelimiter,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(app.enableCors)

	r.Route("/api", func(r chi.Router) {
		r.Use(app.rateLimiterMiddleware)
		r.Use(middleware.Timeout(60 * time.Second))

		r.Route("/rooms", func(r chi.Router) {
			r.Post("/create", app.roomHandler.CreateRoomHandler)
			r.Get("/", app.roomHandler.ListRoomsHandler)
			r.Get("/{roomId}", app.roomHandler.GetRoomHandler)
		})

		r.Get("/health", app.healthHandler.GetHealth)
	})

	// The websocket endpoint stays outside the timeout middleware: the
	// connection is long-lived by design.
	r.Get("/ws", app.watchHandler.ServeWS)

	r.Handle("/metrics", promhttp.Handler())

	if app.config.Tracing.Enabled {
		return otelhttp.NewHandler(r, "movieroom-server")
	}

	return r
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Info(logging.General, logging.Shutdown, "signal caught", map[logging.ExtraKey]any{
			"signal": s.String(),
		})

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	return nil
}
