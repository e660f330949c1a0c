package main

import (
	"context"
	"expvar"
	"log"
	"runtime"

	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/configs"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/events"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/logging"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/messaging"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/metrics"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/ratelimiter"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/repository"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/tracing"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/ws"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/presentation/api"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/presentation/handler/health"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/presentation/handler/rooms"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/presentation/handler/watch"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/seed"
	"github.com/prometheus/client_golang/prometheus"
)

const serviceName = "movieroom-server"

func main() {
	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		FilePath: cfg.Logging.FilePath,
		Encoding: cfg.Logging.Encoding,
		Level:    cfg.Logging.Level,
		Logger:   cfg.Logging.Logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Tracing.Enabled {
		sh, err := tracing.InitTracer(tracing.Config{
			ServiceName: serviceName,
			Environment: cfg.Tracing.Environment,
			Endpoint:    cfg.Tracing.Endpoint,
		})
		if err != nil {
			log.Fatalf("Failed to initialize the tracer: %v", err)
		}
		defer sh(ctx)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	roomRepository := repository.NewRoomRepository()

	var roomPublisher *events.RoomPublisher
	if cfg.AMQP.Enabled {
		rabbitmq, err := messaging.NewRabbitMQ(cfg.AMQP.URI)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitmq.Close()

		logger.Info(logging.RabbitMQ, logging.Startup, "connected to RabbitMQ", nil)

		roomPublisher = events.NewRoomPublisher(rabbitmq)

		roomConsumer := events.NewRoomConsumer(rabbitmq, logger)
		go roomConsumer.Listen()
	}

	if cfg.Rooms.Seed {
		seed.Rooms(ctx, roomRepository, m, logger)
	}

	core := ws.NewCore(roomRepository, roomPublisher, m, logger)
	go core.Run()

	roomHandler := rooms.NewHandler(roomRepository, roomPublisher, m, logger, cfg.Rooms.ListLimit)
	healthHandler := health.NewHandler()
	watchHandler := watch.NewHandler(core, cfg.HTTP.AllowedOrigins, logger)

	rl := ratelimiter.New(ratelimiter.Options{
		MaxRatePerSecond: cfg.RateLimiter.MaxRatePerSecond,
		MaxBurst:         cfg.RateLimiter.MaxBurst,
		SourceHeaderKey:  cfg.RateLimiter.SourceHeaderKey,
	})
	app := api.NewApplication(*cfg, *roomHandler, *healthHandler, *watchHandler, logger, rl)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	if err := app.Run(app.Mount()); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}
