package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/event-service/internal/api/dto"
	httptransport "github.com/spec-kit/event-service/internal/api/http"
	"github.com/spec-kit/event-service/internal/api/http/handlers"
	"github.com/spec-kit/event-service/internal/auth"
	"github.com/spec-kit/event-service/internal/config"
	"github.com/spec-kit/event-service/internal/email"
	"github.com/spec-kit/event-service/internal/events"
	"github.com/spec-kit/event-service/internal/notify"
	"github.com/spec-kit/event-service/internal/observability"
	"github.com/spec-kit/event-service/internal/persistence"
	"github.com/spec-kit/event-service/internal/repository"
	"github.com/spec-kit/event-service/internal/service"
	"github.com/spec-kit/event-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	rsvpRepo := repository.NewRSVPRepository(pool)
	favoriteRepo := repository.NewFavoriteRepository(pool)

	hub := notify.NewHub(logger, metrics)
	defer hub.Close()

	var broadcaster notify.Broadcaster = hub
	var relay *notify.RedisRelay
	if cfg.Notification.RedisRelay {
		relay = notify.NewRedisRelay(redis.Client, cfg.Notification.RedisChannel, hub, logger)
		broadcaster = relay
	}
	stopRelay, err := worker.StartRelay(ctx, relay, logger)
	if err != nil {
		logger.Fatal("failed to start redis relay", zap.Error(err))
	}
	defer stopRelay()

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, broadcaster, dto.NotificationPayload, logger))

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:  userRepo,
		EventRepo: eventRepo,
		RSVPRepo:  rsvpRepo,
		Tokens:    tokens,
		Mailer:    email.NewLogMailer(cfg.Notification.EmailFrom, logger),
		Logger:    logger,
	})
	eventService := service.NewEventService(service.EventDependencies{
		EventRepo:  eventRepo,
		RSVPRepo:   rsvpRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	rsvpService := service.NewRSVPService(service.RSVPDependencies{
		EventRepo:  eventRepo,
		RSVPRepo:   rsvpRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	favoriteService := service.NewFavoriteService(eventRepo, favoriteRepo)

	app := httptransport.NewApp(cfg.App, logger, metrics)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Version: cfg.App.Version,
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, hub.Count),
		Auth:      handlers.NewAuthHandler(authService),
		Events:    handlers.NewEventsHandler(eventService),
		RSVPs:     handlers.NewRSVPHandler(rsvpService),
		Favorites: handlers.NewFavoritesHandler(favoriteService),
		WS:        handlers.NewWSHandler(hub, logger),
		Guard:     auth.NewGuard(tokens, userRepo),
		Metrics:   metrics,
	})

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	// Sockets are closed first so websocket handlers return and Shutdown can drain.
	hub.Close()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
