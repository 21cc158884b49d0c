package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/portfolio-service/internal/api/http"
	"github.com/spec-kit/portfolio-service/internal/api/http/handlers"
	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/events"
	"github.com/spec-kit/portfolio-service/internal/mail"
	"github.com/spec-kit/portfolio-service/internal/observability"
	"github.com/spec-kit/portfolio-service/internal/persistence"
	"github.com/spec-kit/portfolio-service/internal/repository"
	"github.com/spec-kit/portfolio-service/internal/security"
	"github.com/spec-kit/portfolio-service/internal/service"
	"github.com/spec-kit/portfolio-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
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
		if err := persistence.RunMigrations(pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	contactRepo := repository.NewContactRepository(pool)
	replyRepo := repository.NewReplyRepository(pool)

	queue := worker.NewEventQueue(events.NewInMemoryDispatcher(logger), cfg.Worker.EventQueueSize, cfg.Worker.EventWorkers, logger)
	queue.Start()
	var dispatcher events.Dispatcher = queue
	mailer := newMailer(cfg.Mail, logger)
	metrics := observability.NewMetrics()

	contactService := service.NewContactService(service.ContactDependencies{
		ContactRepo: contactRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	replyService := service.NewReplyService(service.ReplyDependencies{
		ReplyRepo:   replyRepo,
		ContactRepo: contactRepo,
		Mailer:      mailer,
		Dispatcher:  dispatcher,
		Logger:      logger,
		SiteName:    cfg.Mail.SiteName,
		ReplyTo:     cfg.Mail.OperatorTo,
	})
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, mailer, logger, cfg.Mail))

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: cfg.App.BodyLimitBytes,
	})

	mwCfg := httptransport.MiddlewareConfig{
		Logger:        logger,
		Metrics:       metrics,
		Timeout:       cfg.App.RequestTimeout(),
		SlowThreshold: cfg.App.SlowRequestThreshold(),
	}
	if cfg.Security.InspectorEnabled {
		mwCfg.Inspector = security.NewInspector(security.Options{
			Patterns:  security.DefaultPatterns(),
			CSRFCheck: cfg.Security.CSRFCheckEnabled,
			CSRFField: cfg.Security.CSRFField,
		})
		mwCfg.Sink = security.Sinks{
			security.NewLogSink(logger),
			security.NewStreamSink(redis.Stream(), cfg.Security.EventStream, cfg.Security.EventStreamMaxLen, logger),
			security.NewMetricsSink(metrics),
		}
	}
	httptransport.RegisterMiddlewares(app, mwCfg)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Contacts:       handlers.NewContactHandler(contactService, logger),
		AdminContacts:  handlers.NewAdminContactsHandler(contactService, replyService),
		Replies:        handlers.NewRepliesHandler(replyService),
		Metrics:        handlers.NewMetricsHandler(metrics),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}

	drainCtx, drainCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer drainCancel()
	if err := queue.Shutdown(drainCtx); err != nil {
		logger.Warn("event queue not drained", zap.Error(err))
	}
}

func newMailer(cfg config.MailConfig, logger *zap.Logger) mail.Dispatcher {
	if !cfg.Enabled() {
		logger.Warn("SMTP_HOST not set, outgoing mail is logged only")
		return mail.NewLogDispatcher(logger)
	}
	return mail.NewSMTPDispatcher(cfg)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
