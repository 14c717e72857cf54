package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-service/internal/api/http"
	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/mail"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/worker"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	employeeRepo := repository.NewEmployeeRepository(pool)
	loginRepo := repository.NewLoginRepository(pool)
	ruleRepo := repository.NewAssignmentRuleRepository(pool)
	prefixRepo := repository.NewPrefixRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	historyRepo := repository.NewHistoryRepository(pool)
	hodRepo := repository.NewHODRepository(pool)

	otpStore := persistence.NewOTPStore(redis)

	var sender mail.Sender
	if cfg.Mail.TenantID != "" {
		sender = mail.NewGraphSender(cfg.Mail)
		logger.Info("graph mail sender configured", zap.String("sender", cfg.Mail.SenderEmail))
	} else {
		sender = mail.NewLogSender(logger)
	}

	dispatcher := events.NewInMemoryDispatcher()
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	admissionService := service.NewAdmissionService(service.AdmissionDependencies{
		EmployeeRepo: employeeRepo,
		RuleRepo:     ruleRepo,
		PrefixRepo:   prefixRepo,
		TicketRepo:   ticketRepo,
		Dispatcher:   dispatcher,
	})
	updateService := service.NewUpdateService(service.UpdateDependencies{
		TicketRepo:  ticketRepo,
		LoginRepo:   loginRepo,
		HistoryRepo: historyRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	queryService := service.NewQueryService(ticketRepo, nil)
	historyService := service.NewHistoryService(historyRepo, employeeRepo)
	directoryService := service.NewDirectoryService(employeeRepo, ruleRepo, hodRepo)
	authService := service.NewAuthService(employeeRepo, loginRepo, otpStore, sender, tokenManager, cfg.Auth, logger)
	notificationService := service.NewNotificationService(dispatcher, sender, logger)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(tokenManager, employeeRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(admissionService, updateService, queryService),
		Directory:      handlers.NewDirectoryHandler(directoryService, authService),
		Notifications:  handlers.NewNotificationsHandler(historyService, authService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
