package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/recruiting-pipeline/internal/api/http"
	"github.com/spec-kit/recruiting-pipeline/internal/api/http/handlers"
	"github.com/spec-kit/recruiting-pipeline/internal/auth"
	"github.com/spec-kit/recruiting-pipeline/internal/config"
	"github.com/spec-kit/recruiting-pipeline/internal/events"
	"github.com/spec-kit/recruiting-pipeline/internal/observability"
	"github.com/spec-kit/recruiting-pipeline/internal/persistence"
	"github.com/spec-kit/recruiting-pipeline/internal/repository"
	"github.com/spec-kit/recruiting-pipeline/internal/service"
	"github.com/spec-kit/recruiting-pipeline/internal/worker"
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

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	jobRepo := repository.NewJobRepository(pool)
	candidateRepo := repository.NewCandidateRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)

	authService := service.NewAuthService(*cfg, staffRepo)
	staffService := service.NewStaffService(*cfg, staffRepo)
	jobService := service.NewJobService(service.JobDependencies{
		JobRepo:    jobRepo,
		ClientRepo: clientRepo,
		StaffRepo:  staffRepo,
		Dispatcher: dispatcher,
	})
	candidateService := service.NewCandidateService(service.CandidateDependencies{
		CandidateRepo: candidateRepo,
		Jobs:          jobService,
		Dispatcher:    dispatcher,
	})
	reportService := service.NewReportService(service.ReportDependencies{
		StaffRepo:     staffRepo,
		JobRepo:       jobRepo,
		ClientRepo:    clientRepo,
		CandidateRepo: candidateRepo,
		Cache:         redis,
		CacheTTL:      cfg.Report.CacheTTL(),
		Logger:        logger,
	})
	reportService.RegisterInvalidation(dispatcher)
	invoiceService := service.NewInvoiceService(*cfg, service.InvoiceDependencies{
		InvoiceRepo:   invoiceRepo,
		ClientRepo:    clientRepo,
		JobRepo:       jobRepo,
		CandidateRepo: candidateRepo,
		Dispatcher:    dispatcher,
	})
	activityService := service.NewActivityService(activityRepo, dispatcher, logger)
	worker.StartActivityWorker(activityService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), staffRepo)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Staff:          handlers.NewStaffHandler(authService, staffService),
		Clients:        handlers.NewClientsHandler(jobService),
		Jobs:           handlers.NewJobsHandler(jobService),
		Candidates:     handlers.NewCandidatesHandler(candidateService),
		Reports:        handlers.NewReportsHandler(reportService),
		Invoices:       handlers.NewInvoicesHandler(invoiceService),
		Activity:       handlers.NewActivityHandler(activityService),
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
