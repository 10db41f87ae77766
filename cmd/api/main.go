package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/triage-dashboard/internal/api/http"
	"github.com/spec-kit/triage-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/triage-dashboard/internal/config"
	"github.com/spec-kit/triage-dashboard/internal/domain"
	"github.com/spec-kit/triage-dashboard/internal/events"
	"github.com/spec-kit/triage-dashboard/internal/observability"
	"github.com/spec-kit/triage-dashboard/internal/realtime"
	"github.com/spec-kit/triage-dashboard/internal/repository"
	"github.com/spec-kit/triage-dashboard/internal/seed"
	"github.com/spec-kit/triage-dashboard/internal/service"
	"github.com/spec-kit/triage-dashboard/internal/triage"
	"github.com/spec-kit/triage-dashboard/internal/worker"
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

	var seedTickets []domain.Ticket
	if cfg.Dashboard.SeedDemoData {
		seedTickets = seed.Tickets(time.Now())
	}
	ticketRepo := repository.NewTicketRepository(seedTickets)

	dispatcher := events.NewInMemoryDispatcher()
	classifier := triage.NewClassifier(cfg.Triage.Latency())
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		TicketRepo: ticketRepo,
		Classifier: classifier,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	notificationService := service.NewNotificationService(dispatcher, logger)
	hub := realtime.New(logger)
	worker.StartNotificationWorker(notificationService, hub, dispatcher)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version),
		Dashboard: handlers.NewDashboardHandler(dashboardService, cfg.Dashboard.Agents),
		Tickets:   handlers.NewTicketsHandler(dashboardService),
		Realtime:  hub.HTTPHandler("/realtime"),
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
