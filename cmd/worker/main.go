package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"gorm.io/gorm"

	catalogmemory "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/application"
	catalogports "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/ports"
	orderscatalog "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/adapters/catalog"
	ordersmemory "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/adapters/memory"
	ordersobs "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/application"
	ordersports "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/ports"
	orderactivities "github.com/mariusel9911/Proiect-IC-sub001/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/mariusel9911/Proiect-IC-sub001/internal/durable/temporal/workflows/orders"
	platformmigrations "github.com/mariusel9911/Proiect-IC-sub001/internal/platform/migrations"
	platformobservability "github.com/mariusel9911/Proiect-IC-sub001/internal/platform/observability"
	platformpostgres "github.com/mariusel9911/Proiect-IC-sub001/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "booking-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := connectDatabase(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := platformmigrations.Run(db); err != nil {
			logger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	catalogService := buildCatalogService(db)
	orderRepo := buildOrderRepository(db)
	coreOrderService := ordersapp.NewService(orderRepo, orderscatalog.NewResolver(catalogService))
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	orderActivities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func connectDatabase(ctx context.Context, logger *slog.Logger) (*gorm.DB, func()) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		logger.Warn("POSTGRES_DSN not set, worker falling back to in-memory repositories")
		return nil, func() {}
	}
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		logger.Warn("worker failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("worker failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("worker postgres connection established")
	return db, func() { _ = sqlDB.Close() }
}

func buildCatalogService(db *gorm.DB) catalogports.Service {
	if db != nil {
		return catalogapp.NewService(catalogpostgres.NewRepository(db))
	}
	return catalogapp.NewService(catalogmemory.NewRepository())
}

func buildOrderRepository(db *gorm.DB) ordersports.Repository {
	if db != nil {
		return orderspostgres.NewRepository(db)
	}
	return ordersmemory.NewRepository()
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
