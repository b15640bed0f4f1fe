package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	bookingserver "github.com/mariusel9911/Proiect-IC-sub001/server"

	catalogcache "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/adapters/cache"
	catalogmemory "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/application"
	catalogports "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/ports"

	orderscatalog "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/adapters/catalog"
	ordersmemory "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/adapters/memory"
	ordersobs "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/application"
	ordersports "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/ports"

	principalsmemory "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/principals/adapters/memory"
	principalspostgres "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/principals/adapters/persistence/postgres"
	principalsapp "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/principals/application"
	principalsports "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/principals/ports"

	platformmigrations "github.com/mariusel9911/Proiect-IC-sub001/internal/platform/migrations"
	platformobservability "github.com/mariusel9911/Proiect-IC-sub001/internal/platform/observability"
	platformpostgres "github.com/mariusel9911/Proiect-IC-sub001/internal/platform/postgres"
	platformredis "github.com/mariusel9911/Proiect-IC-sub001/internal/platform/redis"
)

// ServiceName identifies this process in traces, logs, and Redis keys.
const ServiceName = "booking-api"

// Run boots the booking HTTP API with observability, repositories, caches,
// and workflows wired.
func Run(ctx context.Context) error {
	instruments, shutdown, err := platformobservability.Init(ctx, ServiceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	db, cleanupDB := connectDatabase(ctx, cfg, logger)
	defer cleanupDB()
	if db != nil {
		if err := platformmigrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	redisClient := connectRedis(ctx, cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	catalogService := buildCatalogService(db, redisClient, logger)
	principalService := buildPrincipalService(db, logger)

	orderRepo := buildOrderRepository(db, logger)
	coreOrderService := ordersapp.NewService(orderRepo, orderscatalog.NewResolver(catalogService))
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := bookingserver.ApiHandleFunctions{
		OrdersAPI:  bookingserver.NewOrdersAPI(orderService, orderWorkflows),
		CatalogAPI: bookingserver.NewCatalogAPI(catalogService),
	}

	router := bookingserver.NewRouter(
		handlers,
		bookingserver.MaintenanceGate(redisClient, cfg.MaintenanceMode),
		bookingserver.PrincipalAuth(principalService),
	)
	router.Use(otelgin.Middleware(ServiceName))
	addr := ":" + cfg.Port
	logger.Info("booking API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("booking API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func connectDatabase(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return nil, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("postgres connection established")
	return db, func() { _ = sqlDB.Close() }
}

func connectRedis(ctx context.Context, cfg Config, logger *slog.Logger) *platformredis.Client {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, catalog cache and maintenance flag run without Redis")
		return nil
	}
	redisClient, err := platformredis.Connect(ctx, cfg.RedisAddr, ServiceName)
	if err != nil {
		logger.Warn("failed to connect to redis, catalog cache and maintenance flag degrade", slog.String("error", err.Error()))
		return nil
	}
	logger.Info("redis connection established", slog.String("addr", cfg.RedisAddr))
	return redisClient
}

func buildCatalogService(db *gorm.DB, redisClient *platformredis.Client, logger *slog.Logger) catalogports.Service {
	var repo catalogports.Repository
	if db != nil {
		repo = catalogpostgres.NewRepository(db)
		logger.Info("catalog repository configured with postgres")
	} else {
		repo = catalogmemory.NewRepository()
	}
	if redisClient != nil {
		repo = catalogcache.NewRepository(repo, redisClient)
		logger.Info("catalog repository wrapped with redis read-through cache")
	}
	return catalogapp.NewService(repo)
}

func buildPrincipalService(db *gorm.DB, logger *slog.Logger) principalsports.Service {
	if db != nil {
		logger.Info("principal repository configured with postgres")
		return principalsapp.NewService(principalspostgres.NewRepository(db))
	}
	return principalsapp.NewService(principalsmemory.NewRepository())
}

func buildOrderRepository(db *gorm.DB, logger *slog.Logger) ordersports.Repository {
	if db != nil {
		logger.Info("order repository configured with postgres")
		return orderspostgres.NewRepository(db)
	}
	return ordersmemory.NewRepository()
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
