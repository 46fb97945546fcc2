package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	logiproserver "github.com/sslogistics/logipro/server"

	billingmemory "github.com/sslogistics/logipro/internal/domains/billing/adapters/memory"
	billingpostgres "github.com/sslogistics/logipro/internal/domains/billing/adapters/persistence/postgres"
	billingapp "github.com/sslogistics/logipro/internal/domains/billing/application"
	billingports "github.com/sslogistics/logipro/internal/domains/billing/ports"
	ordersbilling "github.com/sslogistics/logipro/internal/domains/orders/adapters/external/billing"
	orderstransport "github.com/sslogistics/logipro/internal/domains/orders/adapters/external/transportation"
	ordersmemory "github.com/sslogistics/logipro/internal/domains/orders/adapters/memory"
	ordersobs "github.com/sslogistics/logipro/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/sslogistics/logipro/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/sslogistics/logipro/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/sslogistics/logipro/internal/domains/orders/application"
	ordersports "github.com/sslogistics/logipro/internal/domains/orders/ports"
	quotesmemory "github.com/sslogistics/logipro/internal/domains/quotes/adapters/memory"
	quotespostgres "github.com/sslogistics/logipro/internal/domains/quotes/adapters/persistence/postgres"
	quotesapp "github.com/sslogistics/logipro/internal/domains/quotes/application"
	quotesports "github.com/sslogistics/logipro/internal/domains/quotes/ports"
	transportusers "github.com/sslogistics/logipro/internal/domains/transportation/adapters/external/users"
	transportmemory "github.com/sslogistics/logipro/internal/domains/transportation/adapters/memory"
	transportpostgres "github.com/sslogistics/logipro/internal/domains/transportation/adapters/persistence/postgres"
	transportapp "github.com/sslogistics/logipro/internal/domains/transportation/application"
	transportports "github.com/sslogistics/logipro/internal/domains/transportation/ports"
	usersmemory "github.com/sslogistics/logipro/internal/domains/users/adapters/memory"
	userspostgres "github.com/sslogistics/logipro/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/sslogistics/logipro/internal/domains/users/application"
	usersports "github.com/sslogistics/logipro/internal/domains/users/ports"
	"github.com/sslogistics/logipro/internal/platform/migrations"
	platformobservability "github.com/sslogistics/logipro/internal/platform/observability"
	platformpostgres "github.com/sslogistics/logipro/internal/platform/postgres"
)

// Run boots the LogiPro HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "logipro-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
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

	db, cleanupDB := openDatabase(ctx, cfg, logger)
	defer cleanupDB()
	repos := buildRepositories(db)

	userService := usersapp.NewService(repos.users)
	transportService := transportapp.NewService(
		repos.shipments,
		repos.drivers,
		repos.vehicles,
		transportusers.NewDirectory(userService),
		transportapp.WithLogger(logger),
	)
	billingService := billingapp.NewService(repos.invoices)
	quoteService := quotesapp.NewService(repos.quoteConfig)

	coreJobService := ordersapp.NewService(
		repos.jobs,
		repos.ledger,
		orderstransport.NewProvisioner(transportService),
		ordersapp.WithInvoicer(ordersbilling.NewInvoicer(billingService)),
		ordersapp.WithIdempotencyStore(repos.idempotency),
		ordersapp.WithLogger(logger),
	)
	jobService := ordersobs.New(
		coreJobService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var jobWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineJobWorkflows(jobService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline CreateJob", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		jobWorkflows = ordersworkflows.NewTemporalJobWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := logiproserver.ApiHandleFunctions{
		JobsAPI:      logiproserver.NewJobsAPI(jobService, jobWorkflows),
		ShipmentsAPI: logiproserver.NewShipmentsAPI(transportService),
		FleetAPI:     logiproserver.NewFleetAPI(transportService),
		InvoicesAPI:  logiproserver.NewInvoicesAPI(billingService),
		QuotesAPI:    logiproserver.NewQuotesAPI(quoteService),
		UsersAPI:     logiproserver.NewUsersAPI(userService),
	}

	router := logiproserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("LogiPro API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("LogiPro API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// repositories groups the per-context stores so memory and postgres builds
// stay interchangeable.
type repositories struct {
	jobs        ordersports.Repository
	ledger      ordersports.TimelineLedger
	idempotency ordersports.IdempotencyStore
	shipments   transportports.ShipmentRepository
	drivers     transportports.DriverRepository
	vehicles    transportports.VehicleRepository
	invoices    billingports.Repository
	quoteConfig quotesports.ConfigStore
	users       usersports.Repository
}

func buildRepositories(db *gorm.DB) repositories {
	if db == nil {
		jobRepo := ordersmemory.NewRepository()
		return repositories{
			jobs:        jobRepo,
			ledger:      jobRepo,
			idempotency: ordersmemory.NewIdempotencyStore(),
			shipments:   transportmemory.NewShipmentRepository(),
			drivers:     transportmemory.NewDriverRepository(),
			vehicles:    transportmemory.NewVehicleRepository(),
			invoices:    billingmemory.NewRepository(),
			quoteConfig: quotesmemory.NewConfigStore(),
			users:       usersmemory.NewRepository(),
		}
	}
	jobRepo := orderspostgres.NewRepository(db)
	return repositories{
		jobs:        jobRepo,
		ledger:      jobRepo,
		idempotency: orderspostgres.NewIdempotencyStore(db),
		shipments:   transportpostgres.NewShipmentRepository(db),
		drivers:     transportpostgres.NewDriverRepository(db),
		vehicles:    transportpostgres.NewVehicleRepository(db),
		invoices:    billingpostgres.NewRepository(db),
		quoteConfig: quotespostgres.NewConfigStore(db),
		users:       userspostgres.NewRepository(db),
	}
}

func openDatabase(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return nil, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return nil, func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run schema migrations, falling back to memory", slog.String("error", err.Error()))
		_ = sqlDB.Close()
		return nil, func() {}
	}
	logger.Info("repositories configured with postgres")
	return db, func() { _ = sqlDB.Close() }
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
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
