package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"gorm.io/gorm"

	billingmemory "github.com/sslogistics/logipro/internal/domains/billing/adapters/memory"
	billingpostgres "github.com/sslogistics/logipro/internal/domains/billing/adapters/persistence/postgres"
	billingapp "github.com/sslogistics/logipro/internal/domains/billing/application"
	billingports "github.com/sslogistics/logipro/internal/domains/billing/ports"
	ordersbilling "github.com/sslogistics/logipro/internal/domains/orders/adapters/external/billing"
	orderstransport "github.com/sslogistics/logipro/internal/domains/orders/adapters/external/transportation"
	ordersmemory "github.com/sslogistics/logipro/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/sslogistics/logipro/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/sslogistics/logipro/internal/domains/orders/application"
	ordersports "github.com/sslogistics/logipro/internal/domains/orders/ports"
	transportusers "github.com/sslogistics/logipro/internal/domains/transportation/adapters/external/users"
	transportmemory "github.com/sslogistics/logipro/internal/domains/transportation/adapters/memory"
	transportpostgres "github.com/sslogistics/logipro/internal/domains/transportation/adapters/persistence/postgres"
	transportapp "github.com/sslogistics/logipro/internal/domains/transportation/application"
	transportports "github.com/sslogistics/logipro/internal/domains/transportation/ports"
	usersmemory "github.com/sslogistics/logipro/internal/domains/users/adapters/memory"
	userspostgres "github.com/sslogistics/logipro/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/sslogistics/logipro/internal/domains/users/application"
	platformobservability "github.com/sslogistics/logipro/internal/platform/observability"
	platformpostgres "github.com/sslogistics/logipro/internal/platform/postgres"
	jobactivities "github.com/sslogistics/logipro/internal/platform/temporal/activities/jobs"
	jobworkflows "github.com/sslogistics/logipro/internal/platform/temporal/workflows/jobs"
)

func main() {
	ctx := context.Background()
	const serviceName = "logipro-worker"
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

	db, cleanupDB := buildDatabase(ctx, logger)
	defer cleanupDB()
	activities := buildActivities(db, logger)

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

	w := worker.New(temporalClient, jobworkflows.JobCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(jobworkflows.JobCreationWorkflow, workflow.RegisterOptions{Name: jobworkflows.JobCreationWorkflowName})
	w.RegisterActivityWithOptions(activities.PersistJob, activity.RegisterOptions{Name: jobactivities.PersistJobActivityName})
	w.RegisterActivityWithOptions(activities.DraftInvoice, activity.RegisterOptions{Name: jobactivities.DraftInvoiceActivityName})

	logger.Info("worker listening", slog.String("taskQueue", jobworkflows.JobCreationTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

// buildActivities wires the orders activities bundle. The persistence service
// is built without an invoicer so invoice drafting runs as its own activity
// with an independent retry policy.
func buildActivities(db *gorm.DB, logger *slog.Logger) *jobactivities.Activities {
	var (
		jobRepo          ordersports.Repository
		ledger           ordersports.TimelineLedger
		idempotency      ordersports.IdempotencyStore
		transportService transportports.Service
		billingService   billingports.Service
	)
	if db == nil {
		memJobs := ordersmemory.NewRepository()
		jobRepo, ledger = memJobs, memJobs
		idempotency = ordersmemory.NewIdempotencyStore()
		userService := usersapp.NewService(usersmemory.NewRepository())
		transportService = transportapp.NewService(
			transportmemory.NewShipmentRepository(),
			transportmemory.NewDriverRepository(),
			transportmemory.NewVehicleRepository(),
			transportusers.NewDirectory(userService),
			transportapp.WithLogger(logger),
		)
		billingService = billingapp.NewService(billingmemory.NewRepository())
	} else {
		pgJobs := orderspostgres.NewRepository(db)
		jobRepo, ledger = pgJobs, pgJobs
		idempotency = orderspostgres.NewIdempotencyStore(db)
		userService := usersapp.NewService(userspostgres.NewRepository(db))
		transportService = transportapp.NewService(
			transportpostgres.NewShipmentRepository(db),
			transportpostgres.NewDriverRepository(db),
			transportpostgres.NewVehicleRepository(db),
			transportusers.NewDirectory(userService),
			transportapp.WithLogger(logger),
		)
		billingService = billingapp.NewService(billingpostgres.NewRepository(db))
	}
	persistService := ordersapp.NewService(
		jobRepo,
		ledger,
		orderstransport.NewProvisioner(transportService),
		ordersapp.WithIdempotencyStore(idempotency),
		ordersapp.WithLogger(logger),
	)
	invoicer := ordersbilling.NewInvoicer(billingService)
	return jobactivities.NewActivities(persistService, jobRepo, invoicer)
}

func buildDatabase(ctx context.Context, logger *slog.Logger) (*gorm.DB, func()) {
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
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
	logger.Info("worker repositories configured with postgres")
	return db, func() { _ = sqlDB.Close() }
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
