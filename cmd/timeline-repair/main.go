package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	orderspostgres "github.com/sslogistics/logipro/internal/domains/orders/adapters/persistence/postgres"
	platformpostgres "github.com/sslogistics/logipro/internal/platform/postgres"
)

// timeline-repair demotes stale current flags on the job timeline ledger.
// It runs once and exits, unless REPAIR_CRON_SCHEDULE is set, in which case
// it keeps running the repair on that schedule until interrupted.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot repair timeline")
	}

	repo := orderspostgres.NewRepository(db)
	schedule := strings.TrimSpace(os.Getenv("REPAIR_CRON_SCHEDULE"))
	if schedule == "" {
		runOnce(ctx, logger, repo)
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		repairCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		runOnce(repairCtx, logger, repo)
	}); err != nil {
		log.Fatalf("invalid REPAIR_CRON_SCHEDULE %q: %v", schedule, err)
	}
	c.Start()
	logger.Info("timeline repair scheduled", slog.String("schedule", schedule))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	<-c.Stop().Done()
	logger.Info("timeline repair stopped")
}

func runOnce(ctx context.Context, logger *slog.Logger, repo *orderspostgres.Repository) {
	demoted, err := repo.RepairCurrentFlags(ctx)
	if err != nil {
		logger.Error("timeline repair failed", slog.String("error", err.Error()))
		return
	}
	logger.Info("timeline repair completed", slog.Int64("demoted", demoted))
}
