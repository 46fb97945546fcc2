//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	orderspostgres "github.com/sslogistics/logipro/internal/domains/orders/adapters/persistence/postgres"
	"github.com/sslogistics/logipro/internal/domains/orders/domain"
	"github.com/sslogistics/logipro/internal/domains/orders/ports"
	"github.com/sslogistics/logipro/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("logipro_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func newJob(t *testing.T) *domain.Job {
	t.Helper()
	stop := domain.Stop{
		Address:       "1 Integration Way",
		City:          "Pgtown",
		ContactPerson: "Contact",
		ContactPhone:  "+1-555-0150",
	}
	job, err := domain.NewJob(uuid.New(), nil, domain.ServicePalletDelivery, "pallets", stop, stop, time.Now().UTC())
	require.NoError(t, err)
	return job
}

func TestPostgresRepository_CreateAssignsSequentialNumbers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, newJob(t))
	require.NoError(t, err)
	assert.Equal(t, domain.FirstJobNumber, first.Entity.JobNumber)

	second, err := repo.Create(ctx, newJob(t))
	require.NoError(t, err)
	assert.Equal(t, domain.FirstJobNumber+1, second.Entity.JobNumber)
}

func TestPostgresRepository_ConcurrentCreatesNeverCollide(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()
	const creators = 10

	errs := make(chan error, creators)
	var wg sync.WaitGroup
	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, newJob(t))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, creators)
	seen := map[int64]bool{}
	for _, item := range all {
		assert.False(t, seen[item.Entity.JobNumber], "job number %d assigned twice", item.Entity.JobNumber)
		seen[item.Entity.JobNumber] = true
	}
}

func TestPostgresRepository_AppendKeepsSingleCurrentEntry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Create(ctx, newJob(t))
	require.NoError(t, err)
	jobID := saved.Entity.ID

	statuses := []domain.TimelineStatus{
		domain.TimelineOrderPlaced,
		domain.TimelinePickedUp,
		domain.TimelineInTransit,
	}
	var last *domain.TimelineEntry
	for _, status := range statuses {
		entry, err := domain.NewTimelineEntry(jobID, status, "", "")
		require.NoError(t, err)
		last, err = repo.Append(ctx, entry, true)
		require.NoError(t, err)
	}

	current, err := repo.Current(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, last.ID, current.ID)

	history, err := repo.History(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, history, len(statuses))
	currentCount := 0
	for i, entry := range history {
		assert.Equal(t, statuses[i], entry.Status)
		if entry.IsCurrent {
			currentCount++
		}
	}
	assert.Equal(t, 1, currentCount)
}

func TestPostgresRepository_ConcurrentAppendsKeepSingleCurrentEntry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Create(ctx, newJob(t))
	require.NoError(t, err)
	jobID := saved.Entity.ID

	const appenders = 8
	errs := make(chan error, appenders)
	var wg sync.WaitGroup
	for i := 0; i < appenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry, err := domain.NewTimelineEntry(jobID, domain.TimelineInTransit, "", "")
			if err != nil {
				errs <- err
				return
			}
			_, err = repo.Append(ctx, entry, true)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	history, err := repo.History(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, history, appenders)
	currentCount := 0
	for _, entry := range history {
		if entry.IsCurrent {
			currentCount++
		}
	}
	assert.Equal(t, 1, currentCount)

	// Nothing left for the repair sweep to demote.
	demoted, err := repo.RepairCurrentFlags(ctx)
	require.NoError(t, err)
	assert.Zero(t, demoted)
}

func TestPostgresRepository_AppendUnknownJob(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	entry, err := domain.NewTimelineEntry(uuid.New(), domain.TimelinePickedUp, "", "")
	require.NoError(t, err)
	_, err = repo.Append(context.Background(), entry, true)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_DeleteCascadesTimeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Create(ctx, newJob(t))
	require.NoError(t, err)
	entry, err := domain.NewTimelineEntry(saved.Entity.ID, domain.TimelinePickedUp, "", "")
	require.NoError(t, err)
	_, err = repo.Append(ctx, entry, true)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved.Entity.ID))

	_, err = repo.GetByID(ctx, saved.Entity.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	history, err := repo.History(ctx, saved.Entity.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.ErrorIs(t, repo.Delete(ctx, saved.Entity.ID), ports.ErrNotFound)
}

func TestPostgresRepository_RepairCurrentFlags(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Create(ctx, newJob(t))
	require.NoError(t, err)
	jobID := saved.Entity.ID

	for _, status := range []domain.TimelineStatus{domain.TimelineOrderPlaced, domain.TimelinePickedUp} {
		entry, err := domain.NewTimelineEntry(jobID, status, "", "")
		require.NoError(t, err)
		_, err = repo.Append(ctx, entry, true)
		require.NoError(t, err)
	}
	// Corrupt the invariant the way a partially applied write would.
	require.NoError(t, db.Exec("UPDATE job_timeline_entries SET is_current = TRUE WHERE job_id = ?", jobID).Error)

	demoted, err := repo.RepairCurrentFlags(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), demoted)

	current, err := repo.Current(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, domain.TimelinePickedUp, current.Status)

	// A clean ledger repairs to nothing.
	demoted, err = repo.RepairCurrentFlags(ctx)
	require.NoError(t, err)
	assert.Zero(t, demoted)
}

func TestPostgresIdempotencyStore_ReplaysFirstClaim(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := orderspostgres.NewIdempotencyStore(db)
	ctx := context.Background()
	jobID := uuid.New()

	missing, err := store.Get(ctx, "portal-req-100")
	require.NoError(t, err)
	assert.Nil(t, missing)

	claimed, err := store.Save(ctx, ports.IdempotencyRecord{
		Key:         "portal-req-100",
		RequestHash: "aaaa",
		JobID:       jobID,
	})
	require.NoError(t, err)
	assert.Equal(t, jobID, claimed.JobID)

	// A retry with the same payload replays the first claim's job.
	replayed, err := store.Save(ctx, ports.IdempotencyRecord{
		Key:         "portal-req-100",
		RequestHash: "aaaa",
		JobID:       uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, jobID, replayed.JobID)

	// Reusing the key for a different payload is a conflict.
	stored, err := store.Save(ctx, ports.IdempotencyRecord{
		Key:         "portal-req-100",
		RequestHash: "bbbb",
		JobID:       uuid.New(),
	})
	assert.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	require.NotNil(t, stored)
	assert.Equal(t, jobID, stored.JobID)
}

func TestPostgresRepository_UpdateMutatesContactsOnly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Create(ctx, newJob(t))
	require.NoError(t, err)

	job := saved.Entity
	pickup := job.Pickup
	pickup.ContactPhone = "+1-555-0199"
	require.NoError(t, job.UpdateStops(pickup, job.Delivery))

	updated, err := repo.Update(ctx, job)
	require.NoError(t, err)
	assert.Equal(t, "+1-555-0199", updated.Entity.Pickup.ContactPhone)
	assert.Equal(t, saved.Entity.JobNumber, updated.Entity.JobNumber)
}
