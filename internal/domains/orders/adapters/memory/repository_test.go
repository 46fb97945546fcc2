package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sslogistics/logipro/internal/domains/orders/domain"
	"github.com/sslogistics/logipro/internal/domains/orders/ports"
)

func seedJob(t *testing.T, repo *Repository) uuid.UUID {
	t.Helper()
	stop := domain.Stop{
		Address:       "1 Test Lane",
		City:          "Testville",
		ContactPerson: "Contact",
		ContactPhone:  "+1-555-0100",
	}
	job, err := domain.NewJob(uuid.New(), nil, domain.ServiceSmallDeliveries, "boxes", stop, stop, time.Now())
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), job)
	require.NoError(t, err)
	return job.ID
}

func appendEntry(t *testing.T, repo *Repository, jobID uuid.UUID, status domain.TimelineStatus, markCurrent bool) *domain.TimelineEntry {
	t.Helper()
	entry, err := domain.NewTimelineEntry(jobID, status, "", "")
	require.NoError(t, err)
	appended, err := repo.Append(context.Background(), entry, markCurrent)
	require.NoError(t, err)
	return appended
}

func TestCreate_AssignsMonotonicJobNumbers(t *testing.T) {
	repo := NewRepository()

	first := seedJob(t, repo)
	second := seedJob(t, repo)

	a, err := repo.GetByID(context.Background(), first)
	require.NoError(t, err)
	b, err := repo.GetByID(context.Background(), second)
	require.NoError(t, err)
	require.Equal(t, domain.FirstJobNumber, a.Entity.JobNumber)
	require.Equal(t, domain.FirstJobNumber+1, b.Entity.JobNumber)
}

func TestCreate_ConcurrentJobNumbersAreUnique(t *testing.T) {
	repo := NewRepository()
	const jobs = 50

	stop := domain.Stop{
		Address:       "1 Test Lane",
		City:          "Testville",
		ContactPerson: "Contact",
		ContactPhone:  "+1-555-0100",
	}
	errs := make(chan error, jobs)
	var wg sync.WaitGroup
	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			job, err := domain.NewJob(uuid.New(), nil, domain.ServiceSmallDeliveries, "boxes", stop, stop, time.Now())
			if err == nil {
				_, err = repo.Create(context.Background(), job)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, jobs)

	seen := map[int64]bool{}
	for _, item := range all {
		require.False(t, seen[item.Entity.JobNumber], "job number %d assigned twice", item.Entity.JobNumber)
		seen[item.Entity.JobNumber] = true
	}
}

func TestAppend_KeepsSingleCurrentEntry(t *testing.T) {
	repo := NewRepository()
	jobID := seedJob(t, repo)

	appendEntry(t, repo, jobID, domain.TimelineOrderPlaced, true)
	appendEntry(t, repo, jobID, domain.TimelinePickedUp, true)
	last := appendEntry(t, repo, jobID, domain.TimelineInTransit, true)

	current, err := repo.Current(context.Background(), jobID)
	require.NoError(t, err)
	require.Equal(t, last.ID, current.ID)

	history, err := repo.History(context.Background(), jobID)
	require.NoError(t, err)
	count := 0
	for _, entry := range history {
		if entry.IsCurrent {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestAppend_ConcurrentAppendsPreserveInvariant(t *testing.T) {
	repo := NewRepository()
	jobID := seedJob(t, repo)

	errs := make(chan error, 25)
	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry, err := domain.NewTimelineEntry(jobID, domain.TimelinePickedUp, "", "")
			if err == nil {
				_, err = repo.Append(context.Background(), entry, true)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	history, err := repo.History(context.Background(), jobID)
	require.NoError(t, err)
	require.Len(t, history, 25)
	count := 0
	for _, entry := range history {
		if entry.IsCurrent {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestAppend_WithoutMarkCurrentLeavesCurrentAlone(t *testing.T) {
	repo := NewRepository()
	jobID := seedJob(t, repo)

	current := appendEntry(t, repo, jobID, domain.TimelinePickedUp, true)
	appendEntry(t, repo, jobID, domain.TimelineOrderPlaced, false)

	got, err := repo.Current(context.Background(), jobID)
	require.NoError(t, err)
	require.Equal(t, current.ID, got.ID)
}

func TestAppend_UnknownJobRejected(t *testing.T) {
	repo := NewRepository()

	entry, err := domain.NewTimelineEntry(uuid.New(), domain.TimelinePickedUp, "", "")
	require.NoError(t, err)
	_, err = repo.Append(context.Background(), entry, true)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestCurrent_NoEntriesReturnsSentinel(t *testing.T) {
	repo := NewRepository()
	jobID := seedJob(t, repo)

	_, err := repo.Current(context.Background(), jobID)
	require.ErrorIs(t, err, ports.ErrNoCurrentEntry)
}

func TestHistory_SameTimestampOrderedByInsertion(t *testing.T) {
	repo := NewRepository()
	frozen := time.Date(2026, 9, 16, 12, 0, 0, 0, time.UTC)
	repo.WithClock(func() time.Time { return frozen })
	jobID := seedJob(t, repo)

	first := appendEntry(t, repo, jobID, domain.TimelineOrderPlaced, true)
	second := appendEntry(t, repo, jobID, domain.TimelinePickedUp, true)

	history, err := repo.History(context.Background(), jobID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, first.ID, history[0].ID)
	require.Equal(t, second.ID, history[1].ID)
}

func TestDelete_CascadesTimeline(t *testing.T) {
	repo := NewRepository()
	jobID := seedJob(t, repo)
	appendEntry(t, repo, jobID, domain.TimelinePickedUp, true)

	require.NoError(t, repo.Delete(context.Background(), jobID))

	history, err := repo.History(context.Background(), jobID)
	require.NoError(t, err)
	require.Empty(t, history)
	require.ErrorIs(t, repo.Delete(context.Background(), jobID), ports.ErrNotFound)
}

func TestUpdate_PreservesJobNumber(t *testing.T) {
	repo := NewRepository()
	jobID := seedJob(t, repo)

	loaded, err := repo.GetByID(context.Background(), jobID)
	require.NoError(t, err)
	job := loaded.Entity
	job.JobNumber = 0
	require.NoError(t, job.UpdateCargo("replacement cargo"))

	updated, err := repo.Update(context.Background(), job)
	require.NoError(t, err)
	require.Equal(t, domain.FirstJobNumber, updated.Entity.JobNumber)
	require.Equal(t, "replacement cargo", updated.Entity.CargoDescription)
}
