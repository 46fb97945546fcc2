//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	quotespostgres "github.com/sslogistics/logipro/internal/domains/quotes/adapters/persistence/postgres"
	"github.com/sslogistics/logipro/internal/domains/quotes/domain"
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
		_ = pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestPostgresConfigStore_SeedsAndUpdatesSingletonRow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := quotespostgres.NewConfigStore(db)
	ctx := context.Background()

	// First load seeds the defaults.
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultRateConfig(), *loaded.Entity)

	updated := loaded.Entity.Clone()
	updated.BaseRatePerMileCents = 325
	updated.ServiceMultipliers["OFFICE_RELOCATION"] = 2.5
	saved, err := store.Save(ctx, updated)
	require.NoError(t, err)
	require.Equal(t, int64(325), saved.Entity.BaseRatePerMileCents)
	require.Equal(t, 2.5, saved.Entity.ServiceMultipliers["OFFICE_RELOCATION"])

	// A second store sees the same row, not a reseeded one.
	other := quotespostgres.NewConfigStore(db)
	reloaded, err := other.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(325), reloaded.Entity.BaseRatePerMileCents)
	require.Equal(t, 2.5, reloaded.Entity.ServiceMultipliers["OFFICE_RELOCATION"])
}
