//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/sslogistics/logipro/test/pact"

	billingmemory "github.com/sslogistics/logipro/internal/domains/billing/adapters/memory"
	billingapp "github.com/sslogistics/logipro/internal/domains/billing/application"
	ordersbilling "github.com/sslogistics/logipro/internal/domains/orders/adapters/external/billing"
	orderstransport "github.com/sslogistics/logipro/internal/domains/orders/adapters/external/transportation"
	ordersmemory "github.com/sslogistics/logipro/internal/domains/orders/adapters/memory"
	ordersobs "github.com/sslogistics/logipro/internal/domains/orders/adapters/observability"
	jobworkflows "github.com/sslogistics/logipro/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/sslogistics/logipro/internal/domains/orders/application"
	jobtypes "github.com/sslogistics/logipro/internal/domains/orders/application/types"
	jobdomain "github.com/sslogistics/logipro/internal/domains/orders/domain"
	transportusers "github.com/sslogistics/logipro/internal/domains/transportation/adapters/external/users"
	transportmemory "github.com/sslogistics/logipro/internal/domains/transportation/adapters/memory"
	transportapp "github.com/sslogistics/logipro/internal/domains/transportation/application"
	usersmemory "github.com/sslogistics/logipro/internal/domains/users/adapters/memory"
	usersapp "github.com/sslogistics/logipro/internal/domains/users/application"
	logiproserver "github.com/sslogistics/logipro/server"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestLogiproProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateJobsBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetJobs(t)
			return nil, nil
		},
		pacttest.StateJobExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetJobs(t)
			if setup {
				app.seedJob(t, uuid.MustParse(pacttest.ExistingJobID))
			}
			return nil, nil
		},
		pacttest.StateJobMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetJobs(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetJobs(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo    *ordersmemory.Repository
	service *ordersapp.Service
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	userService := usersapp.NewService(usersmemory.NewRepository())
	transportService := transportapp.NewService(
		transportmemory.NewShipmentRepository(),
		transportmemory.NewDriverRepository(),
		transportmemory.NewVehicleRepository(),
		transportusers.NewDirectory(userService),
	)
	billingService := billingapp.NewService(billingmemory.NewRepository())

	jobRepo := ordersmemory.NewRepository()
	jobService := ordersapp.NewService(
		jobRepo,
		jobRepo,
		orderstransport.NewProvisioner(transportService),
		ordersapp.WithInvoicer(ordersbilling.NewInvoicer(billingService)),
	)
	observedJobs := ordersobs.New(jobService)
	workflows := jobworkflows.NewInlineJobWorkflows(observedJobs)

	handlers := logiproserver.ApiHandleFunctions{
		JobsAPI:      logiproserver.NewJobsAPI(observedJobs, workflows),
		ShipmentsAPI: logiproserver.NewShipmentsAPI(transportService),
		FleetAPI:     logiproserver.NewFleetAPI(transportService),
		InvoicesAPI:  logiproserver.NewInvoicesAPI(billingService),
		UsersAPI:     logiproserver.NewUsersAPI(userService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = logiproserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:    jobRepo,
		service: jobService,
		server:  server,
	}
}

func (a *contractProviderApp) resetJobs(t testing.TB) {
	t.Helper()
	jobs, err := a.repo.List(context.Background())
	require.NoError(t, err)
	for _, projection := range jobs {
		err := a.service.DeleteJob(context.Background(), jobtypes.JobIdentifier{ID: projection.Entity.ID})
		require.NoError(t, err)
	}
}

func (a *contractProviderApp) seedJob(t testing.TB, id uuid.UUID) {
	t.Helper()
	stop := jobdomain.Stop{
		Address:       "12 Oak Street",
		City:          "Springfield",
		ContactPerson: "Ada Nowak",
		ContactPhone:  "+1-555-0101",
	}
	delivery := jobdomain.Stop{
		Address:       "400 Pine Avenue",
		City:          "Shelbyville",
		ContactPerson: "Jan Kowalski",
		ContactPhone:  "+1-555-0102",
	}
	job, err := jobdomain.NewJob(id, nil, jobdomain.ServiceResidentialMoving, "three-bedroom household",
		stop, delivery, time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = a.repo.Create(context.Background(), job)
	require.NoError(t, err)
}
