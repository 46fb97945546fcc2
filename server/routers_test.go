package logiproserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	billingmemory "github.com/sslogistics/logipro/internal/domains/billing/adapters/memory"
	billingapp "github.com/sslogistics/logipro/internal/domains/billing/application"
	ordersbilling "github.com/sslogistics/logipro/internal/domains/orders/adapters/external/billing"
	orderstransport "github.com/sslogistics/logipro/internal/domains/orders/adapters/external/transportation"
	ordersmemory "github.com/sslogistics/logipro/internal/domains/orders/adapters/memory"
	jobworkflows "github.com/sslogistics/logipro/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/sslogistics/logipro/internal/domains/orders/application"
	quotesmemory "github.com/sslogistics/logipro/internal/domains/quotes/adapters/memory"
	quotesapp "github.com/sslogistics/logipro/internal/domains/quotes/application"
	transportusers "github.com/sslogistics/logipro/internal/domains/transportation/adapters/external/users"
	transportmemory "github.com/sslogistics/logipro/internal/domains/transportation/adapters/memory"
	transportapp "github.com/sslogistics/logipro/internal/domains/transportation/application"
	usersmemory "github.com/sslogistics/logipro/internal/domains/users/adapters/memory"
	usersapp "github.com/sslogistics/logipro/internal/domains/users/application"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	handlers := ApiHandleFunctions{
		JobsAPI:      NewJobsAPI(jobService, jobworkflows.NewInlineJobWorkflows(jobService)),
		ShipmentsAPI: NewShipmentsAPI(transportService),
		FleetAPI:     NewFleetAPI(transportService),
		InvoicesAPI:  NewInvoicesAPI(billingService),
		QuotesAPI:    NewQuotesAPI(quotesapp.NewService(quotesmemory.NewConfigStore())),
		UsersAPI:     NewUsersAPI(userService),
	}
	return NewRouterWithGinEngine(gin.New(), handlers)
}

func createJobBody() []byte {
	body, _ := json.Marshal(map[string]any{
		"serviceType":      "RESIDENTIAL_MOVING",
		"cargoDescription": "three-bedroom household",
		"pickup": map[string]any{
			"address":       "12 Oak Street",
			"city":          "Springfield",
			"contactPerson": "Ada Nowak",
			"contactPhone":  "+1-555-0101",
		},
		"delivery": map[string]any{
			"address":       "400 Pine Avenue",
			"city":          "Shelbyville",
			"contactPerson": "Jan Kowalski",
			"contactPhone":  "+1-555-0102",
		},
		"requestedPickupAt": "2026-09-15T08:00:00Z",
	})
	return body
}

func doRequest(router *gin.Engine, method, path, role string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set(IdentityRoleHeader, role)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateJob_RequiresIdentityRole(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/v1/jobs", "", createJobBody())
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestCreateJob_RejectsCustomerRole(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/v1/jobs", "CUSTOMER", createJobBody())
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateJob_ManagerPlacesJob(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/v1/jobs", "MANAGER", createJobBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID        string `json:"id"`
		JobNumber int64  `json:"jobNumber"`
		Status    string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, int64(1001), created.JobNumber)
	require.Equal(t, "PENDING", created.Status)

	// Reads are ungated.
	rec = doRequest(router, http.MethodGet, "/v1/jobs/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateJob_InvalidServiceTypeIsProblemDetail(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]any{
		"serviceType":       "TELEPORTATION",
		"cargoDescription":  "a piano",
		"pickup":            map[string]any{"address": "1 A St", "city": "X", "contactPerson": "P", "contactPhone": "1"},
		"delivery":          map[string]any{"address": "2 B St", "city": "Y", "contactPerson": "Q", "contactPhone": "2"},
		"requestedPickupAt": "2026-09-15T08:00:00Z",
	})
	rec := doRequest(router, http.MethodPost, "/v1/jobs", "ADMIN", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var problem struct {
		Type   string `json:"type"`
		Status int    `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, "/problems/validation-error", problem.Type)
}

func TestGetJob_UnknownIDReturnsNotFoundProblem(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/v1/jobs/2c6a4a63-0f2f-4a7c-9a1f-000000000000", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestReportProgress_DriverRoleAllowed(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/v1/jobs", "MANAGER", createJobBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	body, _ := json.Marshal(map[string]any{
		"status":   "PICKED_UP",
		"location": "Springfield depot",
	})
	rec = doRequest(router, http.MethodPost, "/v1/jobs/"+created.ID+"/progress", "DRIVER", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(router, http.MethodGet, "/v1/jobs/"+created.ID+"/status", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var status struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Equal(t, "PICKED_UP", status.Status)
}

func TestCalculateQuote_PublicEndpointNeedsNoRole(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]any{
		"origin":        "Chicago",
		"destination":   "St. Louis",
		"serviceType":   "OFFICE_RELOCATION",
		"distanceMiles": 300,
	})
	rec := doRequest(router, http.MethodPost, "/v1/quotes/calculate", "", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var quote struct {
		TotalCents         int64  `json:"totalCents"`
		RecommendedPricing string `json:"recommendedPricing"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	require.Equal(t, int64(150000), quote.TotalCents)
	require.Equal(t, "FLAT_RATE", quote.RecommendedPricing)
}

func TestQuoteRateConfig_AdminOnly(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/v1/quotes/config", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Managers edit jobs, not the company rate sheet.
	rec = doRequest(router, http.MethodGet, "/v1/quotes/config", "MANAGER", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(router, http.MethodGet, "/v1/quotes/config", "ADMIN", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateQuoteRateConfig_ChangesSubsequentQuotes(t *testing.T) {
	router := newTestRouter(t)

	update, _ := json.Marshal(map[string]any{"baseRatePerMileCents": 500})
	rec := doRequest(router, http.MethodPut, "/v1/quotes/config", "ADMIN", update)
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := json.Marshal(map[string]any{
		"origin":        "Chicago",
		"destination":   "St. Louis",
		"serviceType":   "OFFICE_RELOCATION",
		"distanceMiles": 300,
	})
	rec = doRequest(router, http.MethodPost, "/v1/quotes/calculate", "", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var quote struct {
		TotalCents int64 `json:"totalCents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	require.Equal(t, int64(300000), quote.TotalCents)
}

func TestUpdateQuoteRateConfig_InvalidRateIsProblemDetail(t *testing.T) {
	router := newTestRouter(t)

	update, _ := json.Marshal(map[string]any{"minimumChargeCents": 0, "baseRatePerMileCents": -5})
	rec := doRequest(router, http.MethodPut, "/v1/quotes/config", "ADMIN", update)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestDeleteJob_CascadesThroughContexts(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/v1/jobs", "MANAGER", createJobBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doRequest(router, http.MethodGet, "/v1/jobs/"+created.ID+"/shipment", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodDelete, "/v1/jobs/"+created.ID, "ADMIN", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(router, http.MethodGet, "/v1/jobs/"+created.ID, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = doRequest(router, http.MethodGet, "/v1/jobs/"+created.ID+"/shipment", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
