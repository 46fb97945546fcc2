//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/sslogistics/logipro/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type stopPayload struct {
	Address       string `json:"address"`
	City          string `json:"city"`
	ContactPerson string `json:"contactPerson,omitempty"`
	ContactPhone  string `json:"contactPhone,omitempty"`
}

type jobPayload struct {
	ID                string      `json:"id,omitempty"`
	JobNumber         int64       `json:"jobNumber,omitempty"`
	ServiceType       string      `json:"serviceType"`
	CargoDescription  string      `json:"cargoDescription"`
	Pickup            stopPayload `json:"pickup"`
	Delivery          stopPayload `json:"delivery"`
	RequestedPickupAt string      `json:"requestedPickupAt"`
	Status            string      `json:"status,omitempty"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestDispatchPortalContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	requestJob := jobPayload{
		ServiceType:      "RESIDENTIAL_MOVING",
		CargoDescription: "three-bedroom household",
		Pickup: stopPayload{
			Address:       "12 Oak Street",
			City:          "Springfield",
			ContactPerson: "Ada Nowak",
			ContactPhone:  "+1-555-0101",
		},
		Delivery: stopPayload{
			Address:       "400 Pine Avenue",
			City:          "Shelbyville",
			ContactPerson: "Jan Kowalski",
			ContactPhone:  "+1-555-0102",
		},
		RequestedPickupAt: "2026-09-15T08:00:00Z",
	}
	stopMatcher := func(s stopPayload) matchers.Map {
		return matchers.Map{
			"address":       matchers.Like(s.Address),
			"city":          matchers.Like(s.City),
			"contactPerson": matchers.Like(s.ContactPerson),
			"contactPhone":  matchers.Like(s.ContactPhone),
		}
	}
	uuidPattern := "[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}"
	jobBodyMatcher := matchers.Map{
		"id":                matchers.Regex(pacttest.ExistingJobID, uuidPattern),
		"jobNumber":         matchers.Like(1001),
		"serviceType":       matchers.Term(requestJob.ServiceType, "RESIDENTIAL_MOVING|OFFICE_RELOCATION|PALLET_DELIVERY|SMALL_DELIVERIES"),
		"cargoDescription":  matchers.Like(requestJob.CargoDescription),
		"pickup":            stopMatcher(requestJob.Pickup),
		"delivery":          stopMatcher(requestJob.Delivery),
		"requestedPickupAt": matchers.Like(requestJob.RequestedPickupAt),
		"status":            matchers.Term("PENDING", "PENDING|ASSIGNED|PICKED_UP|IN_TRANSIT|OUT_FOR_DELIVERY|DELIVERED|CANCELLED|FAILED"),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateJobsBaseline).
		UponReceiving("a request to place a job").
		WithRequest("POST", "/v1/jobs", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.Header("X-User-Role", matchers.Term("MANAGER", "ADMIN|MANAGER"))
			b.JSONBody(matchers.Map{
				"serviceType":       matchers.Like(requestJob.ServiceType),
				"cargoDescription":  matchers.Like(requestJob.CargoDescription),
				"pickup":            stopMatcher(requestJob.Pickup),
				"delivery":          stopMatcher(requestJob.Delivery),
				"requestedPickupAt": matchers.Like(requestJob.RequestedPickupAt),
			})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(jobBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateJobExists).
		UponReceiving("a request to fetch an existing job").
		WithRequest("GET", "/v1/jobs/"+pacttest.ExistingJobID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(jobBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateJobMissing).
		UponReceiving("a request for a missing job").
		WithRequest("GET", "/v1/jobs/"+pacttest.MissingJobID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newJobClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		created, err := client.CreateJob(ctx, requestJob)
		if err != nil {
			return fmt.Errorf("create job: %w", err)
		}
		if created == nil || created.ID == "" || created.JobNumber == 0 {
			return fmt.Errorf("expected created job id and number to be set")
		}

		fetched, err := client.GetJob(ctx, pacttest.ExistingJobID)
		if err != nil {
			return fmt.Errorf("get job: %w", err)
		}
		if fetched == nil || fetched.ID != pacttest.ExistingJobID {
			return fmt.Errorf("expected job id %s, got %+v", pacttest.ExistingJobID, fetched)
		}

		if _, err := client.GetJob(ctx, pacttest.MissingJobID); err == nil {
			return fmt.Errorf("expected 404 for job %s", pacttest.MissingJobID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		return nil
	})
	require.NoError(t, err)
}

type jobClient struct {
	baseURL    string
	httpClient *http.Client
}

func newJobClient(config pactconsumer.MockServerConfig) *jobClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &jobClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *jobClient) CreateJob(ctx context.Context, job jobPayload) (*jobPayload, error) {
	body, err := json.Marshal(job)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/jobs", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Role", "MANAGER")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload jobPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *jobClient) GetJob(ctx context.Context, id string) (*jobPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/jobs/"+id, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload jobPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
