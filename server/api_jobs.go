package logiproserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	jobhttpmapper "github.com/sslogistics/logipro/internal/domains/orders/adapters/http/mapper"
	ordersapp "github.com/sslogistics/logipro/internal/domains/orders/application"
	jobtypes "github.com/sslogistics/logipro/internal/domains/orders/application/types"
	ordersports "github.com/sslogistics/logipro/internal/domains/orders/ports"
	apierrors "github.com/sslogistics/logipro/internal/shared/errors"
)

// JobsAPI wires HTTP transport with the orders bounded context service and workflows.
type JobsAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewJobsAPI creates a JobsAPI backed by the provided service.
func NewJobsAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) JobsAPI {
	return JobsAPI{service: service, workflows: workflows}
}

// Post /v1/jobs
// Place a new transportation job
func (api *JobsAPI) CreateJob(c *gin.Context) {
	var payload jobhttpmapper.CreateJobRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := jobhttpmapper.ToCreateInput(payload, c.GetHeader("Idempotency-Key"))
	saved, err := api.createJob(c.Request.Context(), input)
	if err != nil {
		respondJobServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, jobhttpmapper.FromProjection(saved))
}

func (api *JobsAPI) createJob(ctx context.Context, input jobtypes.CreateJobInput) (*jobtypes.JobProjection, error) {
	if api.workflows != nil {
		return api.workflows.CreateJob(ctx, input)
	}
	return api.service.CreateJob(ctx, input)
}

// Get /v1/jobs
// List jobs, optionally filtered by customer
func (api *JobsAPI) ListJobs(c *gin.Context) {
	if raw := c.Query("customerId"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		result, err := api.service.ListJobsByCustomer(c.Request.Context(), customerID)
		if err != nil {
			respondJobServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, jobhttpmapper.FromProjectionList(result))
		return
	}
	result, err := api.service.ListJobs(c.Request.Context())
	if err != nil {
		respondJobServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobhttpmapper.FromProjectionList(result))
}

// Get /v1/jobs/:jobId
// Load a job with its derived status and timeline
func (api *JobsAPI) GetJob(c *gin.Context) {
	id, ok := parseUUIDParam(c, "jobId")
	if !ok {
		return
	}
	job, err := api.service.GetJob(c.Request.Context(), jobtypes.JobIdentifier{ID: id})
	if err != nil {
		respondJobServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobhttpmapper.FromProjection(job))
}

// Get /v1/jobs/:jobId/status
// Resolve only the derived status
func (api *JobsAPI) GetJobStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "jobId")
	if !ok {
		return
	}
	status := api.service.ResolveStatus(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"jobId": id, "status": string(status)})
}

// Get /v1/jobs/:jobId/timeline
// Full ledger history in ascending timestamp order
func (api *JobsAPI) GetJobTimeline(c *gin.Context) {
	id, ok := parseUUIDParam(c, "jobId")
	if !ok {
		return
	}
	entries, err := api.service.Timeline(c.Request.Context(), id)
	if err != nil {
		respondJobServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobhttpmapper.FromTimeline(entries))
}

// Post /v1/jobs/:jobId/progress
// Driver-reported status event
func (api *JobsAPI) ReportProgress(c *gin.Context) {
	id, ok := parseUUIDParam(c, "jobId")
	if !ok {
		return
	}
	var payload jobhttpmapper.ReportProgressRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	entry, err := api.service.ReportProgress(c.Request.Context(), jobhttpmapper.ToProgressInput(id, payload))
	if err != nil {
		respondJobServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, jobhttpmapper.FromTimelineEntry(entry))
}

// Patch /v1/jobs/:jobId/contacts
// Correct contact details on an existing job
func (api *JobsAPI) UpdateJobContacts(c *gin.Context) {
	id, ok := parseUUIDParam(c, "jobId")
	if !ok {
		return
	}
	var payload jobhttpmapper.UpdateJobContactsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateJobContacts(c.Request.Context(), jobhttpmapper.ToContactsInput(id, payload))
	if err != nil {
		respondJobServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobhttpmapper.FromProjection(updated))
}

// Delete /v1/jobs/:jobId
// Remove a job together with its ledger, shipment, and invoice
func (api *JobsAPI) DeleteJob(c *gin.Context) {
	id, ok := parseUUIDParam(c, "jobId")
	if !ok {
		return
	}
	if err := api.service.DeleteJob(c.Request.Context(), jobtypes.JobIdentifier{ID: id}); err != nil {
		respondJobServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return uuid.Nil, false
	}
	return id, true
}

func respondJobServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, ordersports.ErrNotFound) {
		respondError(c, http.StatusNotFound, err)
		return
	}
	if errors.Is(err, ordersports.ErrIdempotencyConflict) {
		respondError(c, http.StatusConflict, err)
		return
	}
	if errors.Is(err, ordersapp.ErrInvalidInput) {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	respondError(c, http.StatusInternalServerError, err)
}
