package logiproserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	shipmenthttpmapper "github.com/sslogistics/logipro/internal/domains/transportation/adapters/http/mapper"
	transportapp "github.com/sslogistics/logipro/internal/domains/transportation/application"
	transportdomain "github.com/sslogistics/logipro/internal/domains/transportation/domain"
	transportports "github.com/sslogistics/logipro/internal/domains/transportation/ports"
	apierrors "github.com/sslogistics/logipro/internal/shared/errors"
)

// ShipmentsAPI wires HTTP transport with the transportation shipment use cases.
type ShipmentsAPI struct {
	service transportports.Service
}

// NewShipmentsAPI creates a ShipmentsAPI backed by the provided service.
func NewShipmentsAPI(service transportports.Service) ShipmentsAPI {
	return ShipmentsAPI{service: service}
}

// Get /v1/shipments
// List all shipments, optionally filtered by driver
func (api *ShipmentsAPI) ListShipments(c *gin.Context) {
	if raw := c.Query("driverId"); raw != "" {
		driverID, ok := parseUUIDQuery(c, raw)
		if !ok {
			return
		}
		result, err := api.service.ListShipmentsByDriver(c.Request.Context(), driverID)
		if err != nil {
			respondShipmentServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, shipmenthttpmapper.FromShipmentList(result))
		return
	}
	result, err := api.service.ListShipments(c.Request.Context())
	if err != nil {
		respondShipmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipmenthttpmapper.FromShipmentList(result))
}

// Get /v1/shipments/:shipmentId
// Load a single shipment
func (api *ShipmentsAPI) GetShipment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "shipmentId")
	if !ok {
		return
	}
	shipment, err := api.service.GetShipment(c.Request.Context(), id)
	if err != nil {
		respondShipmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipmenthttpmapper.FromShipment(shipment))
}

// Get /v1/jobs/:jobId/shipment
// Load the shipment provisioned for a job
func (api *ShipmentsAPI) GetShipmentByJob(c *gin.Context) {
	jobID, ok := parseUUIDParam(c, "jobId")
	if !ok {
		return
	}
	shipment, err := api.service.GetShipmentByJob(c.Request.Context(), jobID)
	if err != nil {
		respondShipmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipmenthttpmapper.FromShipment(shipment))
}

// Patch /v1/shipments/:shipmentId/assignment
// Change the crew and run the assignment transition rule
func (api *ShipmentsAPI) UpdateAssignment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "shipmentId")
	if !ok {
		return
	}
	var payload shipmenthttpmapper.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateAssignment(c.Request.Context(), shipmenthttpmapper.ToAssignmentInput(id, payload))
	if err != nil {
		respondShipmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipmenthttpmapper.FromShipment(updated))
}

// Post /v1/shipments/:shipmentId/proof
// Attach proof-of-delivery references
func (api *ShipmentsAPI) AttachProof(c *gin.Context) {
	id, ok := parseUUIDParam(c, "shipmentId")
	if !ok {
		return
	}
	var payload shipmenthttpmapper.AttachProofRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.AttachProofOfDelivery(c.Request.Context(), shipmenthttpmapper.ToProofInput(id, payload))
	if err != nil {
		respondShipmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipmenthttpmapper.FromShipment(updated))
}

func parseUUIDQuery(c *gin.Context, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return uuid.Nil, false
	}
	return id, true
}

func respondShipmentServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, transportports.ErrShipmentNotFound),
		errors.Is(err, transportports.ErrDriverNotFound),
		errors.Is(err, transportports.ErrVehicleNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, transportdomain.ErrShipmentDelivered):
		respondProblem(c, apierrors.NewStateGuardProblem(string(transportdomain.ShipmentDelivered), "earlier active state").WithDetail(err.Error()))
	case errors.Is(err, transportapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
