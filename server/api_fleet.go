package logiproserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	shipmenthttpmapper "github.com/sslogistics/logipro/internal/domains/transportation/adapters/http/mapper"
	transporttypes "github.com/sslogistics/logipro/internal/domains/transportation/application/types"
	transportports "github.com/sslogistics/logipro/internal/domains/transportation/ports"
)

// FleetAPI wires HTTP transport with driver and vehicle reference data.
type FleetAPI struct {
	service transportports.Service
}

// NewFleetAPI creates a FleetAPI backed by the provided service.
func NewFleetAPI(service transportports.Service) FleetAPI {
	return FleetAPI{service: service}
}

// Post /v1/drivers
// Register a driver profile for an existing user account
func (api *FleetAPI) CreateDriver(c *gin.Context) {
	var payload shipmenthttpmapper.CreateDriverRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := transporttypes.CreateDriverInput{
		UserID:        payload.UserID,
		LicenseNumber: payload.LicenseNumber,
		Phone:         payload.Phone,
	}
	saved, err := api.service.CreateDriver(c.Request.Context(), input)
	if err != nil {
		respondShipmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shipmenthttpmapper.FromDriver(saved))
}

// Get /v1/drivers
// List driver profiles
func (api *FleetAPI) ListDrivers(c *gin.Context) {
	result, err := api.service.ListDrivers(c.Request.Context())
	if err != nil {
		respondShipmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipmenthttpmapper.FromDriverList(result))
}

// Get /v1/drivers/:driverId
// Load a driver profile
func (api *FleetAPI) GetDriver(c *gin.Context) {
	id, ok := parseUUIDParam(c, "driverId")
	if !ok {
		return
	}
	driver, err := api.service.GetDriver(c.Request.Context(), id)
	if err != nil {
		respondShipmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipmenthttpmapper.FromDriver(driver))
}

// Delete /v1/drivers/:driverId
// Remove a driver profile
func (api *FleetAPI) DeleteDriver(c *gin.Context) {
	id, ok := parseUUIDParam(c, "driverId")
	if !ok {
		return
	}
	if err := api.service.DeleteDriver(c.Request.Context(), id); err != nil {
		respondShipmentServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /v1/vehicles
// Register a fleet vehicle
func (api *FleetAPI) CreateVehicle(c *gin.Context) {
	var payload shipmenthttpmapper.CreateVehicleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := transporttypes.CreateVehicleInput{
		LicensePlate: payload.LicensePlate,
		Model:        payload.Model,
		CapacityKG:   payload.CapacityKG,
	}
	saved, err := api.service.CreateVehicle(c.Request.Context(), input)
	if err != nil {
		respondShipmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shipmenthttpmapper.FromVehicle(saved))
}

// Get /v1/vehicles
// List fleet vehicles
func (api *FleetAPI) ListVehicles(c *gin.Context) {
	result, err := api.service.ListVehicles(c.Request.Context())
	if err != nil {
		respondShipmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipmenthttpmapper.FromVehicleList(result))
}

// Get /v1/vehicles/:vehicleId
// Load a fleet vehicle
func (api *FleetAPI) GetVehicle(c *gin.Context) {
	id, ok := parseUUIDParam(c, "vehicleId")
	if !ok {
		return
	}
	vehicle, err := api.service.GetVehicle(c.Request.Context(), id)
	if err != nil {
		respondShipmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipmenthttpmapper.FromVehicle(vehicle))
}

// Patch /v1/vehicles/:vehicleId/status
// Change a vehicle's availability
func (api *FleetAPI) UpdateVehicleStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "vehicleId")
	if !ok {
		return
	}
	var payload shipmenthttpmapper.UpdateVehicleStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateVehicleStatus(c.Request.Context(), transporttypes.UpdateVehicleStatusInput{
		VehicleID: id,
		Status:    payload.Status,
	})
	if err != nil {
		respondShipmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipmenthttpmapper.FromVehicle(updated))
}

// Delete /v1/vehicles/:vehicleId
// Remove a fleet vehicle
func (api *FleetAPI) DeleteVehicle(c *gin.Context) {
	id, ok := parseUUIDParam(c, "vehicleId")
	if !ok {
		return
	}
	if err := api.service.DeleteVehicle(c.Request.Context(), id); err != nil {
		respondShipmentServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
