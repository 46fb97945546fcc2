package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNextStatus_FullCrewPromotesPending(t *testing.T) {
	shipment := NewShipment(uuid.New(), uuid.New())
	driver, vehicle := uuid.New(), uuid.New()

	require.Equal(t, ShipmentAssigned, shipment.NextStatus(&driver, &vehicle))
	require.Equal(t, ShipmentPending, shipment.NextStatus(&driver, nil))
	require.Equal(t, ShipmentPending, shipment.NextStatus(nil, &vehicle))
	require.Equal(t, ShipmentPending, shipment.NextStatus(nil, nil))
}

func TestNextStatus_IncompleteCrewDemotesAssigned(t *testing.T) {
	shipment := NewShipment(uuid.New(), uuid.New())
	driver, vehicle := uuid.New(), uuid.New()
	require.NoError(t, shipment.ApplyStatus(ShipmentAssigned, time.Now()))

	require.Equal(t, ShipmentPending, shipment.NextStatus(nil, &vehicle))
	require.Equal(t, ShipmentPending, shipment.NextStatus(&driver, nil))
	require.Equal(t, ShipmentAssigned, shipment.NextStatus(&driver, &vehicle))
}

func TestNextStatus_InMotionKeepsStatus(t *testing.T) {
	shipment := NewShipment(uuid.New(), uuid.New())
	require.NoError(t, shipment.ApplyStatus(ShipmentInTransit, time.Now()))

	// Crew changes mid-transit never bounce the status back.
	require.Equal(t, ShipmentInTransit, shipment.NextStatus(nil, nil))
}

func TestApplyStatus_DeliveredIsTerminalExceptFailed(t *testing.T) {
	shipment := NewShipment(uuid.New(), uuid.New())
	require.NoError(t, shipment.ApplyStatus(ShipmentDelivered, time.Now()))

	for _, status := range []ShipmentStatus{ShipmentPending, ShipmentAssigned, ShipmentInTransit} {
		err := shipment.ApplyStatus(status, time.Now())
		require.ErrorIs(t, err, ErrShipmentDelivered)
		require.Equal(t, ShipmentDelivered, shipment.Status)
	}

	require.NoError(t, shipment.ApplyStatus(ShipmentFailed, time.Now()))
	require.Equal(t, ShipmentFailed, shipment.Status)
}

func TestApplyStatus_StampsActualTimestampsOnce(t *testing.T) {
	shipment := NewShipment(uuid.New(), uuid.New())
	departed := time.Date(2026, 9, 16, 7, 30, 0, 0, time.UTC)
	arrived := departed.Add(6 * time.Hour)

	require.NoError(t, shipment.ApplyStatus(ShipmentInTransit, departed))
	require.NotNil(t, shipment.ActualDepartureAt)
	require.Equal(t, departed, *shipment.ActualDepartureAt)

	// A repeated IN_TRANSIT report keeps the original departure time.
	require.NoError(t, shipment.ApplyStatus(ShipmentInTransit, departed.Add(time.Hour)))
	require.Equal(t, departed, *shipment.ActualDepartureAt)

	require.NoError(t, shipment.ApplyStatus(ShipmentDelivered, arrived))
	require.NotNil(t, shipment.ActualArrivalAt)
	require.Equal(t, arrived, *shipment.ActualArrivalAt)
}

func TestApplyStatus_RejectsUnknownStatus(t *testing.T) {
	shipment := NewShipment(uuid.New(), uuid.New())
	err := shipment.ApplyStatus(ShipmentStatus("TELEPORTED"), time.Now())
	require.ErrorIs(t, err, ErrInvalidShipmentStatus)
}

func TestResetForProvisioning_ClearsEverything(t *testing.T) {
	shipment := NewShipment(uuid.New(), uuid.New())
	driver, vehicle := uuid.New(), uuid.New()
	shipment.Assign(&driver, &vehicle)
	require.NoError(t, shipment.ApplyStatus(ShipmentDelivered, time.Now()))
	shipment.AttachProof([]string{"https://pod.example.com/1.jpg"})

	shipment.ResetForProvisioning()

	require.Equal(t, ShipmentPending, shipment.Status)
	require.Nil(t, shipment.DriverID)
	require.Nil(t, shipment.VehicleID)
	require.Nil(t, shipment.ActualDepartureAt)
	require.Nil(t, shipment.ActualArrivalAt)
	require.Empty(t, shipment.ProofOfDelivery)
}

func TestAttachProof_SkipsDuplicatesAndEmpty(t *testing.T) {
	shipment := NewShipment(uuid.New(), uuid.New())

	shipment.AttachProof([]string{"https://pod.example.com/1.jpg", ""})
	shipment.AttachProof([]string{"https://pod.example.com/1.jpg", "https://pod.example.com/2.jpg"})

	require.Equal(t, []string{
		"https://pod.example.com/1.jpg",
		"https://pod.example.com/2.jpg",
	}, shipment.ProofOfDelivery)
}

func TestMirrorTimeline_OnlyInMotionStatusesCarryOver(t *testing.T) {
	shipment := NewShipment(uuid.New(), uuid.New())

	changed, err := shipment.MirrorTimeline("PICKED_UP", time.Now())
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, ShipmentPending, shipment.Status)

	changed, err = shipment.MirrorTimeline("IN_TRANSIT", time.Now())
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, ShipmentInTransit, shipment.Status)

	changed, err = shipment.MirrorTimeline("DELIVERED", time.Now())
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, ShipmentDelivered, shipment.Status)
}
