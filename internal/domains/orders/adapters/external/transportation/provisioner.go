// Package transportation adapts the transportation context's service to the
// collaborator ports the orders context consumes.
package transportation

import (
	"context"
	"errors"

	"github.com/google/uuid"

	ordersdomain "github.com/sslogistics/logipro/internal/domains/orders/domain"
	ordersports "github.com/sslogistics/logipro/internal/domains/orders/ports"
	transportports "github.com/sslogistics/logipro/internal/domains/transportation/ports"
)

var _ ordersports.ShipmentProvisioner = (*Provisioner)(nil)

// Provisioner bridges job provisioning and progress mirroring into the
// transportation context.
type Provisioner struct {
	service transportports.Service
}

// NewProvisioner wraps the transportation service.
func NewProvisioner(service transportports.Service) *Provisioner {
	return &Provisioner{service: service}
}

func (p *Provisioner) EnsureForJob(ctx context.Context, jobID uuid.UUID) error {
	_, err := p.service.ProvisionShipment(ctx, jobID)
	return err
}

func (p *Provisioner) SummaryForJob(ctx context.Context, jobID uuid.UUID) (*ordersports.ShipmentSummary, error) {
	shipment, err := p.service.GetShipmentByJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, transportports.ErrShipmentNotFound) {
			return nil, ordersports.ErrShipmentNotFound
		}
		return nil, err
	}
	return &ordersports.ShipmentSummary{
		Status:          string(shipment.Entity.Status),
		DriverAssigned:  shipment.Entity.DriverID != nil,
		VehicleAssigned: shipment.Entity.VehicleID != nil,
	}, nil
}

func (p *Provisioner) MirrorProgress(ctx context.Context, jobID uuid.UUID, status ordersdomain.TimelineStatus) error {
	return p.service.MirrorProgress(ctx, jobID, string(status))
}

func (p *Provisioner) ReleaseForJob(ctx context.Context, jobID uuid.UUID) error {
	return p.service.ReleaseShipmentForJob(ctx, jobID)
}
