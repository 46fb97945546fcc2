// Package billing adapts the billing context's service to the invoicing
// collaborator port the orders context consumes.
package billing

import (
	"context"

	"github.com/google/uuid"

	billingports "github.com/sslogistics/logipro/internal/domains/billing/ports"
	ordersdomain "github.com/sslogistics/logipro/internal/domains/orders/domain"
	ordersports "github.com/sslogistics/logipro/internal/domains/orders/ports"
)

var _ ordersports.Invoicer = (*Invoicer)(nil)

// Invoicer bridges draft invoicing into the billing context.
type Invoicer struct {
	service billingports.Service
}

// NewInvoicer wraps the billing service.
func NewInvoicer(service billingports.Service) *Invoicer {
	return &Invoicer{service: service}
}

func (i *Invoicer) EnsureDraftForJob(ctx context.Context, jobID uuid.UUID, serviceType ordersdomain.ServiceType) error {
	_, err := i.service.EnsureDraftForJob(ctx, jobID, string(serviceType))
	return err
}

func (i *Invoicer) DropForJob(ctx context.Context, jobID uuid.UUID) error {
	return i.service.DeleteInvoiceByJob(ctx, jobID)
}
