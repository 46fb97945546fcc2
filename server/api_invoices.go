package logiproserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/sslogistics/logipro/internal/domains/billing/application"
	billingtypes "github.com/sslogistics/logipro/internal/domains/billing/application/types"
	billingdomain "github.com/sslogistics/logipro/internal/domains/billing/domain"
	billingports "github.com/sslogistics/logipro/internal/domains/billing/ports"
	apierrors "github.com/sslogistics/logipro/internal/shared/errors"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

// InvoicesAPI wires HTTP transport with the billing use cases.
type InvoicesAPI struct {
	service billingports.Service
}

// NewInvoicesAPI creates an InvoicesAPI backed by the provided service.
func NewInvoicesAPI(service billingports.Service) InvoicesAPI {
	return InvoicesAPI{service: service}
}

// Invoice is the HTTP representation of an invoice.
type Invoice struct {
	ID            uuid.UUID  `json:"id"`
	JobID         uuid.UUID  `json:"jobId"`
	Status        string     `json:"status"`
	AmountCents   int64      `json:"amountCents"`
	IssuedAt      time.Time  `json:"issuedAt"`
	DueAt         time.Time  `json:"dueAt"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	PaymentMethod *string    `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time  `json:"createdAt,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt,omitempty"`
}

// RecordPaymentRequest settles an outstanding invoice.
type RecordPaymentRequest struct {
	Method string `json:"method"`
}

// Get /v1/invoices
// List invoices
func (api *InvoicesAPI) ListInvoices(c *gin.Context) {
	result, err := api.service.ListInvoices(c.Request.Context())
	if err != nil {
		respondInvoiceServiceError(c, err)
		return
	}
	invoices := make([]Invoice, 0, len(result))
	for _, p := range result {
		invoices = append(invoices, fromInvoice(p))
	}
	c.JSON(http.StatusOK, invoices)
}

// Get /v1/invoices/:invoiceId
// Load an invoice
func (api *InvoicesAPI) GetInvoice(c *gin.Context) {
	id, ok := parseUUIDParam(c, "invoiceId")
	if !ok {
		return
	}
	invoice, err := api.service.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondInvoiceServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromInvoice(invoice))
}

// Get /v1/jobs/:jobId/invoice
// Load the invoice drafted for a job
func (api *InvoicesAPI) GetInvoiceByJob(c *gin.Context) {
	jobID, ok := parseUUIDParam(c, "jobId")
	if !ok {
		return
	}
	invoice, err := api.service.GetInvoiceByJob(c.Request.Context(), jobID)
	if err != nil {
		respondInvoiceServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromInvoice(invoice))
}

// Post /v1/invoices/:invoiceId/send
// Move a draft invoice to SENT
func (api *InvoicesAPI) SendInvoice(c *gin.Context) {
	id, ok := parseUUIDParam(c, "invoiceId")
	if !ok {
		return
	}
	invoice, err := api.service.SendInvoice(c.Request.Context(), id)
	if err != nil {
		respondInvoiceServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromInvoice(invoice))
}

// Post /v1/invoices/:invoiceId/payments
// Record a payment against an invoice
func (api *InvoicesAPI) RecordPayment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "invoiceId")
	if !ok {
		return
	}
	var payload RecordPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	invoice, err := api.service.RecordPayment(c.Request.Context(), billingtypes.RecordPaymentInput{
		InvoiceID: id,
		Method:    payload.Method,
	})
	if err != nil {
		respondInvoiceServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromInvoice(invoice))
}

// Post /v1/invoices/:invoiceId/void
// Cancel an unsettled invoice
func (api *InvoicesAPI) VoidInvoice(c *gin.Context) {
	id, ok := parseUUIDParam(c, "invoiceId")
	if !ok {
		return
	}
	invoice, err := api.service.VoidInvoice(c.Request.Context(), id)
	if err != nil {
		respondInvoiceServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromInvoice(invoice))
}

func fromInvoice(p *projection.Projection[*billingdomain.Invoice]) Invoice {
	if p == nil || p.Entity == nil {
		return Invoice{}
	}
	inv := p.Entity
	result := Invoice{
		ID:          inv.ID,
		JobID:       inv.JobID,
		Status:      string(inv.Status),
		AmountCents: inv.AmountCents,
		IssuedAt:    inv.IssuedAt,
		DueAt:       inv.DueAt,
		PaidAt:      inv.PaidAt,
		CreatedAt:   p.Metadata.CreatedAt,
		UpdatedAt:   p.Metadata.UpdatedAt,
	}
	if inv.PaymentMethod != nil {
		method := string(*inv.PaymentMethod)
		result.PaymentMethod = &method
	}
	return result
}

func respondInvoiceServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, billingports.ErrNotFound) {
		respondError(c, http.StatusNotFound, err)
		return
	}
	if errors.Is(err, billingapp.ErrInvalidInput) {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	respondError(c, http.StatusInternalServerError, err)
}
