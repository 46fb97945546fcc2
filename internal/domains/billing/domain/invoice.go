package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus is the billing lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "DRAFT"
	InvoiceSent  InvoiceStatus = "SENT"
	InvoicePaid  InvoiceStatus = "PAID"
	InvoiceVoid  InvoiceStatus = "VOID"
)

// PaymentMethod records how a paid invoice was settled.
type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "CARD"
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// DraftDuePeriod is how long a customer has to settle a freshly drafted
// invoice.
const DraftDuePeriod = 14 * 24 * time.Hour

var (
	ErrInvoiceNotDraft      = errors.New("invoice is not in draft state")
	ErrInvoiceClosed        = errors.New("invoice is already settled or void")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

var paymentMethods = map[PaymentMethod]struct{}{
	PaymentCard:         {},
	PaymentCash:         {},
	PaymentBankTransfer: {},
}

// ParsePaymentMethod validates a raw payment method value.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	method := PaymentMethod(raw)
	if _, ok := paymentMethods[method]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, raw)
	}
	return method, nil
}

// Invoice bills a job. Amounts are integer cents; exactly one invoice exists
// per job.
type Invoice struct {
	ID            uuid.UUID
	JobID         uuid.UUID
	Status        InvoiceStatus
	AmountCents   int64
	IssuedAt      time.Time
	DueAt         time.Time
	PaidAt        *time.Time
	PaymentMethod *PaymentMethod
}

// NewDraft creates a DRAFT invoice due DraftDuePeriod after issue.
func NewDraft(id, jobID uuid.UUID, amountCents int64, issuedAt time.Time) *Invoice {
	issued := issuedAt.UTC()
	return &Invoice{
		ID:          id,
		JobID:       jobID,
		Status:      InvoiceDraft,
		AmountCents: amountCents,
		IssuedAt:    issued,
		DueAt:       issued.Add(DraftDuePeriod),
	}
}

// Send moves a draft to SENT.
func (i *Invoice) Send() error {
	if i.Status != InvoiceDraft {
		return fmt.Errorf("%w: %s", ErrInvoiceNotDraft, i.Status)
	}
	i.Status = InvoiceSent
	return nil
}

// RecordPayment settles an outstanding invoice. Paid and void invoices
// reject further payments.
func (i *Invoice) RecordPayment(method PaymentMethod, paidAt time.Time) error {
	if _, ok := paymentMethods[method]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, method)
	}
	if i.Status == InvoicePaid || i.Status == InvoiceVoid {
		return fmt.Errorf("%w: %s", ErrInvoiceClosed, i.Status)
	}
	at := paidAt.UTC()
	i.Status = InvoicePaid
	i.PaidAt = &at
	i.PaymentMethod = &method
	return nil
}

// Void cancels an unsettled invoice.
func (i *Invoice) Void() error {
	if i.Status == InvoicePaid || i.Status == InvoiceVoid {
		return fmt.Errorf("%w: %s", ErrInvoiceClosed, i.Status)
	}
	i.Status = InvoiceVoid
	return nil
}
