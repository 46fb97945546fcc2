package types

import "github.com/google/uuid"

// RecordPaymentInput settles an outstanding invoice.
type RecordPaymentInput struct {
	InvoiceID uuid.UUID
	Method    string
}
