package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	billingmemory "github.com/sslogistics/logipro/internal/domains/billing/adapters/memory"
	billingtypes "github.com/sslogistics/logipro/internal/domains/billing/application/types"
	"github.com/sslogistics/logipro/internal/domains/billing/domain"
	"github.com/sslogistics/logipro/internal/domains/billing/ports"
)

func TestEnsureDraftForJob_ComputesRateCardTotal(t *testing.T) {
	issued := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	svc := NewService(billingmemory.NewRepository(), WithClock(func() time.Time { return issued }))

	invoice, err := svc.EnsureDraftForJob(context.Background(), uuid.New(), "OFFICE_RELOCATION")
	require.NoError(t, err)
	require.Equal(t, domain.InvoiceDraft, invoice.Entity.Status)
	// Base fee plus the office relocation surcharge.
	require.Equal(t, int64(75000), invoice.Entity.AmountCents)
	require.Equal(t, issued, invoice.Entity.IssuedAt)
	require.Equal(t, issued.Add(domain.DraftDuePeriod), invoice.Entity.DueAt)
}

func TestEnsureDraftForJob_UnknownServiceTypeFallsBackToBaseFee(t *testing.T) {
	svc := NewService(billingmemory.NewRepository())

	invoice, err := svc.EnsureDraftForJob(context.Background(), uuid.New(), "SOMETHING_ELSE")
	require.NoError(t, err)
	require.Equal(t, int64(15000), invoice.Entity.AmountCents)
}

func TestEnsureDraftForJob_Idempotent(t *testing.T) {
	svc := NewService(billingmemory.NewRepository())
	ctx := context.Background()
	jobID := uuid.New()

	first, err := svc.EnsureDraftForJob(ctx, jobID, "SMALL_DELIVERIES")
	require.NoError(t, err)
	second, err := svc.EnsureDraftForJob(ctx, jobID, "OFFICE_RELOCATION")
	require.NoError(t, err)
	require.Equal(t, first.Entity.ID, second.Entity.ID)
	require.Equal(t, first.Entity.AmountCents, second.Entity.AmountCents)

	all, err := svc.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestSendInvoice_DraftOnly(t *testing.T) {
	svc := NewService(billingmemory.NewRepository())
	ctx := context.Background()

	draft, err := svc.EnsureDraftForJob(ctx, uuid.New(), "SMALL_DELIVERIES")
	require.NoError(t, err)

	sent, err := svc.SendInvoice(ctx, draft.Entity.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvoiceSent, sent.Entity.Status)

	_, err = svc.SendInvoice(ctx, draft.Entity.ID)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvoiceNotDraft)
}

func TestRecordPayment_SettlesOutstandingInvoice(t *testing.T) {
	paidAt := time.Date(2026, 9, 5, 14, 0, 0, 0, time.UTC)
	svc := NewService(billingmemory.NewRepository(), WithClock(func() time.Time { return paidAt }))
	ctx := context.Background()

	draft, err := svc.EnsureDraftForJob(ctx, uuid.New(), "SMALL_DELIVERIES")
	require.NoError(t, err)
	_, err = svc.SendInvoice(ctx, draft.Entity.ID)
	require.NoError(t, err)

	paid, err := svc.RecordPayment(ctx, billingtypes.RecordPaymentInput{
		InvoiceID: draft.Entity.ID,
		Method:    "BANK_TRANSFER",
	})
	require.NoError(t, err)
	require.Equal(t, domain.InvoicePaid, paid.Entity.Status)
	require.NotNil(t, paid.Entity.PaidAt)
	require.Equal(t, domain.PaymentBankTransfer, *paid.Entity.PaymentMethod)
}

func TestRecordPayment_InvalidMethodRejected(t *testing.T) {
	svc := NewService(billingmemory.NewRepository())
	ctx := context.Background()

	draft, err := svc.EnsureDraftForJob(ctx, uuid.New(), "SMALL_DELIVERIES")
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, billingtypes.RecordPaymentInput{
		InvoiceID: draft.Entity.ID,
		Method:    "BARTER",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)
}

func TestRecordPayment_ClosedInvoiceRejected(t *testing.T) {
	svc := NewService(billingmemory.NewRepository())
	ctx := context.Background()

	draft, err := svc.EnsureDraftForJob(ctx, uuid.New(), "SMALL_DELIVERIES")
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, billingtypes.RecordPaymentInput{
		InvoiceID: draft.Entity.ID,
		Method:    "CARD",
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, billingtypes.RecordPaymentInput{
		InvoiceID: draft.Entity.ID,
		Method:    "CASH",
	})
	require.ErrorIs(t, err, domain.ErrInvoiceClosed)
}

func TestVoidInvoice_PaidInvoiceRejected(t *testing.T) {
	svc := NewService(billingmemory.NewRepository())
	ctx := context.Background()

	draft, err := svc.EnsureDraftForJob(ctx, uuid.New(), "SMALL_DELIVERIES")
	require.NoError(t, err)

	voided, err := svc.VoidInvoice(ctx, draft.Entity.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvoiceVoid, voided.Entity.Status)

	_, err = svc.VoidInvoice(ctx, draft.Entity.ID)
	require.ErrorIs(t, err, domain.ErrInvoiceClosed)
}

func TestWithPricing_OverridesRateCard(t *testing.T) {
	svc := NewService(billingmemory.NewRepository(), WithPricing(domain.Pricing{
		BaseFeeCents:   100,
		SurchargeCents: map[string]int64{"SMALL_DELIVERIES": 1},
	}))

	invoice, err := svc.EnsureDraftForJob(context.Background(), uuid.New(), "SMALL_DELIVERIES")
	require.NoError(t, err)
	require.Equal(t, int64(101), invoice.Entity.AmountCents)
}

func TestDeleteInvoiceByJob_RemovesInvoice(t *testing.T) {
	svc := NewService(billingmemory.NewRepository())
	ctx := context.Background()
	jobID := uuid.New()

	_, err := svc.EnsureDraftForJob(ctx, jobID, "SMALL_DELIVERIES")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteInvoiceByJob(ctx, jobID))
	_, err = svc.GetInvoiceByJob(ctx, jobID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDeleteInvoiceByJob_MissingInvoiceIsNoop(t *testing.T) {
	svc := NewService(billingmemory.NewRepository())

	require.NoError(t, svc.DeleteInvoiceByJob(context.Background(), uuid.New()))
}
