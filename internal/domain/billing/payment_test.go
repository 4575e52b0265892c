package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	tenantID := uuid.New()
	invoiceID := uuid.New()
	customerID := uuid.New()

	t.Run("creates payment with valid inputs", func(t *testing.T) {
		payment, err := NewPayment(tenantID, invoiceID, "INV-001", customerID,
			decimal.NewFromInt(50000), PaymentMethodCash)
		require.NoError(t, err)
		require.NotNil(t, payment)

		assert.Equal(t, tenantID, payment.TenantID)
		assert.Equal(t, invoiceID, payment.InvoiceID)
		assert.Equal(t, "INV-001", payment.InvoiceNumber)
		assert.Equal(t, PaymentMethodCash, payment.Method)
		assert.True(t, payment.Amount.Equal(decimal.NewFromInt(50000)))
		assert.NotEmpty(t, payment.ID)
		assert.False(t, payment.PaidAt.IsZero())
		assert.Nil(t, payment.ActorID)
	})

	t.Run("sets note and actor", func(t *testing.T) {
		actorID := uuid.New()
		payment, err := NewPayment(tenantID, invoiceID, "INV-001", customerID,
			decimal.NewFromInt(50000), PaymentMethodDeposit)
		require.NoError(t, err)

		payment.WithNote("pelunasan").WithActorID(actorID)
		assert.Equal(t, "pelunasan", payment.Note)
		require.NotNil(t, payment.ActorID)
		assert.Equal(t, actorID, *payment.ActorID)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPayment(tenantID, invoiceID, "INV-001", customerID,
			decimal.Zero, PaymentMethodCash)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	})

	t.Run("rejects invalid method", func(t *testing.T) {
		_, err := NewPayment(tenantID, invoiceID, "INV-001", customerID,
			decimal.NewFromInt(50000), PaymentMethod("CHEQUE"))
		require.Error(t, err)
	})

	t.Run("rejects empty tenant and invoice", func(t *testing.T) {
		_, err := NewPayment(uuid.Nil, invoiceID, "INV-001", customerID,
			decimal.NewFromInt(50000), PaymentMethodCash)
		require.Error(t, err)

		_, err = NewPayment(tenantID, uuid.Nil, "INV-001", customerID,
			decimal.NewFromInt(50000), PaymentMethodCash)
		require.Error(t, err)
	})
}

func TestNewPaymentAllocation(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates allocation record", func(t *testing.T) {
		paymentID := uuid.New()
		invoiceID := uuid.New()

		alloc, err := NewPaymentAllocation(tenantID, paymentID, invoiceID, decimal.NewFromInt(25000))
		require.NoError(t, err)

		assert.Equal(t, paymentID, alloc.PaymentID)
		assert.Equal(t, invoiceID, alloc.InvoiceID)
		assert.True(t, alloc.Amount.Equal(decimal.NewFromInt(25000)))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPaymentAllocation(tenantID, uuid.New(), uuid.New(), decimal.NewFromInt(-1))
		require.Error(t, err)
	})
}

func TestPaymentMethod(t *testing.T) {
	assert.True(t, PaymentMethodCash.IsValid())
	assert.True(t, PaymentMethodDeposit.IsValid())
	assert.True(t, PaymentMethodMixed.IsValid())
	assert.False(t, PaymentMethod("TRANSFER").IsValid())
}

func TestPartialCommitError(t *testing.T) {
	cause := shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "conflict")
	err := &PartialCommitError{
		SettledInvoiceIDs:   []uuid.UUID{uuid.New()},
		UnsettledInvoiceIDs: []uuid.UUID{uuid.New(), uuid.New()},
		Err:                 cause,
	}

	assert.Contains(t, err.Error(), "1 invoice(s) settled")
	assert.Contains(t, err.Error(), "2 not settled")
	assert.ErrorIs(t, err, cause)
}
