package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/printpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoice(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()

	t.Run("creates unpaid invoice with valid inputs", func(t *testing.T) {
		inv, err := NewInvoice(tenantID, "INV-001", customerID, "Budi Santoso",
			decimal.NewFromInt(100000), decimal.Zero)
		require.NoError(t, err)
		require.NotNil(t, inv)

		assert.Equal(t, tenantID, inv.TenantID)
		assert.Equal(t, "INV-001", inv.InvoiceNumber)
		assert.Equal(t, customerID, inv.CustomerID)
		assert.Equal(t, InvoiceStatusUnpaid, inv.Status)
		assert.True(t, inv.Outstanding().Equal(decimal.NewFromInt(100000)))
		assert.Nil(t, inv.PaidAt)
		assert.NotEmpty(t, inv.ID)
		assert.Equal(t, 1, inv.GetVersion())
	})

	t.Run("down payment at checkout yields partial status", func(t *testing.T) {
		inv, err := NewInvoice(tenantID, "INV-002", customerID, "Budi Santoso",
			decimal.NewFromInt(100000), decimal.NewFromInt(30000))
		require.NoError(t, err)

		assert.Equal(t, InvoiceStatusPartial, inv.Status)
		assert.True(t, inv.Outstanding().Equal(decimal.NewFromInt(70000)))
	})

	t.Run("full payment at checkout yields paid status with timestamp", func(t *testing.T) {
		inv, err := NewInvoice(tenantID, "INV-003", customerID, "Budi Santoso",
			decimal.NewFromInt(100000), decimal.NewFromInt(100000))
		require.NoError(t, err)

		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		assert.NotNil(t, inv.PaidAt)
	})

	t.Run("publishes InvoiceCreated event", func(t *testing.T) {
		inv, err := NewInvoice(tenantID, "INV-004", customerID, "Budi Santoso",
			decimal.NewFromInt(100000), decimal.Zero)
		require.NoError(t, err)

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "invoice.created", events[0].EventType())
	})

	t.Run("fails with empty invoice number", func(t *testing.T) {
		_, err := NewInvoice(tenantID, "", customerID, "Budi Santoso",
			decimal.NewFromInt(100000), decimal.Zero)
		require.Error(t, err)
	})

	t.Run("fails with empty customer", func(t *testing.T) {
		_, err := NewInvoice(tenantID, "INV-005", uuid.Nil, "Budi Santoso",
			decimal.NewFromInt(100000), decimal.Zero)
		require.Error(t, err)
	})

	t.Run("fails when paid exceeds total", func(t *testing.T) {
		_, err := NewInvoice(tenantID, "INV-006", customerID, "Budi Santoso",
			decimal.NewFromInt(100000), decimal.NewFromInt(100001))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	})
}

func TestStatusForAmounts(t *testing.T) {
	tests := []struct {
		name  string
		paid  int64
		total int64
		want  InvoiceStatus
	}{
		{"nothing paid", 0, 100000, InvoiceStatusUnpaid},
		{"partially paid", 30000, 100000, InvoiceStatusPartial},
		{"fully paid", 100000, 100000, InvoiceStatusPaid},
		{"overpaid still reads paid", 120000, 100000, InvoiceStatusPaid},
		{"zero total is paid", 0, 0, InvoiceStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusForAmounts(decimal.NewFromInt(tt.paid), decimal.NewFromInt(tt.total))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvoice_ApplyPayment(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()

	newOutstanding := func(t *testing.T, total, paid int64) *Invoice {
		t.Helper()
		inv, err := NewInvoice(tenantID, "INV-001", customerID, "Budi Santoso",
			decimal.NewFromInt(total), decimal.NewFromInt(paid))
		require.NoError(t, err)
		return inv
	}

	t.Run("partial payment moves status to partial", func(t *testing.T) {
		inv := newOutstanding(t, 100000, 0)

		err := inv.ApplyPayment(valueobject.NewMoneyIDR(decimal.NewFromInt(40000)), uuid.New())
		require.NoError(t, err)

		assert.Equal(t, InvoiceStatusPartial, inv.Status)
		assert.True(t, inv.AmountPaid.Equal(decimal.NewFromInt(40000)))
		assert.True(t, inv.Outstanding().Equal(decimal.NewFromInt(60000)))
		assert.Nil(t, inv.PaidAt)
		assert.Equal(t, 2, inv.GetVersion())
	})

	t.Run("paying the exact outstanding settles the invoice", func(t *testing.T) {
		inv := newOutstanding(t, 100000, 60000)

		err := inv.ApplyPayment(valueobject.NewMoneyIDR(decimal.NewFromInt(40000)), uuid.New())
		require.NoError(t, err)

		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		assert.True(t, inv.Outstanding().IsZero())
		assert.NotNil(t, inv.PaidAt)
	})

	t.Run("rejects payment above outstanding balance", func(t *testing.T) {
		inv := newOutstanding(t, 100000, 60000)

		err := inv.ApplyPayment(valueobject.NewMoneyIDR(decimal.NewFromInt(40001)), uuid.New())
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
		assert.True(t, inv.AmountPaid.Equal(decimal.NewFromInt(60000)), "failed payment must not change state")
	})

	t.Run("rejects non-positive payment", func(t *testing.T) {
		inv := newOutstanding(t, 100000, 0)

		err := inv.ApplyPayment(valueobject.ZeroIDR(), uuid.New())
		require.Error(t, err)
	})

	t.Run("rejects payment on settled invoice", func(t *testing.T) {
		inv := newOutstanding(t, 100000, 100000)

		err := inv.ApplyPayment(valueobject.NewMoneyIDR(decimal.NewFromInt(1)), uuid.New())
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("publishes InvoicePaymentApplied event", func(t *testing.T) {
		inv := newOutstanding(t, 100000, 0)
		inv.ClearDomainEvents()

		paymentID := uuid.New()
		err := inv.ApplyPayment(valueobject.NewMoneyIDR(decimal.NewFromInt(100000)), paymentID)
		require.NoError(t, err)

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)

		event, ok := events[0].(*InvoicePaymentAppliedEvent)
		require.True(t, ok)
		assert.Equal(t, paymentID, event.PaymentID)
		assert.Equal(t, InvoiceStatusPaid, event.NewStatus)
	})
}

func TestInvoiceStatus(t *testing.T) {
	t.Run("outstanding statuses", func(t *testing.T) {
		assert.True(t, InvoiceStatusUnpaid.IsOutstanding())
		assert.True(t, InvoiceStatusPartial.IsOutstanding())
		assert.False(t, InvoiceStatusPaid.IsOutstanding())
	})

	t.Run("validity", func(t *testing.T) {
		assert.True(t, InvoiceStatusUnpaid.IsValid())
		assert.True(t, InvoiceStatusPartial.IsValid())
		assert.True(t, InvoiceStatusPaid.IsValid())
		assert.False(t, InvoiceStatus("VOID").IsValid())
	})
}
