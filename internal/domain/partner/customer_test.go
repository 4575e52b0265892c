package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates customer with zero deposit balance", func(t *testing.T) {
		customer, err := NewCustomer(tenantID, "CUST-001", "Budi Santoso")
		require.NoError(t, err)

		assert.Equal(t, tenantID, customer.TenantID)
		assert.Equal(t, "CUST-001", customer.Code)
		assert.Equal(t, "Budi Santoso", customer.Name)
		assert.True(t, customer.DepositBalance.IsZero())
		assert.Equal(t, 1, customer.GetVersion())
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewCustomer(tenantID, "", "Budi Santoso")
		require.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCustomer(tenantID, "CUST-001", "")
		require.Error(t, err)
	})

	t.Run("fails with empty tenant", func(t *testing.T) {
		_, err := NewCustomer(uuid.Nil, "CUST-001", "Budi Santoso")
		require.Error(t, err)
	})
}

func TestCustomer_AddDeposit(t *testing.T) {
	tenantID := uuid.New()

	t.Run("increases balance and version", func(t *testing.T) {
		customer, err := NewCustomer(tenantID, "CUST-001", "Budi Santoso")
		require.NoError(t, err)

		require.NoError(t, customer.AddDeposit(decimal.NewFromInt(100000)))
		require.NoError(t, customer.AddDeposit(decimal.NewFromInt(50000)))

		assert.True(t, customer.DepositBalance.Equal(decimal.NewFromInt(150000)))
		assert.Equal(t, 3, customer.GetVersion())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		customer, err := NewCustomer(tenantID, "CUST-001", "Budi Santoso")
		require.NoError(t, err)

		require.Error(t, customer.AddDeposit(decimal.Zero))
		require.Error(t, customer.AddDeposit(decimal.NewFromInt(-1)))
		assert.True(t, customer.DepositBalance.IsZero())
	})
}

func TestCustomer_UseDeposit(t *testing.T) {
	tenantID := uuid.New()

	newFunded := func(t *testing.T, amount int64) *Customer {
		t.Helper()
		customer, err := NewCustomer(tenantID, "CUST-001", "Budi Santoso")
		require.NoError(t, err)
		require.NoError(t, customer.AddDeposit(decimal.NewFromInt(amount)))
		return customer
	}

	t.Run("decreases balance", func(t *testing.T) {
		customer := newFunded(t, 100000)

		require.NoError(t, customer.UseDeposit(decimal.NewFromInt(40000)))
		assert.True(t, customer.DepositBalance.Equal(decimal.NewFromInt(60000)))
	})

	t.Run("can drain the balance to exactly zero", func(t *testing.T) {
		customer := newFunded(t, 100000)

		require.NoError(t, customer.UseDeposit(decimal.NewFromInt(100000)))
		assert.True(t, customer.DepositBalance.IsZero())
	})

	t.Run("never goes negative", func(t *testing.T) {
		customer := newFunded(t, 100000)

		err := customer.UseDeposit(decimal.NewFromInt(100001))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_BALANCE", domainErr.Code)
		assert.True(t, customer.DepositBalance.Equal(decimal.NewFromInt(100000)))
	})
}

func TestCustomer_SetDepositBalance(t *testing.T) {
	tenantID := uuid.New()

	t.Run("overwrites the cached balance", func(t *testing.T) {
		customer, err := NewCustomer(tenantID, "CUST-001", "Budi Santoso")
		require.NoError(t, err)

		require.NoError(t, customer.SetDepositBalance(decimal.NewFromInt(75000)))
		assert.True(t, customer.DepositBalance.Equal(decimal.NewFromInt(75000)))
	})

	t.Run("rejects a negative balance", func(t *testing.T) {
		customer, err := NewCustomer(tenantID, "CUST-001", "Budi Santoso")
		require.NoError(t, err)

		require.Error(t, customer.SetDepositBalance(decimal.NewFromInt(-1)))
	})
}
