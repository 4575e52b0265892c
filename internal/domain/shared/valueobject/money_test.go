package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100000), IDR)
		require.NoError(t, err)

		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100000)))
		assert.Equal(t, IDR, m.Currency())
	})

	t.Run("fails with empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		require.Error(t, err)
	})

	t.Run("creates money from string", func(t *testing.T) {
		m, err := NewMoneyFromString("12500.50", IDR)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(12500.50)))
	})

	t.Run("fails on invalid amount string", func(t *testing.T) {
		_, err := NewMoneyFromString("abc", IDR)
		require.Error(t, err)
	})
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, ZeroIDR().IsZero())
	assert.True(t, NewMoneyIDR(decimal.NewFromInt(1)).IsPositive())
	assert.True(t, NewMoneyIDR(decimal.NewFromInt(-1)).IsNegative())
	assert.False(t, ZeroIDR().IsPositive())
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("adds amounts in the same currency", func(t *testing.T) {
		sum, err := NewMoneyIDR(decimal.NewFromInt(100000)).Add(NewMoneyIDR(decimal.NewFromInt(50000)))
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(150000)))
	})

	t.Run("subtracts amounts in the same currency", func(t *testing.T) {
		diff, err := NewMoneyIDR(decimal.NewFromInt(100000)).Subtract(NewMoneyIDR(decimal.NewFromInt(30000)))
		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromInt(70000)))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		usd, err := NewMoney(decimal.NewFromInt(10), USD)
		require.NoError(t, err)

		_, err = NewMoneyIDR(decimal.NewFromInt(100000)).Add(usd)
		require.Error(t, err)
	})

	t.Run("compares amounts", func(t *testing.T) {
		less, err := NewMoneyIDR(decimal.NewFromInt(1)).LessThan(NewMoneyIDR(decimal.NewFromInt(2)))
		require.NoError(t, err)
		assert.True(t, less)

		greater, err := NewMoneyIDR(decimal.NewFromInt(2)).GreaterThan(NewMoneyIDR(decimal.NewFromInt(1)))
		require.NoError(t, err)
		assert.True(t, greater)
	})
}

func TestMoney_JSON(t *testing.T) {
	m := NewMoneyIDR(decimal.NewFromInt(100000))

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}
