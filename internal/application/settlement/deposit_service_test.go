package settlement

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/printpos/backend/internal/domain/partner"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockDepositEntryRepository is a mock implementation of DepositEntryRepository
type MockDepositEntryRepository struct {
	mock.Mock
}

func (m *MockDepositEntryRepository) Append(ctx context.Context, entry *partner.DepositEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockDepositEntryRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]partner.DepositEntry, error) {
	args := m.Called(ctx, tenantID, customerID, filter)
	return args.Get(0).([]partner.DepositEntry), args.Error(1)
}

func (m *MockDepositEntryRepository) CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDepositEntryRepository) SumByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockDepositStore is a mock implementation of DepositStore
type MockDepositStore struct {
	mock.Mock
}

func (m *MockDepositStore) ApplyTopUp(ctx context.Context, customer *partner.Customer, entry *partner.DepositEntry) error {
	args := m.Called(ctx, customer, entry)
	return args.Error(0)
}

func newTestDepositService(t *testing.T) (*DepositService, *MockCustomerRepository, *MockDepositEntryRepository, *MockDepositStore) {
	t.Helper()
	customers := new(MockCustomerRepository)
	entries := new(MockDepositEntryRepository)
	store := new(MockDepositStore)
	svc := NewDepositService(customers, entries, store, zap.NewNop())
	return svc, customers, entries, store
}

func TestDepositService_TopUp(t *testing.T) {
	tenantID := uuid.New()

	t.Run("applies ledger entry and balance together", func(t *testing.T) {
		svc, customers, _, store := newTestDepositService(t)
		customer := newServiceCustomer(t, tenantID, 100000)

		customers.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)
		store.On("ApplyTopUp", mock.Anything, customer, mock.MatchedBy(func(e *partner.DepositEntry) bool {
			return e.EntryType == partner.DepositEntryTypeDeposit &&
				e.Amount.Equal(decimal.NewFromInt(50000)) &&
				e.BalanceBefore.Equal(decimal.NewFromInt(100000)) &&
				e.BalanceAfter.Equal(decimal.NewFromInt(150000))
		})).Return(nil)

		entry, err := svc.TopUp(context.Background(), TopUpInput{
			TenantID:   tenantID,
			CustomerID: customer.ID,
			Amount:     decimal.NewFromInt(50000),
			Note:       "setoran",
		})
		require.NoError(t, err)

		assert.Equal(t, "setoran", entry.Note)
		assert.True(t, customer.DepositBalance.Equal(decimal.NewFromInt(150000)))
		store.AssertExpectations(t)
	})

	t.Run("rejects non-positive amount before any read", func(t *testing.T) {
		svc, customers, _, store := newTestDepositService(t)

		_, err := svc.TopUp(context.Background(), TopUpInput{
			TenantID:   tenantID,
			CustomerID: uuid.New(),
			Amount:     decimal.Zero,
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
		customers.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "ApplyTopUp", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fails for unknown customer", func(t *testing.T) {
		svc, customers, _, _ := newTestDepositService(t)
		customerID := uuid.New()

		customers.On("FindByIDForTenant", mock.Anything, tenantID, customerID).Return(nil, shared.ErrNotFound)

		_, err := svc.TopUp(context.Background(), TopUpInput{
			TenantID:   tenantID,
			CustomerID: customerID,
			Amount:     decimal.NewFromInt(50000),
		})
		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("store failure surfaces to the caller", func(t *testing.T) {
		svc, customers, _, store := newTestDepositService(t)
		customer := newServiceCustomer(t, tenantID, 0)
		storeErr := shared.NewDomainError("INTERNAL_ERROR", "write failed")

		customers.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)
		store.On("ApplyTopUp", mock.Anything, mock.Anything, mock.Anything).Return(storeErr)

		_, err := svc.TopUp(context.Background(), TopUpInput{
			TenantID:   tenantID,
			CustomerID: customer.ID,
			Amount:     decimal.NewFromInt(50000),
		})
		assert.Equal(t, storeErr, err)
	})
}

func TestDepositService_ListLedger(t *testing.T) {
	tenantID := uuid.New()

	t.Run("returns paginated ledger entries", func(t *testing.T) {
		svc, customers, entries, _ := newTestDepositService(t)
		customer := newServiceCustomer(t, tenantID, 100000)

		entry, err := partner.CreateDepositEntry(tenantID, customer.ID,
			decimal.NewFromInt(100000), decimal.Zero)
		require.NoError(t, err)

		filter := shared.DefaultFilter()
		customers.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)
		entries.On("FindByCustomer", mock.Anything, tenantID, customer.ID, filter).Return([]partner.DepositEntry{*entry}, nil)
		entries.On("CountByCustomer", mock.Anything, tenantID, customer.ID).Return(int64(1), nil)

		page, err := svc.ListLedger(context.Background(), tenantID, customer.ID, filter)
		require.NoError(t, err)

		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, entry.ID, page.Items[0].ID)
	})

	t.Run("fails for unknown customer", func(t *testing.T) {
		svc, customers, entries, _ := newTestDepositService(t)
		customerID := uuid.New()

		customers.On("FindByIDForTenant", mock.Anything, tenantID, customerID).Return(nil, shared.ErrNotFound)

		_, err := svc.ListLedger(context.Background(), tenantID, customerID, shared.DefaultFilter())
		assert.Equal(t, shared.ErrNotFound, err)
		entries.AssertNotCalled(t, "FindByCustomer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDepositService_RecomputeBalance(t *testing.T) {
	tenantID := uuid.New()

	t.Run("matching balance is left untouched", func(t *testing.T) {
		svc, customers, entries, _ := newTestDepositService(t)
		customer := newServiceCustomer(t, tenantID, 100000)

		customers.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)
		entries.On("SumByCustomer", mock.Anything, tenantID, customer.ID).Return(decimal.NewFromInt(100000), nil)

		sum, err := svc.RecomputeBalance(context.Background(), tenantID, customer.ID)
		require.NoError(t, err)

		assert.True(t, sum.Equal(decimal.NewFromInt(100000)))
		customers.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("drifted cache is overwritten with the ledger sum", func(t *testing.T) {
		svc, customers, entries, _ := newTestDepositService(t)
		customer := newServiceCustomer(t, tenantID, 100000)

		customers.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)
		entries.On("SumByCustomer", mock.Anything, tenantID, customer.ID).Return(decimal.NewFromInt(80000), nil)
		customers.On("SaveWithLock", mock.Anything, customer).Return(nil)

		sum, err := svc.RecomputeBalance(context.Background(), tenantID, customer.ID)
		require.NoError(t, err)

		assert.True(t, sum.Equal(decimal.NewFromInt(80000)))
		assert.True(t, customer.DepositBalance.Equal(decimal.NewFromInt(80000)))
		customers.AssertExpectations(t)
	})
}
