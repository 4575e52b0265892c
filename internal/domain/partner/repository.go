package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Customer, error)
	Save(ctx context.Context, customer *Customer) error
	// SaveWithLock saves with optimistic locking on the version column
	SaveWithLock(ctx context.Context, customer *Customer) error
}

// DepositEntryRepository defines persistence operations for the append-only
// deposit ledger
type DepositEntryRepository interface {
	Append(ctx context.Context, entry *DepositEntry) error
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]DepositEntry, error)
	CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error)
	// SumByCustomer returns the net ledger total for the customer
	// (deposits minus usages); the authoritative deposit balance
	SumByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (decimal.Decimal, error)
}
