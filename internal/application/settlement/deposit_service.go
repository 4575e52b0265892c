package settlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/printpos/backend/internal/domain/partner"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DepositStore persists a ledger entry and the matching cached-balance
// update in one storage transaction
type DepositStore interface {
	ApplyTopUp(ctx context.Context, customer *partner.Customer, entry *partner.DepositEntry) error
}

// DepositService manages the customer deposit ledger: top-ups, history and
// reconciliation of the cached balance against the ledger.
type DepositService struct {
	customers partner.CustomerRepository
	entries   partner.DepositEntryRepository
	store     DepositStore
	logger    *zap.Logger
}

// NewDepositService creates a new deposit service
func NewDepositService(
	customers partner.CustomerRepository,
	entries partner.DepositEntryRepository,
	store DepositStore,
	logger *zap.Logger,
) *DepositService {
	return &DepositService{
		customers: customers,
		entries:   entries,
		store:     store,
		logger:    logger,
	}
}

// TopUpInput carries the parameters of a deposit top-up
type TopUpInput struct {
	TenantID   uuid.UUID
	CustomerID uuid.UUID
	Amount     decimal.Decimal
	Note       string
	ActorID    *uuid.UUID
}

// TopUp adds prepaid funds to the customer's deposit: a DEPOSIT ledger entry
// plus the cached balance increment, applied together.
func (s *DepositService) TopUp(ctx context.Context, in TopUpInput) (*partner.DepositEntry, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Top-up amount must be positive")
	}

	customer, err := s.customers.FindByIDForTenant(ctx, in.TenantID, in.CustomerID)
	if err != nil {
		return nil, err
	}

	entry, err := partner.CreateDepositEntry(in.TenantID, customer.ID, in.Amount, customer.DepositBalance)
	if err != nil {
		return nil, err
	}
	entry.WithNote(in.Note)
	if in.ActorID != nil {
		entry.WithActorID(*in.ActorID)
	}

	if err := customer.AddDeposit(in.Amount); err != nil {
		return nil, err
	}

	if err := s.store.ApplyTopUp(ctx, customer, entry); err != nil {
		return nil, err
	}

	s.logger.Info("deposit top-up applied",
		zap.String("customer_id", customer.ID.String()),
		zap.String("amount", in.Amount.String()),
		zap.String("balance_after", entry.BalanceAfter.String()),
	)

	return entry, nil
}

// ListLedger returns the customer's deposit ledger entries, newest first
func (s *DepositService) ListLedger(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) (shared.Paginated[partner.DepositEntry], error) {
	var empty shared.Paginated[partner.DepositEntry]

	if _, err := s.customers.FindByIDForTenant(ctx, tenantID, customerID); err != nil {
		return empty, err
	}

	items, err := s.entries.FindByCustomer(ctx, tenantID, customerID, filter)
	if err != nil {
		return empty, err
	}

	total, err := s.entries.CountByCustomer(ctx, tenantID, customerID)
	if err != nil {
		return empty, err
	}

	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// RecomputeBalance re-derives the cached deposit balance from the ledger sum
// and persists it. The ledger is authoritative; this is the reconciliation
// path for a cached figure that has drifted.
func (s *DepositService) RecomputeBalance(ctx context.Context, tenantID, customerID uuid.UUID) (decimal.Decimal, error) {
	customer, err := s.customers.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return decimal.Zero, err
	}

	sum, err := s.entries.SumByCustomer(ctx, tenantID, customerID)
	if err != nil {
		return decimal.Zero, err
	}

	if sum.Equal(customer.DepositBalance) {
		return sum, nil
	}

	s.logger.Warn("cached deposit balance drifted from ledger",
		zap.String("customer_id", customer.ID.String()),
		zap.String("cached", customer.DepositBalance.String()),
		zap.String("ledger", sum.String()),
	)

	if err := customer.SetDepositBalance(sum); err != nil {
		return decimal.Zero, err
	}
	if err := s.customers.SaveWithLock(ctx, customer); err != nil {
		return decimal.Zero, err
	}

	return sum, nil
}
