package settlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/printpos/backend/internal/domain/billing"
	"github.com/printpos/backend/internal/domain/partner"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/printpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SettlementStore durably applies one settlement batch. Implementations
// apply the per-invoice writes in batch order and the deposit debit only
// after every invoice write succeeded. The returned slice lists the invoice
// IDs that were durably settled; on transactional storage it is empty
// whenever err is non-nil (the whole batch rolled back).
type SettlementStore interface {
	Apply(ctx context.Context, batch *Batch) (settled []uuid.UUID, err error)
}

// Batch is the precomputed write set of one settlement action. It is built
// entirely in memory before any storage write happens, so a failed commit
// can be reported precisely.
type Batch struct {
	TenantID    uuid.UUID
	Invoices    []*billing.Invoice
	Payments    []*billing.Payment
	Allocations []*billing.PaymentAllocation

	// Customer and DepositEntry are set only when the settlement drew on
	// the stored deposit; they are written last.
	Customer     *partner.Customer
	DepositEntry *partner.DepositEntry
}

// Service orchestrates the settlement workflow: listing outstanding
// invoices, previewing an allocation, and committing it.
type Service struct {
	invoices    billing.InvoiceRepository
	payments    billing.PaymentRepository
	customers   partner.CustomerRepository
	store       SettlementStore
	idempotency shared.IdempotencyStore
	idemCfg     shared.IdempotencyConfig
	logger      *zap.Logger
}

// NewService creates a new settlement service
func NewService(
	invoices billing.InvoiceRepository,
	payments billing.PaymentRepository,
	customers partner.CustomerRepository,
	store SettlementStore,
	logger *zap.Logger,
) *Service {
	return &Service{
		invoices:  invoices,
		payments:  payments,
		customers: customers,
		store:     store,
		logger:    logger,
	}
}

// WithIdempotency enables idempotency-key protection for Commit
func (s *Service) WithIdempotency(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) *Service {
	s.idempotency = store
	s.idemCfg = cfg
	return s
}

// ListOutstanding returns the customer's unpaid and partially paid invoices,
// oldest first. The customer must exist; an empty list is a valid result.
func (s *Service) ListOutstanding(ctx context.Context, tenantID, customerID uuid.UUID) ([]billing.Invoice, error) {
	if _, err := s.customers.FindByIDForTenant(ctx, tenantID, customerID); err != nil {
		return nil, err
	}
	return s.invoices.FindOutstanding(ctx, tenantID, customerID)
}

// CustomerSummary is the settlement-screen header data for one customer
type CustomerSummary struct {
	Customer         *partner.Customer
	OutstandingTotal decimal.Decimal
	OutstandingCount int
}

// GetCustomerSummary returns the customer with their total outstanding debt
func (s *Service) GetCustomerSummary(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerSummary, error) {
	customer, err := s.customers.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	outstanding, err := s.invoices.FindOutstanding(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, inv := range outstanding {
		total = total.Add(inv.Outstanding())
	}

	return &CustomerSummary{
		Customer:         customer,
		OutstandingTotal: total,
		OutstandingCount: len(outstanding),
	}, nil
}

// PreviewInput carries the parameters of a settlement preview
type PreviewInput struct {
	TenantID           uuid.UUID
	CustomerID         uuid.UUID
	Amount             decimal.Decimal
	SelectedInvoiceIDs []uuid.UUID
}

// Preview computes the allocation of a payment amount across the customer's
// outstanding invoices without writing anything. It may be re-run freely
// while the operator adjusts the amount.
func (s *Service) Preview(ctx context.Context, in PreviewInput) (*billing.AllocationPlan, error) {
	if _, err := s.customers.FindByIDForTenant(ctx, in.TenantID, in.CustomerID); err != nil {
		return nil, err
	}

	outstanding, err := s.invoices.FindOutstanding(ctx, in.TenantID, in.CustomerID)
	if err != nil {
		return nil, err
	}

	return billing.Allocate(outstanding, in.Amount, in.SelectedInvoiceIDs)
}

// ListInvoicePayments returns the payment history of one invoice, oldest
// first. The invoice must exist within the tenant.
func (s *Service) ListInvoicePayments(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]billing.Payment, error) {
	if _, err := s.invoices.FindByIDForTenant(ctx, tenantID, invoiceID); err != nil {
		return nil, err
	}
	return s.payments.FindByInvoice(ctx, tenantID, invoiceID)
}

// ListPaymentAllocations returns the allocation audit records of one payment
func (s *Service) ListPaymentAllocations(ctx context.Context, tenantID, paymentID uuid.UUID) ([]billing.PaymentAllocation, error) {
	return s.payments.FindAllocationsByPayment(ctx, tenantID, paymentID)
}

// CommitInput carries the parameters of a settlement commit
type CommitInput struct {
	TenantID           uuid.UUID
	CustomerID         uuid.UUID
	CashAmount         decimal.Decimal
	DepositAmount      decimal.Decimal
	SelectedInvoiceIDs []uuid.UUID
	Note               string
	ActorID            *uuid.UUID
	IdempotencyKey     string
}

// CommitResult is returned to the caller for receipt generation
type CommitResult struct {
	Results              []billing.AllocationResult
	PaymentIDs           []uuid.UUID
	TotalSettled         decimal.Decimal
	UnallocatedRemainder decimal.Decimal
	CashReceived         decimal.Decimal
	DepositUsed          decimal.Decimal
	DepositBalance       decimal.Decimal
}

// Commit validates, allocates and durably applies one settlement action.
// All validation happens before any write: non-positive totals, deposit
// usage beyond the available balance and empty allocation plans are rejected
// with no state change. Cash covers the allocation first; the deposit covers
// the rest, so an overpayment never drains the deposit.
func (s *Service) Commit(ctx context.Context, in CommitInput) (*CommitResult, error) {
	if in.CashAmount.IsNegative() || in.DepositAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amounts cannot be negative")
	}
	totalPayment := in.CashAmount.Add(in.DepositAmount)
	if totalPayment.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total payment must be positive")
	}

	customer, err := s.customers.FindByIDForTenant(ctx, in.TenantID, in.CustomerID)
	if err != nil {
		return nil, err
	}

	if in.DepositAmount.GreaterThan(customer.DepositBalance) {
		return nil, shared.ErrInsufficientBalance
	}

	outstanding, err := s.invoices.FindOutstanding(ctx, in.TenantID, in.CustomerID)
	if err != nil {
		return nil, err
	}

	plan, err := billing.Allocate(outstanding, totalPayment, in.SelectedInvoiceIDs)
	if err != nil {
		return nil, err
	}
	if plan.IsEmpty() {
		return nil, shared.ErrNoTargets
	}

	if in.IdempotencyKey != "" && s.idempotency != nil && s.idemCfg.Enabled {
		fresh, err := s.idempotency.MarkProcessed(ctx, in.IdempotencyKey, s.idemCfg.TTL)
		if err != nil {
			return nil, err
		}
		if !fresh {
			return nil, shared.ErrDuplicateRequest
		}
	}

	batch, paymentIDs, depositUsed, err := s.buildBatch(in, customer, outstanding, plan)
	if err != nil {
		return nil, err
	}

	settled, err := s.store.Apply(ctx, batch)
	if err != nil {
		if len(settled) > 0 {
			return nil, &billing.PartialCommitError{
				SettledInvoiceIDs:   settled,
				UnsettledInvoiceIDs: unsettledIDs(plan, settled),
				Err:                 err,
			}
		}
		return nil, err
	}

	s.logger.Info("settlement committed",
		zap.String("customer_id", in.CustomerID.String()),
		zap.Int("invoices", len(plan.Results)),
		zap.String("total_settled", plan.TotalAllocated.String()),
		zap.String("deposit_used", depositUsed.String()),
		zap.String("unallocated_remainder", plan.UnallocatedRemainder.String()),
	)

	return &CommitResult{
		Results:              plan.Results,
		PaymentIDs:           paymentIDs,
		TotalSettled:         plan.TotalAllocated,
		UnallocatedRemainder: plan.UnallocatedRemainder,
		CashReceived:         in.CashAmount,
		DepositUsed:          depositUsed,
		DepositBalance:       customer.DepositBalance,
	}, nil
}

// buildBatch turns an allocation plan into the in-memory write set:
// one payment and one allocation record per touched invoice, the updated
// invoice aggregates, and the deposit debit when one applies.
func (s *Service) buildBatch(
	in CommitInput,
	customer *partner.Customer,
	outstanding []billing.Invoice,
	plan *billing.AllocationPlan,
) (*Batch, []uuid.UUID, decimal.Decimal, error) {
	byID := make(map[uuid.UUID]*billing.Invoice, len(outstanding))
	for i := range outstanding {
		byID[outstanding[i].ID] = &outstanding[i]
	}

	method := billing.PaymentMethodCash
	switch {
	case in.DepositAmount.IsPositive() && in.CashAmount.IsPositive():
		method = billing.PaymentMethodMixed
	case in.DepositAmount.IsPositive():
		method = billing.PaymentMethodDeposit
	}

	batch := &Batch{
		TenantID:    in.TenantID,
		Invoices:    make([]*billing.Invoice, 0, len(plan.Results)),
		Payments:    make([]*billing.Payment, 0, len(plan.Results)),
		Allocations: make([]*billing.PaymentAllocation, 0, len(plan.Results)),
	}
	paymentIDs := make([]uuid.UUID, 0, len(plan.Results))

	for _, res := range plan.Results {
		inv, ok := byID[res.InvoiceID]
		if !ok {
			return nil, nil, decimal.Zero, shared.ErrNotFound
		}

		payment, err := billing.NewPayment(in.TenantID, inv.ID, inv.InvoiceNumber, customer.ID, res.Allocated, method)
		if err != nil {
			return nil, nil, decimal.Zero, err
		}
		payment.WithNote(in.Note)
		if in.ActorID != nil {
			payment.WithActorID(*in.ActorID)
		}

		allocation, err := billing.NewPaymentAllocation(in.TenantID, payment.ID, inv.ID, res.Allocated)
		if err != nil {
			return nil, nil, decimal.Zero, err
		}

		if err := inv.ApplyPayment(valueobject.NewMoneyIDR(res.Allocated), payment.ID); err != nil {
			return nil, nil, decimal.Zero, err
		}

		batch.Invoices = append(batch.Invoices, inv)
		batch.Payments = append(batch.Payments, payment)
		batch.Allocations = append(batch.Allocations, allocation)
		paymentIDs = append(paymentIDs, payment.ID)
	}

	// Cash first, deposit for the rest: the deposit only covers what the
	// cash portion of the allocated total could not.
	depositUsed := decimal.Min(in.DepositAmount, decimal.Max(plan.TotalAllocated.Sub(in.CashAmount), decimal.Zero))
	if depositUsed.IsPositive() {
		entry, err := partner.CreateUsageEntry(in.TenantID, customer.ID, depositUsed, customer.DepositBalance)
		if err != nil {
			return nil, nil, decimal.Zero, err
		}
		entry.WithNote(in.Note)
		if in.ActorID != nil {
			entry.WithActorID(*in.ActorID)
		}
		if len(paymentIDs) > 0 {
			entry.WithSourceID(paymentIDs[0].String())
		}

		if err := customer.UseDeposit(depositUsed); err != nil {
			return nil, nil, decimal.Zero, err
		}

		batch.Customer = customer
		batch.DepositEntry = entry
	}

	return batch, paymentIDs, depositUsed, nil
}

// unsettledIDs returns the plan's invoice IDs that are not in settled
func unsettledIDs(plan *billing.AllocationPlan, settled []uuid.UUID) []uuid.UUID {
	done := make(map[uuid.UUID]struct{}, len(settled))
	for _, id := range settled {
		done[id] = struct{}{}
	}
	out := make([]uuid.UUID, 0, len(plan.Results))
	for _, res := range plan.Results {
		if _, ok := done[res.InvoiceID]; !ok {
			out = append(out, res.InvoiceID)
		}
	}
	return out
}
