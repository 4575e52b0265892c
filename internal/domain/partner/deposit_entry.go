package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DepositEntryType represents the direction of a deposit ledger entry
type DepositEntryType string

const (
	// DepositEntryTypeDeposit represents prepaid funds added to the account
	DepositEntryTypeDeposit DepositEntryType = "DEPOSIT"
	// DepositEntryTypeUsage represents deposit funds consumed by a settlement
	DepositEntryTypeUsage DepositEntryType = "USAGE"
)

// String returns the string representation of DepositEntryType
func (t DepositEntryType) String() string {
	return string(t)
}

// IsValid returns true if the entry type is valid
func (t DepositEntryType) IsValid() bool {
	return t == DepositEntryTypeDeposit || t == DepositEntryTypeUsage
}

// IsIncrease returns true if this entry type increases the balance
func (t DepositEntryType) IsIncrease() bool {
	return t == DepositEntryTypeDeposit
}

// DepositEntry is an immutable, append-only record of one deposit balance
// change. Amount is always positive; the direction comes from the entry
// type. Entries are never mutated or deleted — corrections are new entries.
// The running balance on the Customer is the sum of its entries.
type DepositEntry struct {
	shared.BaseEntity
	TenantID      uuid.UUID        `json:"tenant_id"`
	CustomerID    uuid.UUID        `json:"customer_id"`
	EntryType     DepositEntryType `json:"entry_type"`
	Amount        decimal.Decimal  `json:"amount"`
	BalanceBefore decimal.Decimal  `json:"balance_before"`
	BalanceAfter  decimal.Decimal  `json:"balance_after"`
	SourceID      *string          `json:"source_id"` // ID of the originating document, e.g. a payment
	Note          string           `json:"note"`
	ActorID       *uuid.UUID       `json:"actor_id"`
	EntryDate     time.Time        `json:"entry_date"`
}

// NewDepositEntry creates a new deposit ledger entry
func NewDepositEntry(
	tenantID uuid.UUID,
	customerID uuid.UUID,
	entryType DepositEntryType,
	amount decimal.Decimal,
	balanceBefore decimal.Decimal,
	balanceAfter decimal.Decimal,
) (*DepositEntry, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid deposit entry type")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Entry amount must be positive")
	}
	if balanceBefore.IsNegative() || balanceAfter.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Deposit balance cannot be negative")
	}

	return &DepositEntry{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      tenantID,
		CustomerID:    customerID,
		EntryType:     entryType,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		EntryDate:     time.Now(),
	}, nil
}

// WithSourceID links the entry to its originating document
func (e *DepositEntry) WithSourceID(sourceID string) *DepositEntry {
	e.SourceID = &sourceID
	return e
}

// WithNote sets the free-text note on the entry
func (e *DepositEntry) WithNote(note string) *DepositEntry {
	e.Note = note
	return e
}

// WithActorID sets the operator who caused the entry
func (e *DepositEntry) WithActorID(actorID uuid.UUID) *DepositEntry {
	e.ActorID = &actorID
	return e
}

// SignedAmount returns the amount with its balance direction applied
func (e *DepositEntry) SignedAmount() decimal.Decimal {
	if e.EntryType.IsIncrease() {
		return e.Amount
	}
	return e.Amount.Neg()
}

// CreateDepositEntry creates a DEPOSIT entry for a top-up
func CreateDepositEntry(tenantID, customerID uuid.UUID, amount, balanceBefore decimal.Decimal) (*DepositEntry, error) {
	return NewDepositEntry(tenantID, customerID, DepositEntryTypeDeposit, amount, balanceBefore, balanceBefore.Add(amount))
}

// CreateUsageEntry creates a USAGE entry for deposit consumption. The amount
// must not exceed the balance before the entry.
func CreateUsageEntry(tenantID, customerID uuid.UUID, amount, balanceBefore decimal.Decimal) (*DepositEntry, error) {
	if balanceBefore.LessThan(amount) {
		return nil, shared.NewDomainError("INSUFFICIENT_BALANCE", "Deposit usage exceeds available balance")
	}
	return NewDepositEntry(tenantID, customerID, DepositEntryTypeUsage, amount, balanceBefore, balanceBefore.Sub(amount))
}
