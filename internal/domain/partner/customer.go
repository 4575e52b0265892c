package partner

import (
	"github.com/google/uuid"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Customer represents a customer aggregate root. DepositBalance is the
// cached materialization of the deposit ledger; the ledger is the source of
// truth and the two move together inside one storage transaction.
type Customer struct {
	shared.TenantAggregateRoot
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	DepositBalance decimal.Decimal `json:"deposit_balance"`
	Note           string          `json:"note"`
}

// NewCustomer creates a new customer with a zero deposit balance
func NewCustomer(tenantID uuid.UUID, code, name string) (*Customer, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name cannot be empty")
	}

	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		DepositBalance:      decimal.Zero,
	}, nil
}

// AddDeposit increases the cached deposit balance. Callers must append the
// matching DEPOSIT ledger entry in the same storage transaction.
func (c *Customer) AddDeposit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Deposit amount must be positive")
	}
	c.DepositBalance = c.DepositBalance.Add(amount)
	c.IncrementVersion()
	return nil
}

// UseDeposit decreases the cached deposit balance. The balance never goes
// negative. Callers must append the matching USAGE ledger entry in the same
// storage transaction.
func (c *Customer) UseDeposit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Usage amount must be positive")
	}
	if c.DepositBalance.LessThan(amount) {
		return shared.NewDomainError("INSUFFICIENT_BALANCE", "Deposit usage exceeds available balance")
	}
	c.DepositBalance = c.DepositBalance.Sub(amount)
	c.IncrementVersion()
	return nil
}

// SetDepositBalance overwrites the cached balance with a value re-derived
// from the ledger (reconciliation path)
func (c *Customer) SetDepositBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Deposit balance cannot be negative")
	}
	c.DepositBalance = balance
	c.IncrementVersion()
	return nil
}

// UpdateContact updates the customer's contact details
func (c *Customer) UpdateContact(phone, address string) {
	c.Phone = phone
	c.Address = address
	c.IncrementVersion()
}
