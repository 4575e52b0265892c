package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/printpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusUnpaid  InvoiceStatus = "UNPAID"  // No payment received
	InvoiceStatusPartial InvoiceStatus = "PARTIAL" // 0 < paid < total
	InvoiceStatusPaid    InvoiceStatus = "PAID"    // Paid in full
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPartial, InvoiceStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsOutstanding returns true if the invoice still carries debt
func (s InvoiceStatus) IsOutstanding() bool {
	return s == InvoiceStatusUnpaid || s == InvoiceStatusPartial
}

// CanApplyPayment returns true if payments can be applied in this status
func (s InvoiceStatus) CanApplyPayment() bool {
	return s.IsOutstanding()
}

// StatusForAmounts derives the invoice status from the paid and total amounts.
// Status is a pure function of these two figures and is never stored
// independently of them.
func StatusForAmounts(amountPaid, totalPrice decimal.Decimal) InvoiceStatus {
	switch {
	case amountPaid.GreaterThanOrEqual(totalPrice):
		return InvoiceStatusPaid
	case amountPaid.GreaterThan(decimal.Zero):
		return InvoiceStatusPartial
	default:
		return InvoiceStatusUnpaid
	}
}

// Invoice represents a single sale that may be settled over multiple payments.
// Sequence is a storage-assigned monotonic number used as the FIFO ordering
// key; CreatedAt is kept for display and as a secondary sort.
type Invoice struct {
	shared.TenantAggregateRoot
	InvoiceNumber string          `json:"invoice_number"`
	Sequence      int64           `json:"sequence"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Status        InvoiceStatus   `json:"status"`
	Note          string          `json:"note"`
	PaidAt        *time.Time      `json:"paid_at"`
}

// NewInvoice creates a new invoice. The initial paid amount reflects any
// down payment taken at checkout; status is derived from the amounts.
func NewInvoice(
	tenantID uuid.UUID,
	invoiceNumber string,
	customerID uuid.UUID,
	customerName string,
	totalPrice decimal.Decimal,
	initialPaid decimal.Decimal,
) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if totalPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total price cannot be negative")
	}
	if initialPaid.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot be negative")
	}
	if initialPaid.GreaterThan(totalPrice) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot exceed total price")
	}

	inv := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		InvoiceNumber:       invoiceNumber,
		CustomerID:          customerID,
		CustomerName:        customerName,
		TotalPrice:          totalPrice,
		AmountPaid:          initialPaid,
		Status:              StatusForAmounts(initialPaid, totalPrice),
	}
	if inv.Status == InvoiceStatusPaid {
		now := time.Now()
		inv.PaidAt = &now
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))
	return inv, nil
}

// Outstanding returns the amount still owed on this invoice
func (i *Invoice) Outstanding() decimal.Decimal {
	return i.TotalPrice.Sub(i.AmountPaid)
}

// IsOutstanding returns true if the invoice still carries debt
func (i *Invoice) IsOutstanding() bool {
	return i.Status.IsOutstanding()
}

// ApplyPayment applies a payment amount to the invoice, increasing the paid
// amount and re-deriving the status. The amount must be positive and must not
// exceed the outstanding balance (the allocation engine guarantees this for
// settlement flows).
func (i *Invoice) ApplyPayment(amount valueobject.Money, paymentID uuid.UUID) error {
	if !i.Status.CanApplyPayment() {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already fully paid")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(i.Outstanding()) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount exceeds outstanding balance")
	}

	i.AmountPaid = i.AmountPaid.Add(amount.Amount())
	i.Status = StatusForAmounts(i.AmountPaid, i.TotalPrice)
	if i.Status == InvoiceStatusPaid {
		now := time.Now()
		i.PaidAt = &now
	}

	i.AddDomainEvent(NewInvoicePaymentAppliedEvent(i, paymentID, amount.Amount()))
	i.IncrementVersion()
	return nil
}

// InvoiceCreatedEvent is raised when a new invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("invoice.created", "Invoice", inv.ID, inv.TenantID),
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerID:      inv.CustomerID,
		TotalPrice:      inv.TotalPrice,
	}
}

// InvoicePaymentAppliedEvent is raised when a payment is applied to an invoice
type InvoicePaymentAppliedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	PaymentID     uuid.UUID       `json:"payment_id"`
	Amount        decimal.Decimal `json:"amount"`
	NewStatus     InvoiceStatus   `json:"new_status"`
}

// NewInvoicePaymentAppliedEvent creates a new InvoicePaymentAppliedEvent
func NewInvoicePaymentAppliedEvent(inv *Invoice, paymentID uuid.UUID, amount decimal.Decimal) *InvoicePaymentAppliedEvent {
	return &InvoicePaymentAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("invoice.payment_applied", "Invoice", inv.ID, inv.TenantID),
		InvoiceNumber:   inv.InvoiceNumber,
		PaymentID:       paymentID,
		Amount:          amount,
		NewStatus:       inv.Status,
	}
}
