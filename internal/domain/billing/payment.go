package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents the funding source of a payment
type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "CASH"    // Cash handed over at the counter
	PaymentMethodDeposit PaymentMethod = "DEPOSIT" // Drawn from the customer's stored deposit
	PaymentMethodMixed   PaymentMethod = "MIXED"   // Cash and deposit combined
)

// IsValid returns true if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodDeposit, PaymentMethodMixed:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Payment is an immutable record of one payment event applied to exactly one
// invoice. A settlement touching several invoices creates one Payment per
// invoice. Corrections are made with new records, never by mutation.
type Payment struct {
	shared.BaseEntity
	TenantID      uuid.UUID       `json:"tenant_id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	Note          string          `json:"note"`
	ActorID       *uuid.UUID      `json:"actor_id"`
	PaidAt        time.Time       `json:"paid_at"`
}

// NewPayment creates a new payment record
func NewPayment(
	tenantID uuid.UUID,
	invoiceID uuid.UUID,
	invoiceNumber string,
	customerID uuid.UUID,
	amount decimal.Decimal,
	method PaymentMethod,
) (*Payment, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid payment method")
	}

	return &Payment{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      tenantID,
		InvoiceID:     invoiceID,
		InvoiceNumber: invoiceNumber,
		CustomerID:    customerID,
		Amount:        amount,
		Method:        method,
		PaidAt:        time.Now(),
	}, nil
}

// WithNote sets the free-text note on the payment
func (p *Payment) WithNote(note string) *Payment {
	p.Note = note
	return p
}

// WithActorID sets the operator who took the payment
func (p *Payment) WithActorID(actorID uuid.UUID) *Payment {
	p.ActorID = &actorID
	return p
}

// PaymentAllocation is the audit-trail link between a payment and the invoice
// it settled, carrying the exact amount allocated. Immutable once written.
type PaymentAllocation struct {
	shared.BaseEntity
	TenantID  uuid.UUID       `json:"tenant_id"`
	PaymentID uuid.UUID       `json:"payment_id"`
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// NewPaymentAllocation creates a new payment allocation record
func NewPaymentAllocation(tenantID, paymentID, invoiceID uuid.UUID, amount decimal.Decimal) (*PaymentAllocation, error) {
	if paymentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment ID cannot be empty")
	}
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}

	return &PaymentAllocation{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		PaymentID:  paymentID,
		InvoiceID:  invoiceID,
		Amount:     amount,
	}, nil
}
