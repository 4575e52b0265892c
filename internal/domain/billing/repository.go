package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/printpos/backend/internal/domain/shared"
)

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (*Invoice, error)

	// FindOutstanding returns the customer's invoices with status UNPAID or
	// PARTIAL, ordered by sequence ascending (oldest first). An empty result
	// is valid when the customer carries no debt.
	FindOutstanding(ctx context.Context, tenantID, customerID uuid.UUID) ([]Invoice, error)

	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]Invoice, error)
	CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error)

	Save(ctx context.Context, invoice *Invoice) error
	// SaveWithLock saves with optimistic locking on the version column
	SaveWithLock(ctx context.Context, invoice *Invoice) error
}

// PaymentRepository defines persistence operations for payments and their
// allocation audit records
type PaymentRepository interface {
	Save(ctx context.Context, payment *Payment) error
	SaveAllocation(ctx context.Context, allocation *PaymentAllocation) error
	FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]Payment, error)
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]Payment, error)
	FindAllocationsByPayment(ctx context.Context, tenantID, paymentID uuid.UUID) ([]PaymentAllocation, error)
}
