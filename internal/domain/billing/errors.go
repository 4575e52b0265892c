package billing

import (
	"fmt"

	"github.com/google/uuid"
)

// PartialCommitError reports a settlement batch that failed after some
// invoices were already durably settled. It always carries the explicit
// split of settled vs unsettled invoice IDs so the operator can reconcile;
// it must never be collapsed into a generic failure.
//
// On fully transactional storage the settled list is empty (the whole batch
// rolled back); the split becomes meaningful when the store cannot cover the
// batch with a single transaction.
type PartialCommitError struct {
	SettledInvoiceIDs   []uuid.UUID
	UnsettledInvoiceIDs []uuid.UUID
	Err                 error
}

// Error implements the error interface
func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("settlement partially committed: %d invoice(s) settled, %d not settled: %v",
		len(e.SettledInvoiceIDs), len(e.UnsettledInvoiceIDs), e.Err)
}

// Unwrap returns the underlying cause
func (e *PartialCommitError) Unwrap() error {
	return e.Err
}
