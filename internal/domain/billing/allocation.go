package billing

import (
	"github.com/google/uuid"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AllocationResult describes the effect of one settlement on one invoice.
// It is transient: the sequence of results is both the preview shown to the
// operator and the worklist the settlement applier carries out.
type AllocationResult struct {
	InvoiceID       uuid.UUID       `json:"invoice_id"`
	InvoiceNumber   string          `json:"invoice_number"`
	Allocated       decimal.Decimal `json:"allocated"`
	RemainingBefore decimal.Decimal `json:"remaining_before"`
	RemainingAfter  decimal.Decimal `json:"remaining_after"`
	FullyPaid       bool            `json:"fully_paid"`
}

// AllocationPlan is the complete outcome of allocating one payment across a
// list of invoices. UnallocatedRemainder is any part of the payment left over
// after the target list is exhausted; its disposition (change, deposit
// credit, rejection) is the caller's decision.
type AllocationPlan struct {
	Results               []AllocationResult `json:"results"`
	TotalAllocated        decimal.Decimal    `json:"total_allocated"`
	UnallocatedRemainder  decimal.Decimal    `json:"unallocated_remainder"`
	InvoicesFullyPaid     []uuid.UUID        `json:"invoices_fully_paid"`
	InvoicesPartiallyPaid []uuid.UUID        `json:"invoices_partially_paid"`
}

// IsEmpty returns true if the plan touches no invoices
func (p *AllocationPlan) IsEmpty() bool {
	return len(p.Results) == 0
}

// Allocate distributes totalPayment across the given invoices in their input
// order (callers supply them oldest first). When selected is non-empty, only
// invoices whose ID is in the set are targeted, preserving the input order.
//
// The walk uses each invoice's outstanding balance as read at entry; it is
// not re-read between steps. Invoices with no outstanding balance are
// skipped. A zero payment yields an empty plan; a negative payment is an
// error. Pure computation with no side effects, so it is safe to re-run for
// previews.
func Allocate(invoices []Invoice, totalPayment decimal.Decimal, selected []uuid.UUID) (*AllocationPlan, error) {
	if totalPayment.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount cannot be negative")
	}

	targets := invoices
	if len(selected) > 0 {
		wanted := make(map[uuid.UUID]struct{}, len(selected))
		for _, id := range selected {
			wanted[id] = struct{}{}
		}
		targets = make([]Invoice, 0, len(selected))
		for _, inv := range invoices {
			if _, ok := wanted[inv.ID]; ok {
				targets = append(targets, inv)
			}
		}
	}

	plan := &AllocationPlan{
		Results:               make([]AllocationResult, 0, len(targets)),
		TotalAllocated:        decimal.Zero,
		InvoicesFullyPaid:     make([]uuid.UUID, 0),
		InvoicesPartiallyPaid: make([]uuid.UUID, 0),
	}

	remaining := totalPayment
	for _, inv := range targets {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		invoiceRemaining := inv.Outstanding()
		if invoiceRemaining.LessThanOrEqual(decimal.Zero) {
			// Already settled; should have been filtered upstream
			continue
		}

		allocated := decimal.Min(remaining, invoiceRemaining)
		remainingAfter := invoiceRemaining.Sub(allocated)
		fullyPaid := remainingAfter.LessThanOrEqual(decimal.Zero)

		plan.Results = append(plan.Results, AllocationResult{
			InvoiceID:       inv.ID,
			InvoiceNumber:   inv.InvoiceNumber,
			Allocated:       allocated,
			RemainingBefore: invoiceRemaining,
			RemainingAfter:  remainingAfter,
			FullyPaid:       fullyPaid,
		})

		plan.TotalAllocated = plan.TotalAllocated.Add(allocated)
		remaining = remaining.Sub(allocated)

		if fullyPaid {
			plan.InvoicesFullyPaid = append(plan.InvoicesFullyPaid, inv.ID)
		} else {
			plan.InvoicesPartiallyPaid = append(plan.InvoicesPartiallyPaid, inv.ID)
		}
	}

	plan.UnallocatedRemainder = remaining
	return plan, nil
}
