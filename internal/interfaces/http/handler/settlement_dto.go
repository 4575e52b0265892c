package handler

import (
	"time"

	"github.com/printpos/backend/internal/domain/billing"
)

// PreviewRequest represents a settlement preview request
type PreviewRequest struct {
	CustomerID string   `json:"customer_id" binding:"required,uuid"`
	Amount     float64  `json:"amount" binding:"required,gt=0"`
	InvoiceIDs []string `json:"invoice_ids" binding:"omitempty,dive,uuid"`
}

// CommitRequest represents a settlement commit request. The cash and deposit
// amounts are validated separately so either can be zero, but not both.
type CommitRequest struct {
	CustomerID    string   `json:"customer_id" binding:"required,uuid"`
	CashAmount    float64  `json:"cash_amount" binding:"gte=0"`
	DepositAmount float64  `json:"deposit_amount" binding:"gte=0"`
	InvoiceIDs    []string `json:"invoice_ids" binding:"omitempty,dive,uuid"`
	Note          string   `json:"note" binding:"max=500"`
}

// AllocationResultResponse represents one invoice's share of an allocation
type AllocationResultResponse struct {
	InvoiceID       string  `json:"invoice_id"`
	InvoiceNumber   string  `json:"invoice_number"`
	Allocated       float64 `json:"allocated"`
	RemainingBefore float64 `json:"remaining_before"`
	RemainingAfter  float64 `json:"remaining_after"`
	FullyPaid       bool    `json:"fully_paid"`
}

// toAllocationResultResponses converts domain allocation results to API shape
func toAllocationResultResponses(results []billing.AllocationResult) []AllocationResultResponse {
	responses := make([]AllocationResultResponse, len(results))
	for i, res := range results {
		responses[i] = AllocationResultResponse{
			InvoiceID:       res.InvoiceID.String(),
			InvoiceNumber:   res.InvoiceNumber,
			Allocated:       res.Allocated.InexactFloat64(),
			RemainingBefore: res.RemainingBefore.InexactFloat64(),
			RemainingAfter:  res.RemainingAfter.InexactFloat64(),
			FullyPaid:       res.FullyPaid,
		}
	}
	return responses
}

// PreviewResponse represents the allocation plan of a settlement preview
type PreviewResponse struct {
	Results               []AllocationResultResponse `json:"results"`
	TotalAllocated        float64                    `json:"total_allocated"`
	UnallocatedRemainder  float64                    `json:"unallocated_remainder"`
	InvoicesFullyPaid     int                        `json:"invoices_fully_paid"`
	InvoicesPartiallyPaid int                        `json:"invoices_partially_paid"`
}

// CommitResponse carries the receipt data of a committed settlement
type CommitResponse struct {
	Results              []AllocationResultResponse `json:"results"`
	PaymentIDs           []string                   `json:"payment_ids"`
	TotalSettled         float64                    `json:"total_settled"`
	UnallocatedRemainder float64                    `json:"unallocated_remainder"`
	CashReceived         float64                    `json:"cash_received"`
	DepositUsed          float64                    `json:"deposit_used"`
	DepositBalance       float64                    `json:"deposit_balance"`
}

// PaymentResponse represents one payment record in API responses
type PaymentResponse struct {
	ID            string    `json:"id"`
	InvoiceID     string    `json:"invoice_id"`
	InvoiceNumber string    `json:"invoice_number"`
	CustomerID    string    `json:"customer_id"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	Note          string    `json:"note,omitempty"`
	ActorID       *string   `json:"actor_id,omitempty"`
	PaidAt        time.Time `json:"paid_at"`
}

// toPaymentResponse converts a domain payment to its API shape
func toPaymentResponse(p *billing.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:            p.ID.String(),
		InvoiceID:     p.InvoiceID.String(),
		InvoiceNumber: p.InvoiceNumber,
		CustomerID:    p.CustomerID.String(),
		Amount:        p.Amount.InexactFloat64(),
		Method:        p.Method.String(),
		Note:          p.Note,
		PaidAt:        p.PaidAt,
	}
	if p.ActorID != nil {
		actorID := p.ActorID.String()
		resp.ActorID = &actorID
	}
	return resp
}

// PaymentAllocationResponse represents one allocation audit record
type PaymentAllocationResponse struct {
	ID        string  `json:"id"`
	PaymentID string  `json:"payment_id"`
	InvoiceID string  `json:"invoice_id"`
	Amount    float64 `json:"amount"`
}

// toPaymentAllocationResponse converts a domain allocation to its API shape
func toPaymentAllocationResponse(a *billing.PaymentAllocation) PaymentAllocationResponse {
	return PaymentAllocationResponse{
		ID:        a.ID.String(),
		PaymentID: a.PaymentID.String(),
		InvoiceID: a.InvoiceID.String(),
		Amount:    a.Amount.InexactFloat64(),
	}
}
