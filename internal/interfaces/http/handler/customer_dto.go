package handler

import (
	"time"

	"github.com/printpos/backend/internal/domain/billing"
	"github.com/printpos/backend/internal/domain/partner"
)

// CustomerSummaryResponse is the settlement-screen header for one customer
type CustomerSummaryResponse struct {
	ID               string  `json:"id"`
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	Phone            string  `json:"phone,omitempty"`
	Address          string  `json:"address,omitempty"`
	DepositBalance   float64 `json:"deposit_balance"`
	OutstandingTotal float64 `json:"outstanding_total"`
	OutstandingCount int     `json:"outstanding_count"`
	Note             string  `json:"note,omitempty"`
}

// OutstandingInvoiceResponse represents one outstanding invoice in API responses
type OutstandingInvoiceResponse struct {
	ID            string    `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	Sequence      int64     `json:"sequence"`
	TotalPrice    float64   `json:"total_price"`
	AmountPaid    float64   `json:"amount_paid"`
	Outstanding   float64   `json:"outstanding"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// toOutstandingInvoiceResponse converts a domain invoice to its API shape
func toOutstandingInvoiceResponse(inv *billing.Invoice) OutstandingInvoiceResponse {
	return OutstandingInvoiceResponse{
		ID:            inv.ID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		Sequence:      inv.Sequence,
		TotalPrice:    inv.TotalPrice.InexactFloat64(),
		AmountPaid:    inv.AmountPaid.InexactFloat64(),
		Outstanding:   inv.Outstanding().InexactFloat64(),
		Status:        inv.Status.String(),
		CreatedAt:     inv.CreatedAt,
	}
}

// TopUpRequest represents a request to add prepaid funds to a customer deposit
type TopUpRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Note   string  `json:"note" binding:"max=500"`
}

// DepositEntryResponse represents one deposit ledger entry in API responses
type DepositEntryResponse struct {
	ID            string    `json:"id"`
	EntryType     string    `json:"entry_type"`
	Amount        float64   `json:"amount"`
	BalanceBefore float64   `json:"balance_before"`
	BalanceAfter  float64   `json:"balance_after"`
	SourceID      *string   `json:"source_id,omitempty"`
	Note          string    `json:"note,omitempty"`
	ActorID       *string   `json:"actor_id,omitempty"`
	EntryDate     time.Time `json:"entry_date"`
}

// toDepositEntryResponse converts a domain ledger entry to its API shape
func toDepositEntryResponse(e *partner.DepositEntry) DepositEntryResponse {
	resp := DepositEntryResponse{
		ID:            e.ID.String(),
		EntryType:     e.EntryType.String(),
		Amount:        e.Amount.InexactFloat64(),
		BalanceBefore: e.BalanceBefore.InexactFloat64(),
		BalanceAfter:  e.BalanceAfter.InexactFloat64(),
		SourceID:      e.SourceID,
		Note:          e.Note,
		EntryDate:     e.EntryDate,
	}
	if e.ActorID != nil {
		actorID := e.ActorID.String()
		resp.ActorID = &actorID
	}
	return resp
}

// RecomputeBalanceResponse is the result of a ledger reconciliation
type RecomputeBalanceResponse struct {
	CustomerID     string  `json:"customer_id"`
	DepositBalance float64 `json:"deposit_balance"`
}
