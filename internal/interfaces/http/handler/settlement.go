package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/printpos/backend/internal/application/settlement"
	"github.com/shopspring/decimal"
)

// SettlementHandler handles settlement preview, commit and payment audit
// endpoints
type SettlementHandler struct {
	BaseHandler
	service *settlement.Service
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(service *settlement.Service) *SettlementHandler {
	return &SettlementHandler{service: service}
}

// Preview computes the allocation of a payment amount across the customer's
// outstanding invoices without committing anything
func (h *SettlementHandler) Preview(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	invoiceIDs, err := parseInvoiceIDs(req.InvoiceIDs)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	plan, err := h.service.Preview(c.Request.Context(), settlement.PreviewInput{
		TenantID:           tenantID,
		CustomerID:         customerID,
		Amount:             decimal.NewFromFloat(req.Amount),
		SelectedInvoiceIDs: invoiceIDs,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, PreviewResponse{
		Results:               toAllocationResultResponses(plan.Results),
		TotalAllocated:        plan.TotalAllocated.InexactFloat64(),
		UnallocatedRemainder:  plan.UnallocatedRemainder.InexactFloat64(),
		InvoicesFullyPaid:     len(plan.InvoicesFullyPaid),
		InvoicesPartiallyPaid: len(plan.InvoicesPartiallyPaid),
	})
}

// Commit validates, allocates and durably applies one settlement. A repeated
// Idempotency-Key header within the retention window is rejected with a
// conflict instead of double-charging.
func (h *SettlementHandler) Commit(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	invoiceIDs, err := parseInvoiceIDs(req.InvoiceIDs)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	result, err := h.service.Commit(c.Request.Context(), settlement.CommitInput{
		TenantID:           tenantID,
		CustomerID:         customerID,
		CashAmount:         decimal.NewFromFloat(req.CashAmount),
		DepositAmount:      decimal.NewFromFloat(req.DepositAmount),
		SelectedInvoiceIDs: invoiceIDs,
		Note:               req.Note,
		ActorID:            getActorID(c),
		IdempotencyKey:     c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	paymentIDs := make([]string, len(result.PaymentIDs))
	for i, id := range result.PaymentIDs {
		paymentIDs[i] = id.String()
	}

	h.Created(c, CommitResponse{
		Results:              toAllocationResultResponses(result.Results),
		PaymentIDs:           paymentIDs,
		TotalSettled:         result.TotalSettled.InexactFloat64(),
		UnallocatedRemainder: result.UnallocatedRemainder.InexactFloat64(),
		CashReceived:         result.CashReceived.InexactFloat64(),
		DepositUsed:          result.DepositUsed.InexactFloat64(),
		DepositBalance:       result.DepositBalance.InexactFloat64(),
	})
}

// ListInvoicePayments returns the payment history of one invoice
func (h *SettlementHandler) ListInvoicePayments(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	payments, err := h.service.ListInvoicePayments(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = toPaymentResponse(&payments[i])
	}
	h.Success(c, responses)
}

// ListPaymentAllocations returns the allocation audit records of one payment
func (h *SettlementHandler) ListPaymentAllocations(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	allocations, err := h.service.ListPaymentAllocations(c.Request.Context(), tenantID, paymentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]PaymentAllocationResponse, len(allocations))
	for i := range allocations {
		responses[i] = toPaymentAllocationResponse(&allocations[i])
	}
	h.Success(c, responses)
}

// parseInvoiceIDs parses the optional invoice ID subset of a request
func parseInvoiceIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// RegisterRoutes registers all settlement routes
func (h *SettlementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	settlements := rg.Group("/settlements")
	{
		settlements.POST("", h.Commit)
		settlements.POST("/preview", h.Preview)
	}

	rg.GET("/invoices/:id/payments", h.ListInvoicePayments)
	rg.GET("/payments/:id/allocations", h.ListPaymentAllocations)
}
