package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/printpos/backend/internal/application/settlement"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/printpos/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// CustomerHandler handles customer-facing settlement and deposit endpoints
type CustomerHandler struct {
	BaseHandler
	settlements *settlement.Service
	deposits    *settlement.DepositService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(settlements *settlement.Service, deposits *settlement.DepositService) *CustomerHandler {
	return &CustomerHandler{
		settlements: settlements,
		deposits:    deposits,
	}
}

// GetSummary returns the customer with their deposit balance and total
// outstanding debt
func (h *CustomerHandler) GetSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	summary, err := h.settlements.GetCustomerSummary(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, CustomerSummaryResponse{
		ID:               summary.Customer.ID.String(),
		Code:             summary.Customer.Code,
		Name:             summary.Customer.Name,
		Phone:            summary.Customer.Phone,
		Address:          summary.Customer.Address,
		DepositBalance:   summary.Customer.DepositBalance.InexactFloat64(),
		OutstandingTotal: summary.OutstandingTotal.InexactFloat64(),
		OutstandingCount: summary.OutstandingCount,
		Note:             summary.Customer.Note,
	})
}

// ListOutstanding returns the customer's unpaid and partially paid invoices,
// oldest first
func (h *CustomerHandler) ListOutstanding(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	invoices, err := h.settlements.ListOutstanding(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]OutstandingInvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = toOutstandingInvoiceResponse(&invoices[i])
	}
	h.Success(c, responses)
}

// ListDeposits returns the customer's deposit ledger, newest first
func (h *CustomerHandler) ListDeposits(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if entryType := c.Query("entry_type"); entryType != "" {
		filter.Filters["entry_type"] = entryType
	}

	page, err := h.deposits.ListLedger(c.Request.Context(), tenantID, customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]DepositEntryResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = toDepositEntryResponse(&page.Items[i])
	}
	h.SuccessWithMeta(c, responses, page.Total, page.Page, page.PageSize)
}

// TopUp adds prepaid funds to the customer's deposit
func (h *CustomerHandler) TopUp(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.deposits.TopUp(c.Request.Context(), settlement.TopUpInput{
		TenantID:   tenantID,
		CustomerID: customerID,
		Amount:     decimal.NewFromFloat(req.Amount),
		Note:       req.Note,
		ActorID:    getActorID(c),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toDepositEntryResponse(entry))
}

// RecomputeBalance re-derives the cached deposit balance from the ledger
func (h *CustomerHandler) RecomputeBalance(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	balance, err := h.deposits.RecomputeBalance(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, RecomputeBalanceResponse{
		CustomerID:     customerID.String(),
		DepositBalance: balance.InexactFloat64(),
	})
}

// RegisterRoutes registers all customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.GET("/:id", h.GetSummary)
		customers.GET("/:id/invoices/outstanding", h.ListOutstanding)
		customers.GET("/:id/deposits", h.ListDeposits)
		customers.POST("/:id/deposits", h.TopUp)
		customers.POST("/:id/deposits/recompute", h.RecomputeBalance)
	}
}
