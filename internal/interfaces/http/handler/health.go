package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/printpos/backend/internal/infrastructure/persistence"
)

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	BaseHandler
	db *persistence.Database
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *persistence.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthResponse is the health probe payload
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Check reports whether the service and its database are reachable
func (h *HealthHandler) Check(c *gin.Context) {
	resp := HealthResponse{Status: "ok", Database: "ok"}

	if err := h.db.Ping(); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Stats reports database connection pool statistics
func (h *HealthHandler) Stats(c *gin.Context) {
	stats, err := h.db.Stats()
	if err != nil {
		h.InternalError(c, "Failed to read database stats")
		return
	}
	h.Success(c, stats)
}

// RegisterRoutes registers health routes
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Check)
	rg.GET("/health/stats", h.Stats)
}
