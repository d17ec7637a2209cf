package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	reportapp "github.com/paintdesk/backend/internal/application/report"
)

// ReportHandler handles analytics endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard returns the sales summary for the dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// SalesTrend returns daily sales totals over a trailing window
func (h *ReportHandler) SalesTrend(c *gin.Context) {
	days := h.queryInt(c, "days", 30)

	trend, err := h.reportService.SalesTrend(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, trend)
}

// Receivables returns outstanding balances grouped by customer
func (h *ReportHandler) Receivables(c *gin.Context) {
	receivables, err := h.reportService.Receivables(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receivables)
}

// TopProducts returns the best selling products over a trailing window
func (h *ReportHandler) TopProducts(c *gin.Context) {
	days := h.queryInt(c, "days", 30)
	limit := h.queryInt(c, "limit", 10)

	products, err := h.reportService.TopProducts(c.Request.Context(), days, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

func (h *ReportHandler) queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
