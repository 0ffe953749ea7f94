package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/timber-market/internal/http/middleware"
	"github.com/nurpe/timber-market/internal/service"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

type exportReportRequest struct {
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
}

type planDeliveryRequest struct {
	DemandID string `json:"demandId" binding:"required"`
	StockID  string `json:"stockId" binding:"required"`
	Notes    string `json:"notes"`
}

func (h *Handler) marketReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	start, err := parseOptionalDate(c.Query("period_start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_start"})
		return
	}
	end, err := parseOptionalDate(c.Query("period_end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_end"})
		return
	}

	report, err := h.reports.BuildMarketReport(c.Request.Context(), service.MarketReportInput{
		Principal:   principal,
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// bindExportRequest reads the optional export period; an empty body means
// the whole market history.
func (h *Handler) bindExportRequest(c *gin.Context) (service.MarketReportInput, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return service.MarketReportInput{}, false
	}

	var req exportReportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return service.MarketReportInput{}, false
		}
	}

	start, err := parseOptionalDate(req.PeriodStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid periodStart"})
		return service.MarketReportInput{}, false
	}
	end, err := parseOptionalDate(req.PeriodEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid periodEnd"})
		return service.MarketReportInput{}, false
	}

	return service.MarketReportInput{
		Principal:   principal,
		PeriodStart: start,
		PeriodEnd:   end,
	}, true
}

func (h *Handler) exportMarketReport(c *gin.Context) {
	input, ok := h.bindExportRequest(c)
	if !ok {
		return
	}

	result, err := h.reports.ExportExcel(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentTypeXLSX, result.Content)
}

func (h *Handler) exportMarketReportPDF(c *gin.Context) {
	input, ok := h.bindExportRequest(c)
	if !ok {
		return
	}

	result, err := h.reports.ExportPDF(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentTypePDF, result.Content)
}

func (h *Handler) proposeMatches(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	result, err := h.matches.ProposeMatches(c.Request.Context(), service.MatchmakingInput{
		Principal: principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) planDelivery(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req planDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	demandID, err := uuid.Parse(strings.TrimSpace(req.DemandID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid demandId"})
		return
	}
	stockID, err := uuid.Parse(strings.TrimSpace(req.StockID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stockId"})
		return
	}

	plan, err := h.logistics.PlanDelivery(c.Request.Context(), service.DeliveryPlanInput{
		Principal: principal,
		DemandID:  demandID,
		StockID:   stockID,
		Notes:     req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}
