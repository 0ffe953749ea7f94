package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/timber-market/internal/http/middleware"
	"github.com/nurpe/timber-market/internal/model"
	"github.com/nurpe/timber-market/internal/service"
)

// Numeric listing fields travel as strings the way the web client submits
// form inputs; the service layer parses them forgivingly.
type createDemandRequest struct {
	CompanyID    string `json:"companyId"`
	DiameterType string `json:"diameterType"`
	DiameterFrom string `json:"diameterFrom"`
	DiameterTo   string `json:"diameterTo"`
	Length       string `json:"length"`
	Quantity     string `json:"quantity"`
	Notes        string `json:"notes"`
}

type createStockRequest struct {
	CompanyID          string `json:"companyId"`
	DiameterType       string `json:"diameterType"`
	DiameterFrom       string `json:"diameterFrom"`
	DiameterTo         string `json:"diameterTo"`
	Length             string `json:"length"`
	Quantity           string `json:"quantity"`
	Price              string `json:"price"`
	SustainabilityInfo string `json:"sustainabilityInfo"`
	Notes              string `json:"notes"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) listDemand(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var status *model.DemandStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := parseDemandStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = &parsed
	}

	items, err := h.demand.List(c.Request.Context(), service.ListDemandInput{
		Principal: principal,
		Status:    status,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createDemand(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	companyID, err := parseCompanyID(req.CompanyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid companyId"})
		return
	}

	item, err := h.demand.Create(c.Request.Context(), service.CreateDemandInput{
		Principal:    principal,
		CompanyID:    companyID,
		DiameterType: req.DiameterType,
		DiameterFrom: req.DiameterFrom,
		DiameterTo:   req.DiameterTo,
		Length:       req.Length,
		Quantity:     req.Quantity,
		Notes:        req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) getDemand(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := h.demand.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) updateDemandStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := parseDemandStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	item, err := h.demand.UpdateStatus(c.Request.Context(), principal, id, status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) listStock(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var status *model.StockStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := parseStockStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = &parsed
	}

	items, err := h.stock.List(c.Request.Context(), service.ListStockInput{
		Principal: principal,
		Status:    status,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createStock(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	companyID, err := parseCompanyID(req.CompanyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid companyId"})
		return
	}

	item, err := h.stock.Create(c.Request.Context(), service.CreateStockInput{
		Principal:          principal,
		CompanyID:          companyID,
		DiameterType:       req.DiameterType,
		DiameterFrom:       req.DiameterFrom,
		DiameterTo:         req.DiameterTo,
		Length:             req.Length,
		Quantity:           req.Quantity,
		Price:              req.Price,
		SustainabilityInfo: req.SustainabilityInfo,
		Notes:              req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) getStock(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := h.stock.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) updateStockStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := parseStockStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	item, err := h.stock.UpdateStatus(c.Request.Context(), principal, id, status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
