package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/timber-market/internal/model"
	"github.com/nurpe/timber-market/internal/service"
)

type Handler struct {
	demand    *service.DemandService
	stock     *service.StockService
	companies *service.CompanyService
	users     *service.UserService
	reports   *service.ReportService
	matches   *service.MatchService
	logistics *service.LogisticsService
	log       zerolog.Logger
}

type Services struct {
	Demand    *service.DemandService
	Stock     *service.StockService
	Companies *service.CompanyService
	Users     *service.UserService
	Reports   *service.ReportService
	Matches   *service.MatchService
	Logistics *service.LogisticsService
}

func NewHandler(services Services, log zerolog.Logger) *Handler {
	return &Handler{
		demand:    services.Demand,
		stock:     services.Stock,
		companies: services.Companies,
		users:     services.Users,
		reports:   services.Reports,
		matches:   services.Matches,
		logistics: services.Logistics,
		log:       log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/demands", h.listDemand)
	protected.POST("/demands", h.createDemand)
	protected.GET("/demands/:id", h.getDemand)
	protected.PATCH("/demands/:id/status", h.updateDemandStatus)

	protected.GET("/stock", h.listStock)
	protected.POST("/stock", h.createStock)
	protected.GET("/stock/:id", h.getStock)
	protected.PATCH("/stock/:id/status", h.updateStockStatus)

	protected.GET("/companies", h.listCompanies)
	protected.POST("/companies", h.createCompany)
	protected.GET("/companies/:id", h.getCompany)

	protected.GET("/users", h.listUsers)
	protected.POST("/users", h.createUser)
	protected.GET("/users/:id", h.getUser)
	protected.PATCH("/users/:id/role", h.updateUserRole)

	protected.GET("/reports/market", h.marketReport)
	protected.POST("/reports/market/export", h.exportMarketReport)
	protected.POST("/reports/market/export/pdf", h.exportMarketReportPDF)

	protected.POST("/matchmaking", h.proposeMatches)
	protected.POST("/logistics/plan", h.planDelivery)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoListings):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAIUnavailable):
		h.log.Error().Err(err).Msg("text generation gateway call failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "text generation gateway unavailable"})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseDemandStatus(raw string) (model.DemandStatus, error) {
	status := model.DemandStatus(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range model.DemandStatuses {
		if status == known {
			return status, nil
		}
	}
	return "", service.ErrInvalidInput
}

func parseStockStatus(raw string) (model.StockStatus, error) {
	status := model.StockStatus(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range model.StockStatuses {
		if status == known {
			return status, nil
		}
	}
	return "", service.ErrInvalidInput
}

func parseCompanyRole(raw string) (model.CompanyRole, error) {
	switch role := model.CompanyRole(strings.ToUpper(strings.TrimSpace(raw))); role {
	case model.CompanyRoleCustomer, model.CompanyRoleManufacturer:
		return role, nil
	default:
		return "", service.ErrInvalidInput
	}
}

func parseUserRole(raw string) (model.UserRole, error) {
	switch role := model.UserRole(strings.ToUpper(strings.TrimSpace(raw))); role {
	case model.UserRoleAdmin, model.UserRoleCustomer, model.UserRoleManufacturer:
		return role, nil
	default:
		return "", service.ErrInvalidInput
	}
}

// parseCompanyID turns an optional request field into a company reference.
func parseCompanyID(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, service.ErrInvalidInput
	}
	return &id, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

// parseOptionalDate treats an absent value as an open period bound.
func parseOptionalDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	return parseDate(raw)
}
