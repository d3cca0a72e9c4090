package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ruthwikaki/invochat-go/internal/api/middleware"
	"github.com/ruthwikaki/invochat-go/internal/service"
)

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	reorder   *service.ReorderService
}

func NewAnalyticsHandler(analytics *service.AnalyticsService, reorder *service.ReorderService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, reorder: reorder}
}

func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	periodDays := parsePositiveIntWithDefault(c, "period_days", 30)

	summary, err := h.analytics.DashboardSummary(c.Request.Context(), companyID, periodDays)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *AnalyticsHandler) DeadStock(c *gin.Context) {
	companyID := middleware.CompanyID(c)

	items, err := h.analytics.DeadStock(c.Request.Context(), companyID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Reorder runs the full suggestion pipeline. `?refine=false` skips the AI
// step and returns baseline quantities.
func (h *AnalyticsHandler) Reorder(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	refine := !strings.EqualFold(c.DefaultQuery("refine", "true"), "false")

	var (
		suggestions interface{}
		err         error
	)
	if refine {
		suggestions, err = h.reorder.Suggestions(c.Request.Context(), companyID)
	} else {
		suggestions, err = h.reorder.BaselineSuggestions(c.Request.Context(), companyID)
	}
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *AnalyticsHandler) ABCAnalysis(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	periodDays := parsePositiveIntWithDefault(c, "period_days", 90)

	items, err := h.analytics.ABCAnalysis(c.Request.Context(), companyID, periodDays)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *AnalyticsHandler) InventoryTurnover(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	periodDays := parsePositiveIntWithDefault(c, "period_days", 365)

	result, err := h.analytics.Turnover(c.Request.Context(), companyID, periodDays)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AnalyticsHandler) SalesVelocity(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	periodDays := parsePositiveIntWithDefault(c, "period_days", 30)

	items, err := h.analytics.SalesVelocity(c.Request.Context(), companyID, periodDays)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *AnalyticsHandler) GrossMargin(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	periodDays := parsePositiveIntWithDefault(c, "period_days", 90)

	items, err := h.analytics.GrossMargin(c.Request.Context(), companyID, periodDays)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *AnalyticsHandler) HiddenOpportunities(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	periodDays := parsePositiveIntWithDefault(c, "period_days", 90)

	items, err := h.analytics.HiddenOpportunities(c.Request.Context(), companyID, periodDays)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *AnalyticsHandler) CustomerInsights(c *gin.Context) {
	companyID := middleware.CompanyID(c)

	insights, err := h.analytics.CustomerInsights(c.Request.Context(), companyID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": insights})
}

func (h *AnalyticsHandler) SupplierPerformance(c *gin.Context) {
	companyID := middleware.CompanyID(c)

	scores, err := h.analytics.SupplierPerformance(c.Request.Context(), companyID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": scores})
}

func (h *AnalyticsHandler) Forecast(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	sku := strings.TrimSpace(c.Query("sku"))
	if sku == "" {
		errorResponse(c, http.StatusBadRequest, "sku is required")
		return
	}
	periodDays := parsePositiveIntWithDefault(c, "period_days", 180)

	result, err := h.analytics.Forecast(c.Request.Context(), companyID, sku, periodDays)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}
