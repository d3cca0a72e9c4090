package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ruthwikaki/invochat-go/internal/api/middleware"
	"github.com/ruthwikaki/invochat-go/internal/service"
)

type OrderHandler struct {
	service *service.OrderService
}

func NewOrderHandler(service *service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) List(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	limit := parsePositiveIntWithDefault(c, "limit", 50)
	offset := parseNonNegativeIntWithDefault(c, "offset", 0)

	orders, total, err := h.service.List(c.Request.Context(), companyID, limit, offset)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":  orders,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// SalesSeries returns daily unit sales per SKU. SKUs come comma-separated or
// repeated in the query string.
func (h *OrderHandler) SalesSeries(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	days := parsePositiveIntWithDefault(c, "days", 90)

	raw := c.QueryArray("sku")
	if len(raw) == 0 {
		if single := strings.TrimSpace(c.Query("skus")); single != "" {
			raw = strings.Split(single, ",")
		}
	}
	skus := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			skus = append(skus, s)
		}
	}
	if len(skus) == 0 {
		errorResponse(c, http.StatusBadRequest, "at least one sku is required")
		return
	}

	series, err := h.service.SalesSeries(c.Request.Context(), companyID, skus, days)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"series": series, "days": days})
}
