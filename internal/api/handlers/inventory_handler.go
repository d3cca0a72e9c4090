package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/api/middleware"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/service"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) List(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	search := c.Query("search")
	limit := parsePositiveIntWithDefault(c, "limit", 50)
	offset := parseNonNegativeIntWithDefault(c, "offset", 0)

	items, total, err := h.service.List(c.Request.Context(), companyID, search, limit, offset)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *InventoryHandler) Get(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid variant id")
		return
	}

	variant, err := h.service.Get(c.Request.Context(), companyID, variantID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	if variant == nil {
		errorResponse(c, http.StatusNotFound, "variant not found")
		return
	}

	c.JSON(http.StatusOK, variant)
}

type reorderSettingsRequest struct {
	ReorderPoint    *int `json:"reorder_point"`
	ReorderQuantity *int `json:"reorder_quantity"`
}

func (h *InventoryHandler) UpdateReorderSettings(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid variant id")
		return
	}

	var req reorderSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateReorderSettings(c.Request.Context(), companyID, variantID, req.ReorderPoint, req.ReorderQuantity); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

type adjustStockRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid variant id")
		return
	}

	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	adj := domain.StockAdjustment{
		VariantID: variantID,
		Delta:     req.Delta,
		Reason:    req.Reason,
	}
	if err := h.service.AdjustStock(c.Request.Context(), companyID, adj); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "adjusted"})
}
