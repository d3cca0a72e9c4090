package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/api/middleware"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/service"
)

type PurchaseOrderHandler struct {
	service *service.PurchaseOrderService
	reorder *service.ReorderService
}

func NewPurchaseOrderHandler(svc *service.PurchaseOrderService, reorderSvc *service.ReorderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{service: svc, reorder: reorderSvc}
}

func (h *PurchaseOrderHandler) List(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	status := c.Query("status")
	limit := parsePositiveIntWithDefault(c, "limit", 50)
	offset := parseNonNegativeIntWithDefault(c, "offset", 0)

	pos, total, err := h.service.List(c.Request.Context(), companyID, status, limit, offset)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":  pos,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	poID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid purchase order id")
		return
	}

	po, err := h.service.Get(c.Request.Context(), companyID, poID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	if po == nil {
		errorResponse(c, http.StatusNotFound, "purchase order not found")
		return
	}

	c.JSON(http.StatusOK, po)
}

func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	companyID := middleware.CompanyID(c)

	var po domain.PurchaseOrder
	if err := c.ShouldBindJSON(&po); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Create(c.Request.Context(), companyID, &po); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, po)
}

func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	poID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid purchase order id")
		return
	}

	if err := h.service.MarkReceived(c.Request.Context(), companyID, poID); err != nil {
		errorResponse(c, http.StatusConflict, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

type createFromSuggestionsRequest struct {
	Refine *bool `json:"refine"`
}

// CreateFromSuggestions recomputes the reorder report and materializes it
// into draft purchase orders, one per supplier. Suggestions without an
// assigned supplier are skipped and counted in the response message.
func (h *PurchaseOrderHandler) CreateFromSuggestions(c *gin.Context) {
	companyID := middleware.CompanyID(c)

	refine := true
	var req createFromSuggestionsRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.Refine != nil {
		refine = *req.Refine
	}

	ctx := c.Request.Context()
	list, err := h.suggestions(c, refine)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := h.reorder.CreatePurchaseOrders(ctx, companyID, list)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *PurchaseOrderHandler) suggestions(c *gin.Context, refine bool) ([]domain.ReorderSuggestion, error) {
	companyID := middleware.CompanyID(c)
	if refine {
		return h.reorder.Suggestions(c.Request.Context(), companyID)
	}
	return h.reorder.BaselineSuggestions(c.Request.Context(), companyID)
}
