package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/api/middleware"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/service"
)

type SupplierHandler struct {
	service *service.SupplierService
}

func NewSupplierHandler(service *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

func (h *SupplierHandler) List(c *gin.Context) {
	companyID := middleware.CompanyID(c)

	suppliers, err := h.service.List(c.Request.Context(), companyID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": suppliers})
}

func (h *SupplierHandler) Get(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid supplier id")
		return
	}

	supplier, err := h.service.Get(c.Request.Context(), companyID, supplierID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	if supplier == nil {
		errorResponse(c, http.StatusNotFound, "supplier not found")
		return
	}

	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) Create(c *gin.Context) {
	companyID := middleware.CompanyID(c)

	var supplier domain.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Create(c.Request.Context(), companyID, &supplier); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, supplier)
}

func (h *SupplierHandler) Update(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid supplier id")
		return
	}

	var supplier domain.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	supplier.ID = supplierID

	if err := h.service.Update(c.Request.Context(), companyID, &supplier); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) Delete(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid supplier id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), companyID, supplierID); err != nil {
		errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
