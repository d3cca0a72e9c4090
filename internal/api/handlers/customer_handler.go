package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/api/middleware"
	"github.com/ruthwikaki/invochat-go/internal/service"
)

type CustomerHandler struct {
	service *service.CustomerService
}

func NewCustomerHandler(service *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

func (h *CustomerHandler) List(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	search := c.Query("search")
	limit := parsePositiveIntWithDefault(c, "limit", 50)
	offset := parseNonNegativeIntWithDefault(c, "offset", 0)

	customers, total, err := h.service.List(c.Request.Context(), companyID, search, limit, offset)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":  customers,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *CustomerHandler) Get(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid customer id")
		return
	}

	customer, err := h.service.Get(c.Request.Context(), companyID, customerID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	if customer == nil {
		errorResponse(c, http.StatusNotFound, "customer not found")
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid customer id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), companyID, customerID); err != nil {
		errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
