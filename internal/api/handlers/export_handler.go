package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/ruthwikaki/invochat-go/internal/api/middleware"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/service"
)

type ExportHandler struct {
	export    *service.ExportService
	reorder   *service.ReorderService
	inventory *service.InventoryService
}

func NewExportHandler(export *service.ExportService, reorder *service.ReorderService, inventory *service.InventoryService) *ExportHandler {
	return &ExportHandler{export: export, reorder: reorder, inventory: inventory}
}

// ReorderSuggestions streams the current reorder report as a CSV attachment.
// Supports `?refine=false` like the report endpoint.
func (h *ExportHandler) ReorderSuggestions(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	refine := !strings.EqualFold(c.DefaultQuery("refine", "true"), "false")

	ctx := c.Request.Context()
	var (
		list []domain.ReorderSuggestion
		err  error
	)
	if refine {
		list, err = h.reorder.Suggestions(ctx, companyID)
	} else {
		list, err = h.reorder.BaselineSuggestions(ctx, companyID)
	}
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	payload, filename, err := h.export.SuggestionsCSV(ctx, companyID, list)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", payload)
}

// Archives lists the export files previously archived to object storage.
func (h *ExportHandler) Archives(c *gin.Context) {
	companyID := middleware.CompanyID(c)

	names, err := h.export.ListArchives(c.Request.Context(), companyID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": names})
}

// Archive streams one archived export back as a CSV attachment.
func (h *ExportHandler) Archive(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	name := c.Param("name")

	rc, err := h.export.FetchArchive(c.Request.Context(), companyID, name)
	if err != nil {
		errorResponse(c, http.StatusNotFound, err.Error())
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		log.Warn().Err(err).Str("object", name).Msg("failed to stream archived export")
	}
}

// Inventory streams the full variant list as a CSV attachment.
func (h *ExportHandler) Inventory(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	ctx := c.Request.Context()

	var variants []domain.ProductVariant
	offset := 0
	for {
		page, total, err := h.inventory.List(ctx, companyID, "", 200, offset)
		if err != nil {
			errorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}
		variants = append(variants, page...)
		offset += len(page)
		if len(page) == 0 || offset >= total {
			break
		}
	}

	payload, filename, err := h.export.InventoryCSV(ctx, companyID, variants)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", payload)
}
