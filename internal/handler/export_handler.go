package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"meesho-recon/internal/export"
	"meesho-recon/internal/middleware"
	"meesho-recon/internal/service"
	"meesho-recon/pkg/response"
)

type ExportHandler struct {
	service service.ExportService
}

func NewExportHandler(service service.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export godoc
// @Summary Download a table
// @Description Render a session table as an XLSX workbook or PDF document. The reconciliation export carries one sheet per ledger view plus the summary.
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Param table path string true "Table" Enums(orders, status-summary, amount-summary, style-pivot, courier-pivot, payment-pivot, return-reasons, reconciliation)
// @Param format query string false "Format" Enums(xlsx, pdf) default(xlsx)
// @Success 200 {file} file
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /api/v1/exports/{table} [get]
func (h *ExportHandler) Export(c *gin.Context) {
	format := export.Format(strings.ToLower(c.DefaultQuery("format", string(export.FormatXLSX))))

	file, err := h.service.Export(middleware.CurrentSession(c), c.Param("table"), format)
	if err != nil {
		respondError(c, "Export failed", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// GetFormats godoc
// @Summary List export formats
// @Description List every export format and whether it is available
// @Tags exports
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/exports/formats [get]
func (h *ExportHandler) GetFormats(c *gin.Context) {
	response.Success(c, http.StatusOK, "Export formats retrieved successfully", gin.H{
		"formats": h.service.Formats(),
		"tables":  service.ExportTables,
	})
}
