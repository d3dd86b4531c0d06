package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinivent/clinivent/internal/services"
	"github.com/clinivent/clinivent/pkg/response"
)

// ExportHandler serves CSV report downloads.
type ExportHandler struct {
	clinics *services.ClinicService
	exports *services.ExportService
}

func NewExportHandler(clinics *services.ClinicService, exports *services.ExportService) *ExportHandler {
	return &ExportHandler{clinics: clinics, exports: exports}
}

func writeCSVAttachment(c *gin.Context, file *services.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(file.Content))
}

// GET /api/export/current-stock
func (h *ExportHandler) CurrentStock(c *gin.Context) {
	_, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	file, err := h.exports.CurrentStock(requestContext(c), clinicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	writeCSVAttachment(c, file)
}

// GET /api/export/transactions?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ExportHandler) Transactions(c *gin.Context) {
	_, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	file, err := h.exports.Transactions(requestContext(c), clinicID, c.Query("from"), c.Query("to"))
	if err != nil {
		response.Error(c, err)
		return
	}
	writeCSVAttachment(c, file)
}
