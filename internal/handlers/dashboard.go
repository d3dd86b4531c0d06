package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinivent/clinivent/internal/services"
	"github.com/clinivent/clinivent/pkg/response"
)

// DashboardHandler serves the landing-page aggregate.
type DashboardHandler struct {
	clinics *services.ClinicService
	stock   *services.StockService
}

func NewDashboardHandler(clinics *services.ClinicService, stock *services.StockService) *DashboardHandler {
	return &DashboardHandler{clinics: clinics, stock: stock}
}

// GET /api/dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	_, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	dashboard, err := h.stock.GetDashboard(requestContext(c), clinicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dashboard)
}

// GET /api/stock
func (h *DashboardHandler) Stock(c *gin.Context) {
	_, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	grouped, err := h.stock.ComputeStock(requestContext(c), clinicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": grouped})
}
