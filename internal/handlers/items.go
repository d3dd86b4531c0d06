package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinivent/clinivent/internal/services"
	"github.com/clinivent/clinivent/pkg/response"
)

// ItemHandler manages the stocked-item catalogue.
type ItemHandler struct {
	clinics *services.ClinicService
	items   *services.ItemService
}

func NewItemHandler(clinics *services.ClinicService, items *services.ItemService) *ItemHandler {
	return &ItemHandler{clinics: clinics, items: items}
}

type createItemRequest struct {
	CategoryID       string `json:"category_id" validate:"required"`
	Name             string `json:"name" validate:"required,min=1,max=100"`
	Unit             string `json:"unit" validate:"max=20"`
	ReorderThreshold int    `json:"reorder_threshold" validate:"min=0"`
}

type updateThresholdRequest struct {
	ReorderThreshold int `json:"reorder_threshold" validate:"min=0"`
}

// GET /api/items
func (h *ItemHandler) List(c *gin.Context) {
	_, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	items, err := h.items.List(requestContext(c), clinicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// POST /api/items
func (h *ItemHandler) Create(c *gin.Context) {
	_, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	var req createItemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.items.Create(requestContext(c), clinicID, services.CreateItemInput{
		CategoryID:       req.CategoryID,
		Name:             req.Name,
		Unit:             req.Unit,
		ReorderThreshold: req.ReorderThreshold,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// PATCH /api/items/:id/threshold
func (h *ItemHandler) UpdateThreshold(c *gin.Context) {
	_, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	var req updateThresholdRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.items.UpdateThreshold(requestContext(c), clinicID, c.Param("id"), req.ReorderThreshold); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

// POST /api/items/:id/archive
func (h *ItemHandler) Archive(c *gin.Context) {
	_, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	if err := h.items.Archive(requestContext(c), clinicID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"archived": true})
}
