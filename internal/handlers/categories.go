package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinivent/clinivent/internal/services"
	"github.com/clinivent/clinivent/pkg/response"
)

// CategoryHandler manages the category catalogue.
type CategoryHandler struct {
	clinics    *services.ClinicService
	categories *services.CategoryService
}

func NewCategoryHandler(clinics *services.ClinicService, categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{clinics: clinics, categories: categories}
}

type createCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	_, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	categories, err := h.categories.List(requestContext(c), clinicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

// POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	_, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	var req createCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}

	category, err := h.categories.Create(requestContext(c), clinicID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, category)
}

// POST /api/categories/:id/archive
func (h *CategoryHandler) Archive(c *gin.Context) {
	_, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	if err := h.categories.Archive(requestContext(c), clinicID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"archived": true})
}
