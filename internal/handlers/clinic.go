package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/clinivent/clinivent/internal/services"
	apperrors "github.com/clinivent/clinivent/pkg/errors"
	"github.com/clinivent/clinivent/pkg/response"
)

// ClinicHandler manages clinic setup, the member roster and clinic deletion.
type ClinicHandler struct {
	clinics *services.ClinicService
}

func NewClinicHandler(clinics *services.ClinicService) *ClinicHandler {
	return &ClinicHandler{clinics: clinics}
}

type setupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// POST /api/setup
func (h *ClinicHandler) Setup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req setupRequest
	if !bindAndValidate(c, &req) {
		return
	}

	clinic, err := h.clinics.Setup(requestContext(c), userID, services.SetupInput{Name: req.Name})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, clinic)
}

// GET /api/setup/status
//
// Reports whether the caller already belongs to a clinic so the client can
// route between the setup flow and the dashboard without treating NO_CLINIC
// as a failure.
func (h *ClinicHandler) SetupStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clinicID, err := h.clinics.ResolveClinicID(requestContext(c), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoClinic) {
			response.Success(c, http.StatusOK, gin.H{"has_clinic": false})
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"has_clinic": true, "clinic_id": clinicID})
}

// GET /api/clinic
func (h *ClinicHandler) Get(c *gin.Context) {
	_, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	clinic, err := h.clinics.Get(requestContext(c), clinicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, clinic)
}

type updateClinicRequest struct {
	Name     *string         `json:"name" validate:"omitempty,min=1,max=100"`
	Settings json.RawMessage `json:"settings"`
}

// PATCH /api/clinic
//
// Owner-only. Settings is opaque JSON for client display preferences.
func (h *ClinicHandler) Update(c *gin.Context) {
	userID, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	var req updateClinicRequest
	if !bindAndValidate(c, &req) {
		return
	}

	input := services.UpdateClinicInput{Name: req.Name}
	if req.Settings != nil {
		input.Settings = datatypes.JSON(req.Settings)
	}

	clinic, err := h.clinics.Update(requestContext(c), clinicID, userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, clinic)
}

// GET /api/members
func (h *ClinicHandler) ListMembers(c *gin.Context) {
	_, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	members, err := h.clinics.ListMembers(requestContext(c), clinicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"members": members})
}

// DELETE /api/clinic
func (h *ClinicHandler) Delete(c *gin.Context) {
	userID, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	if err := h.clinics.Delete(requestContext(c), clinicID, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
