package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinivent/clinivent/internal/services"
	"github.com/clinivent/clinivent/pkg/response"
)

// InviteHandler manages clinic invitations. Accept deliberately does not go
// through tenant resolution: the accepting user typically has no clinic yet.
type InviteHandler struct {
	clinics *services.ClinicService
	invites *services.InviteService
}

func NewInviteHandler(clinics *services.ClinicService, invites *services.InviteService) *InviteHandler {
	return &InviteHandler{clinics: clinics, invites: invites}
}

type acceptInviteRequest struct {
	Token string `json:"token" validate:"required"`
}

// GET /api/invites
func (h *InviteHandler) List(c *gin.Context) {
	_, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	invites, err := h.invites.List(requestContext(c), clinicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"invites": invites})
}

// POST /api/invites
func (h *InviteHandler) Create(c *gin.Context) {
	userID, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	invite, err := h.invites.Issue(requestContext(c), clinicID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, invite)
}

// POST /api/invites/accept
func (h *InviteHandler) Accept(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req acceptInviteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.invites.Accept(requestContext(c), req.Token, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
