package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinivent/clinivent/internal/models"
	"github.com/clinivent/clinivent/internal/services"
	"github.com/clinivent/clinivent/pkg/response"
)

// TransactionHandler manages stock ledger entries.
type TransactionHandler struct {
	clinics      *services.ClinicService
	transactions *services.TransactionService
}

func NewTransactionHandler(clinics *services.ClinicService, transactions *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{clinics: clinics, transactions: transactions}
}

type recordTransactionRequest struct {
	ItemID       string `json:"item_id" validate:"required"`
	Type         string `json:"type" validate:"required,oneof=in out adjust"`
	Qty          string `json:"qty" validate:"required"`
	Memo         string `json:"memo" validate:"max=500"`
	OccurredDate string `json:"occurred_date" validate:"max=10"`
}

// GET /api/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	_, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	txns, err := h.transactions.List(requestContext(c), clinicID, c.Query("item_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"transactions": txns})
}

// POST /api/transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	var req recordTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	txn, err := h.transactions.Record(requestContext(c), clinicID, userID, services.RecordTransactionInput{
		ItemID:       req.ItemID,
		Type:         models.TransactionType(req.Type),
		Qty:          req.Qty,
		Memo:         req.Memo,
		OccurredDate: req.OccurredDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, txn)
}

// DELETE /api/transactions/:id
func (h *TransactionHandler) Delete(c *gin.Context) {
	_, clinicID, ok := currentWorkspace(c, h.clinics)
	if !ok {
		return
	}

	if err := h.transactions.Delete(requestContext(c), clinicID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
