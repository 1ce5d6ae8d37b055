package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mshrynzw/auriary/pkg/model"
	"github.com/mshrynzw/auriary/pkg/response"
)

// CreateMedication registers a medication in the user's master list
// POST /api/v1/medications
func (h *Handler) CreateMedication(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var req model.CreateMedicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	id, err := h.Repository.CreateMedication(c.Request.Context(), &model.Medication{
		UserID:        claims.UserID,
		Name:          req.Name,
		DefaultAmount: req.DefaultAmount,
		AmountUnit:    req.AmountUnit,
	})
	if err != nil {
		h.Logger.Sugar().Errorw("medication create failed", "user_id", claims.UserID, "err", err)
		response.InternalError(c, "could not create medication")
		return
	}

	response.Created(c, gin.H{"medication_id": id})
}

// ListMedications returns the user's medications ordered by name
// GET /api/v1/medications
func (h *Handler) ListMedications(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	medications, err := h.Repository.ListMedicationsByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.Logger.Sugar().Errorw("medication list failed", "user_id", claims.UserID, "err", err)
		response.InternalError(c, "could not list medications")
		return
	}

	response.OK(c, medications)
}
