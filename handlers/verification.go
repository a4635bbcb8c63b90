package handlers

import (
	"net/http"

	"gighaat/services/verification"
	"gighaat/utils"

	"github.com/gin-gonic/gin"
)

// VerificationHandler exposes the freelancer side of identity verification.
type VerificationHandler struct {
	Verifications verification.VerificationService
}

// NewVerificationHandler creates a new VerificationHandler instance.
func NewVerificationHandler(verifications verification.VerificationService) *VerificationHandler {
	return &VerificationHandler{Verifications: verifications}
}

// SubmitVerificationHandler files the freelancer's identity documents for review.
func (h *VerificationHandler) SubmitVerificationHandler(c *gin.Context) {
	var input verification.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	v, err := h.Verifications.Submit(currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"verification": v})
}

// VerificationStatusHandler reports the freelancer's own verification state.
func (h *VerificationHandler) VerificationStatusHandler(c *gin.Context) {
	status, err := h.Verifications.StatusFor(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"submitted":       status.Submitted,
		"status":          status.Status,
		"rejectionReason": status.RejectionReason,
	})
}
