package handlers

import (
	"net/http"

	"gighaat/services/verification"
	"gighaat/services/wallet"
	"gighaat/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the review queues: withdrawal requests and freelancer
// verifications.
type AdminHandler struct {
	Wallets       wallet.WalletService
	Verifications verification.VerificationService
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(wallets wallet.WalletService, verifications verification.VerificationService) *AdminHandler {
	return &AdminHandler{Wallets: wallets, Verifications: verifications}
}

// ListWithdrawalsHandler lists withdrawal requests, optionally by status.
func (h *AdminHandler) ListWithdrawalsHandler(c *gin.Context) {
	reqs, err := h.Wallets.ListWithdrawals(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"withdrawals": reqs})
}

// ApproveWithdrawalHandler approves a pending withdrawal and debits the wallet.
func (h *AdminHandler) ApproveWithdrawalHandler(c *gin.Context) {
	req, err := h.Wallets.ApproveWithdrawal(c.Param("requestId"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"withdrawal": req})
}

// RejectWithdrawalHandler rejects a pending withdrawal with a reason.
func (h *AdminHandler) RejectWithdrawalHandler(c *gin.Context) {
	var body struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	req, err := h.Wallets.RejectWithdrawal(c.Param("requestId"), currentUserID(c), body.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"withdrawal": req})
}

// ListVerificationsHandler lists freelancer verifications, optionally by status.
func (h *AdminHandler) ListVerificationsHandler(c *gin.Context) {
	items, err := h.Verifications.List(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"verifications": items})
}

// ApproveVerificationHandler approves a pending verification and marks the
// freelancer verified.
func (h *AdminHandler) ApproveVerificationHandler(c *gin.Context) {
	v, err := h.Verifications.Approve(c.Param("verificationId"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"verification": v})
}

// RejectVerificationHandler rejects a pending verification with a reason.
func (h *AdminHandler) RejectVerificationHandler(c *gin.Context) {
	var body struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	v, err := h.Verifications.Reject(c.Param("verificationId"), currentUserID(c), body.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"verification": v})
}
