package handlers

import (
	"net/http"

	"gighaat/services/wallet"
	"gighaat/utils"

	"github.com/gin-gonic/gin"
)

// WalletHandler exposes the freelancer's wallet and withdrawal requests.
type WalletHandler struct {
	Wallets wallet.WalletService
}

// NewWalletHandler creates a new WalletHandler instance.
func NewWalletHandler(wallets wallet.WalletService) *WalletHandler {
	return &WalletHandler{Wallets: wallets}
}

// GetWalletHandler returns the freelancer's wallet with its transactions.
func (h *WalletHandler) GetWalletHandler(c *gin.Context) {
	w, err := h.Wallets.GetWallet(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"wallet": w})
}

// RequestWithdrawalHandler files a pending withdrawal for admin review.
func (h *WalletHandler) RequestWithdrawalHandler(c *gin.Context) {
	var req struct {
		Amount float64 `json:"amount" binding:"required"`
		UPIID  string  `json:"upiId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	w, err := h.Wallets.RequestWithdrawal(currentUserID(c), req.Amount, req.UPIID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"withdrawal": w})
}

// WithdrawalHistoryHandler lists the freelancer's withdrawal requests.
func (h *WalletHandler) WithdrawalHistoryHandler(c *gin.Context) {
	reqs, err := h.Wallets.WithdrawalHistory(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"withdrawals": reqs})
}
