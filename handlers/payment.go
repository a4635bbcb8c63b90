package handlers

import (
	"net/http"

	"gighaat/services/payment"
	"gighaat/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes both payment paths: UPI orders for clients and
// commission settlement for freelancers.
type PaymentHandler struct {
	Payments payment.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler instance.
func NewPaymentHandler(payments payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

// CreateUPIPaymentHandler creates a gateway order for a work_done job.
func (h *PaymentHandler) CreateUPIPaymentHandler(c *gin.Context) {
	order, err := h.Payments.CreateUPIPayment(c.Request.Context(), c.Param("jobId"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"order": order})
}

// PayJobHandler dispatches a work_done job's payment to the requested method.
func (h *PaymentHandler) PayJobHandler(c *gin.Context) {
	var req struct {
		PaymentMethod string `json:"paymentMethod" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	switch req.PaymentMethod {
	case "cash":
		h.RecordCashPaymentHandler(c)
	case "upi":
		h.CreateUPIPaymentHandler(c)
	default:
		utils.JSONError(c, http.StatusBadRequest, "paymentMethod must be 'cash' or 'upi'")
	}
}

// VerifyUPIPaymentHandler polls the gateway for the order's outcome.
func (h *PaymentHandler) VerifyUPIPaymentHandler(c *gin.Context) {
	var req struct {
		OrderID string `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	order, err := h.Payments.VerifyUPIPayment(c.Request.Context(), req.OrderID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"order": order})
}

// PaymentStatusHandler returns the most recent payment order for a job.
func (h *PaymentHandler) PaymentStatusHandler(c *gin.Context) {
	order, err := h.Payments.GetPaymentStatus(c.Param("jobId"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"order": order})
}

// RecordCashPaymentHandler marks a work_done job as paid in cash.
func (h *PaymentHandler) RecordCashPaymentHandler(c *gin.Context) {
	order, err := h.Payments.RecordCashPayment(c.Param("jobId"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"order": order})
}

// CommissionDuesHandler lists the freelancer's unpaid commission entries.
func (h *PaymentHandler) CommissionDuesHandler(c *gin.Context) {
	dues, err := h.Payments.CommissionDues(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"entries": dues.Entries, "totalDue": dues.TotalDue})
}

// CommissionHistoryHandler lists all of the freelancer's commission entries.
func (h *PaymentHandler) CommissionHistoryHandler(c *gin.Context) {
	entries, err := h.Payments.CommissionHistory(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"entries": entries})
}

// PayCommissionHandler settles a pending commission entry in full.
func (h *PaymentHandler) PayCommissionHandler(c *gin.Context) {
	var req struct {
		Amount float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	entry, err := h.Payments.PayCommission(c.Param("entryId"), currentUserID(c), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"entry": entry})
}
