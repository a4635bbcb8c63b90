package handlers

import (
	"net/http"

	"gighaat/services/job"
	"gighaat/services/offer"
	"gighaat/utils"

	"github.com/gin-gonic/gin"
)

// FreelancerHandler exposes the freelancer side of the job lifecycle: browsing
// jobs, making offers, and reporting work done.
type FreelancerHandler struct {
	Jobs   job.JobService
	Offers offer.OfferService
}

// NewFreelancerHandler creates a new FreelancerHandler instance.
func NewFreelancerHandler(jobs job.JobService, offers offer.OfferService) *FreelancerHandler {
	return &FreelancerHandler{Jobs: jobs, Offers: offers}
}

// AvailableJobsHandler lists open jobs a freelancer may offer on.
func (h *FreelancerHandler) AvailableJobsHandler(c *gin.Context) {
	jobs, err := h.Jobs.AvailableJobs()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"jobs": jobs})
}

// AssignedJobsHandler lists jobs assigned to the freelancer.
func (h *FreelancerHandler) AssignedJobsHandler(c *gin.Context) {
	jobs, err := h.Jobs.AssignedJobs(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"jobs": jobs})
}

// PickupJobHandler assigns an open job directly to the freelancer.
func (h *FreelancerHandler) PickupJobHandler(c *gin.Context) {
	j, err := h.Jobs.PickupJob(c.Param("jobId"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"job": j})
}

// MakeOfferHandler places a pending offer on an open job.
func (h *FreelancerHandler) MakeOfferHandler(c *gin.Context) {
	var req struct {
		Amount  float64 `json:"amount" binding:"required"`
		Message string  `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	o, err := h.Offers.MakeOffer(c.Request.Context(), c.Param("jobId"), currentUserID(c), req.Amount, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"offer": o})
}

// CheckCooldownHandler reports whether the freelancer may offer on the job now.
func (h *FreelancerHandler) CheckCooldownHandler(c *gin.Context) {
	status, err := h.Offers.CheckCooldown(c.Request.Context(), c.Param("jobId"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"canMakeOffer": status.CanMakeOffer,
		"remainingMs":  status.RemainingMs,
	})
}

// MarkWorkDoneHandler moves an assigned job to work_done.
func (h *FreelancerHandler) MarkWorkDoneHandler(c *gin.Context) {
	if err := h.Jobs.MarkWorkDone(c.Param("jobId"), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "work marked as done"})
}

// ConfirmCompletionHandler moves a paid job to fully_completed.
func (h *FreelancerHandler) ConfirmCompletionHandler(c *gin.Context) {
	if err := h.Jobs.ConfirmFullCompletion(c.Param("jobId"), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "job fully completed"})
}
