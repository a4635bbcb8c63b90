package handlers

import (
	"net/http"

	"gighaat/services/job"
	"gighaat/utils"

	"github.com/gin-gonic/gin"
)

// JobHandler exposes the client side of the job lifecycle.
type JobHandler struct {
	Jobs job.JobService
}

// NewJobHandler creates a new JobHandler instance.
func NewJobHandler(jobs job.JobService) *JobHandler {
	return &JobHandler{Jobs: jobs}
}

// PostJobHandler creates a new open job.
func (h *JobHandler) PostJobHandler(c *gin.Context) {
	var input job.PostJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	j, err := h.Jobs.PostJob(currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"job": j})
}

// MyJobsHandler lists the client's jobs still in progress.
func (h *JobHandler) MyJobsHandler(c *gin.Context) {
	jobs, err := h.Jobs.MyJobs(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"jobs": jobs})
}

// JobHistoryHandler lists the client's finished jobs.
func (h *JobHandler) JobHistoryHandler(c *gin.Context) {
	jobs, err := h.Jobs.JobHistory(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"jobs": jobs})
}

// GetJobHandler returns a single job with its offers.
func (h *JobHandler) GetJobHandler(c *gin.Context) {
	j, err := h.Jobs.GetJob(c.Param("jobId"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"job": j})
}

// UpdateJobHandler edits an open job with no accepted offer.
func (h *JobHandler) UpdateJobHandler(c *gin.Context) {
	var input job.PostJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	j, err := h.Jobs.UpdateJob(c.Param("jobId"), currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"job": j})
}

// DeleteJobHandler removes an open job with no accepted offer.
func (h *JobHandler) DeleteJobHandler(c *gin.Context) {
	if err := h.Jobs.DeleteJob(c.Param("jobId"), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "job deleted"})
}

// CancelJobHandler cancels an open job.
func (h *JobHandler) CancelJobHandler(c *gin.Context) {
	if err := h.Jobs.CancelJob(c.Param("jobId"), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "job cancelled"})
}

// CompleteJobHandler lets the client report an assigned job's work as done.
func (h *JobHandler) CompleteJobHandler(c *gin.Context) {
	if err := h.Jobs.ConfirmWorkDone(c.Param("jobId"), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "work marked as done"})
}

type offerActionRequest struct {
	FreelancerID string `json:"freelancerId" binding:"required"`
}

// AcceptOfferHandler accepts a freelancer's pending offer.
func (h *JobHandler) AcceptOfferHandler(c *gin.Context) {
	var req offerActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	j, err := h.Jobs.AcceptOffer(c.Param("jobId"), currentUserID(c), req.FreelancerID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"job": j})
}

// RejectOfferHandler rejects a freelancer's pending offer.
func (h *JobHandler) RejectOfferHandler(c *gin.Context) {
	var req offerActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if err := h.Jobs.RejectOffer(c.Param("jobId"), currentUserID(c), req.FreelancerID); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "offer rejected"})
}
