package job

import "gighaat/models"

// PostJobInput carries the client-supplied fields of a new or updated job.
type PostJobInput struct {
	Title            string  `json:"title" binding:"required"`
	Description      string  `json:"description"`
	Category         string  `json:"category" binding:"required"`
	Address          string  `json:"address" binding:"required"`
	Pincode          string  `json:"pincode" binding:"required"`
	Budget           float64 `json:"budget" binding:"required"`
	GenderPreference string  `json:"genderPreference"`
}

// JobService owns the job lifecycle: open -> assigned -> work_done ->
// completed -> fully_completed, with cancellation from open. Every transition
// validates its precondition and fails without mutating state otherwise.
type JobService interface {
	// PostJob creates a job in the open state for the client.
	PostJob(clientID string, input PostJobInput) (*models.Job, error)
	// GetJob retrieves a single job.
	GetJob(jobID string) (*models.Job, error)
	// MyJobs returns the client's jobs that are still in progress.
	MyJobs(clientID string) ([]models.Job, error)
	// JobHistory returns the client's finished jobs (completed, fully
	// completed, or cancelled).
	JobHistory(clientID string) ([]models.Job, error)
	// AvailableJobs returns all open jobs a freelancer may offer on.
	AvailableJobs() ([]models.Job, error)
	// AssignedJobs returns jobs assigned to the freelancer that are still active.
	AssignedJobs(freelancerID string) ([]models.Job, error)
	// AcceptOffer accepts the freelancer's pending offer on the client's open
	// job, assigning the job to that freelancer. Sibling offers stay pending.
	AcceptOffer(jobID, clientID, freelancerID string) (*models.Job, error)
	// RejectOffer rejects the freelancer's pending offer. The job stays open.
	RejectOffer(jobID, clientID, freelancerID string) error
	// PickupJob assigns an open job directly to the freelancer at the posted
	// budget, skipping the offer round.
	PickupJob(jobID, freelancerID string) (*models.Job, error)
	// MarkWorkDone moves an assigned job to work_done. Assigned freelancer only.
	MarkWorkDone(jobID, freelancerID string) error
	// ConfirmWorkDone moves an assigned job to work_done on the owning
	// client's say-so, so either party can report the work finished.
	ConfirmWorkDone(jobID, clientID string) error
	// ConfirmFullCompletion moves a completed job to fully_completed once the
	// assigned freelancer confirms receipt of payment.
	ConfirmFullCompletion(jobID, freelancerID string) error
	// CancelJob cancels the client's job while it is still open.
	CancelJob(jobID, clientID string) error
	// UpdateJob edits the client's job while open with no accepted offer.
	UpdateJob(jobID, clientID string, input PostJobInput) (*models.Job, error)
	// DeleteJob removes the client's job while open with no accepted offer.
	DeleteJob(jobID, clientID string) error
}
