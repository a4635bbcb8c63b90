package jobRepo

import (
	"errors"

	"gighaat/models"
)

// ErrNotFound is returned when no job matches the given ID.
var ErrNotFound = errors.New("job not found")

// ErrConflict is returned when a conditional update matched a job by ID but
// the job was no longer in the required state. The caller lost the race or is
// attempting an invalid transition.
var ErrConflict = errors.New("job state conflict")

// JobRepository defines methods for job data access. Conditional methods are
// atomic: the state check and the mutation happen in a single operation so
// concurrent callers are serialized first-committer-wins.
type JobRepository interface {
	// Create inserts a new job record.
	Create(job *models.Job) error
	// GetByID retrieves a job by its unique ID.
	GetByID(id string) (*models.Job, error)
	// GetByClient retrieves all jobs posted by a client, newest first.
	GetByClient(clientID string) ([]models.Job, error)
	// GetByStatus retrieves all jobs currently in the given status.
	GetByStatus(status string) ([]models.Job, error)
	// GetAssignedTo retrieves jobs whose accepted offer belongs to the freelancer.
	GetAssignedTo(freelancerID string) ([]models.Job, error)
	// AddOffer appends an offer to a job that is still open.
	AddOffer(jobID string, offer models.Offer) error
	// AcceptOffer marks the identified pending offer accepted, moves the job
	// to assigned, and records the assigned freelancer, all in one step.
	// Fails with ErrConflict if the job is no longer open or the offer is not
	// pending.
	AcceptOffer(jobID, offerID string, assigned models.AssignedFreelancer) (*models.Job, error)
	// Assign moves an open job straight to assigned with the given freelancer,
	// bypassing the offer round. Fails with ErrConflict if the job is no
	// longer open.
	Assign(jobID string, assigned models.AssignedFreelancer) (*models.Job, error)
	// RejectOffer marks the identified pending offer rejected without
	// touching the job status.
	RejectOffer(jobID, offerID string) error
	// UpdateStatus transitions the job from one status to another. Fails with
	// ErrConflict if the job is not in the expected status.
	UpdateStatus(jobID, from, to string) error
	// ReplaceEditable replaces the job document while it is still open with
	// no accepted offer.
	ReplaceEditable(job *models.Job) error
	// DeleteEditable removes the job while it is still open with no accepted
	// offer.
	DeleteEditable(jobID string) error
}
