package withdrawalRepo

import (
	"errors"

	"gighaat/models"
)

// ErrNotFound is returned when no withdrawal request matches the given ID.
var ErrNotFound = errors.New("withdrawal request not found")

// ErrAlreadyReviewed is returned when a request has already left the pending state.
var ErrAlreadyReviewed = errors.New("withdrawal request already reviewed")

// WithdrawalRepository defines data access for withdrawal requests. The review
// transition is conditional on the pending state so two admins cannot both
// approve the same request.
type WithdrawalRepository interface {
	// Create inserts a new withdrawal request.
	Create(req *models.WithdrawalRequest) error
	// GetByID retrieves a request by its unique ID.
	GetByID(id string) (*models.WithdrawalRequest, error)
	// GetByFreelancer retrieves a freelancer's requests, newest first.
	GetByFreelancer(freelancerID string) ([]models.WithdrawalRequest, error)
	// GetByStatus retrieves all requests in the given status ("" means all).
	GetByStatus(status string) ([]models.WithdrawalRequest, error)
	// Review transitions a request from pending to the given terminal status.
	Review(id, status, reviewedBy, rejectionReason string) (*models.WithdrawalRequest, error)
}
