package verificationRepo

import (
	"errors"

	"gighaat/models"
)

// ErrNotFound is returned when no verification matches the given ID or user.
var ErrNotFound = errors.New("verification not found")

// ErrAlreadyReviewed is returned when the verification has already left the
// pending state.
var ErrAlreadyReviewed = errors.New("verification already reviewed")

// VerificationRepository defines data access for freelancer identity
// verifications. One record exists per user.
type VerificationRepository interface {
	// Create inserts a new verification record.
	Create(v *models.FreelancerVerification) error
	// GetByID retrieves a verification by its unique ID.
	GetByID(id string) (*models.FreelancerVerification, error)
	// GetByUserID retrieves the verification belonging to a user, or nil if
	// the user has never submitted one.
	GetByUserID(userID string) (*models.FreelancerVerification, error)
	// GetByStatus retrieves all verifications in the given status ("" means all).
	GetByStatus(status string) ([]models.FreelancerVerification, error)
	// Review transitions a verification from pending to approved or rejected.
	Review(id, status, reviewedBy, rejectionReason string) (*models.FreelancerVerification, error)
	// Resubmit replaces a rejected verification's details and returns it to
	// pending. Fails with ErrAlreadyReviewed unless the record is rejected.
	Resubmit(v *models.FreelancerVerification) error
}
