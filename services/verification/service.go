package verification

import (
	"errors"
	"time"

	userRepo "gighaat/database/repository/user"
	verificationRepo "gighaat/database/repository/verification"
	"gighaat/models"
	"gighaat/pkg/apperrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitInput carries the identity details and document URLs a freelancer
// submits for verification. Documents are uploaded separately; only their
// URLs travel here.
type SubmitInput struct {
	FullName     string `json:"fullName" binding:"required"`
	DOB          string `json:"dob" binding:"required"`
	Gender       string `json:"gender" binding:"required"`
	Address      string `json:"address" binding:"required"`
	AadhaarFront string `json:"aadhaarFront" binding:"required"`
	AadhaarBack  string `json:"aadhaarBack" binding:"required"`
	PanCard      string `json:"panCard" binding:"required"`
	ProfilePhoto string `json:"profilePhoto" binding:"required"`
}

// VerificationStatus is what a freelancer sees about their own verification.
type VerificationStatus struct {
	Submitted       bool   `json:"submitted"`
	Status          string `json:"status,omitempty"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// VerificationService owns the freelancer identity verification workflow:
// submit, admin review, and resubmission after rejection.
type VerificationService interface {
	// Submit files the freelancer's documents for review. A rejected
	// verification may be resubmitted; pending and approved ones may not.
	Submit(userID string, input SubmitInput) (*models.FreelancerVerification, error)
	// StatusFor reports the freelancer's own verification state.
	StatusFor(userID string) (*VerificationStatus, error)
	// List returns verifications in the given status for admin review ("" means all).
	List(status string) ([]models.FreelancerVerification, error)
	// Approve marks a pending verification approved and the user verified.
	Approve(id, adminID string) (*models.FreelancerVerification, error)
	// Reject marks a pending verification rejected with a reason.
	Reject(id, adminID, reason string) (*models.FreelancerVerification, error)
}

// DefaultVerificationService is the production VerificationService.
type DefaultVerificationService struct {
	Repo  verificationRepo.VerificationRepository
	Users userRepo.UserRepository
}

// Submit files the freelancer's documents for review. One record exists per
// user: a first submission inserts it, a post-rejection submission rewrites it
// back to pending.
func (s *DefaultVerificationService) Submit(userID string, input SubmitInput) (*models.FreelancerVerification, error) {
	existing, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	now := time.Now()
	if existing == nil {
		v := &models.FreelancerVerification{
			ID:           uuid.New().String(),
			UserID:       userID,
			FullName:     input.FullName,
			DOB:          input.DOB,
			Gender:       input.Gender,
			Address:      input.Address,
			AadhaarFront: input.AadhaarFront,
			AadhaarBack:  input.AadhaarBack,
			PanCard:      input.PanCard,
			ProfilePhoto: input.ProfilePhoto,
			Status:       models.VerificationPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.Repo.Create(v); err != nil {
			return nil, apperrors.Internal(err)
		}
		zap.L().Info("verification submitted", zap.String("userID", userID))
		return v, nil
	}

	switch existing.Status {
	case models.VerificationPending:
		return nil, apperrors.StateConflict("verification is already under review")
	case models.VerificationApproved:
		return nil, apperrors.StateConflict("you are already verified")
	}

	existing.FullName = input.FullName
	existing.DOB = input.DOB
	existing.Gender = input.Gender
	existing.Address = input.Address
	existing.AadhaarFront = input.AadhaarFront
	existing.AadhaarBack = input.AadhaarBack
	existing.PanCard = input.PanCard
	existing.ProfilePhoto = input.ProfilePhoto
	existing.UpdatedAt = now
	if err := s.Repo.Resubmit(existing); err != nil {
		if errors.Is(err, verificationRepo.ErrAlreadyReviewed) {
			return nil, apperrors.StateConflict("verification is already under review")
		}
		return nil, apperrors.Internal(err)
	}
	existing.Status = models.VerificationPending
	existing.RejectionReason = ""
	zap.L().Info("verification resubmitted", zap.String("userID", userID))
	return existing, nil
}

// StatusFor reports the freelancer's own verification state.
func (s *DefaultVerificationService) StatusFor(userID string) (*VerificationStatus, error) {
	v, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if v == nil {
		return &VerificationStatus{Submitted: false}, nil
	}
	return &VerificationStatus{
		Submitted:       true,
		Status:          v.Status,
		RejectionReason: v.RejectionReason,
	}, nil
}

// List returns verifications in the given status for admin review.
func (s *DefaultVerificationService) List(status string) ([]models.FreelancerVerification, error) {
	switch status {
	case "", models.VerificationPending, models.VerificationApproved, models.VerificationRejected:
	default:
		return nil, apperrors.Validation("unknown verification status")
	}
	items, err := s.Repo.GetByStatus(status)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return items, nil
}

// Approve marks a pending verification approved and flips the user's verified
// flag. The review transition serializes concurrent admins.
func (s *DefaultVerificationService) Approve(id, adminID string) (*models.FreelancerVerification, error) {
	approved, err := s.Repo.Review(id, models.VerificationApproved, adminID, "")
	if err != nil {
		return nil, mapVerificationErr(err)
	}
	if err := s.Users.SetVerified(approved.UserID, true); err != nil {
		return nil, apperrors.Internal(err)
	}
	zap.L().Info("verification approved",
		zap.String("verificationID", id), zap.String("userID", approved.UserID))
	return approved, nil
}

// Reject marks a pending verification rejected with a reason.
func (s *DefaultVerificationService) Reject(id, adminID, reason string) (*models.FreelancerVerification, error) {
	if reason == "" {
		return nil, apperrors.Validation("rejection reason is required")
	}
	rejected, err := s.Repo.Review(id, models.VerificationRejected, adminID, reason)
	if err != nil {
		return nil, mapVerificationErr(err)
	}
	zap.L().Info("verification rejected",
		zap.String("verificationID", id), zap.String("userID", rejected.UserID))
	return rejected, nil
}

func mapVerificationErr(err error) error {
	switch {
	case errors.Is(err, verificationRepo.ErrNotFound):
		return apperrors.NotFound("verification not found")
	case errors.Is(err, verificationRepo.ErrAlreadyReviewed):
		return apperrors.StateConflict("verification already reviewed")
	default:
		return apperrors.Internal(err)
	}
}
