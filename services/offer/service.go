package offer

import (
	"context"
	"errors"
	"time"

	jobRepo "gighaat/database/repository/job"
	userRepo "gighaat/database/repository/user"
	"gighaat/models"
	"gighaat/pkg/apperrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CooldownStatus is returned to the freelancer so the client UI can run its
// own countdown.
type CooldownStatus struct {
	CanMakeOffer bool  `json:"canMakeOffer"`
	RemainingMs  int64 `json:"remainingMs"`
}

// OfferService stores offers against open jobs and enforces the per-(job,
// freelancer) cooldown.
type OfferService interface {
	// MakeOffer places a pending offer on an open job. A freelancer may hold
	// at most one pending offer per job and must wait out the cooldown
	// between submissions.
	MakeOffer(ctx context.Context, jobID, freelancerID string, amount float64, message string) (*models.Offer, error)
	// CheckCooldown reports whether the freelancer may offer on the job now.
	CheckCooldown(ctx context.Context, jobID, freelancerID string) (CooldownStatus, error)
}

// DefaultOfferService is the production OfferService.
type DefaultOfferService struct {
	Jobs      jobRepo.JobRepository
	Users     userRepo.UserRepository
	Cooldowns CooldownStore
}

// MakeOffer places a pending offer on an open job. The cooldown acquire is the
// atomic gate: of two concurrent submissions from the same freelancer only one
// passes. If storing the offer then fails, the cooldown is released so the
// freelancer is not penalized for a submission that never landed.
func (s *DefaultOfferService) MakeOffer(ctx context.Context, jobID, freelancerID string, amount float64, message string) (*models.Offer, error) {
	if amount <= 0 {
		return nil, apperrors.Validation("offer amount must be positive")
	}

	j, err := s.Jobs.GetByID(jobID)
	if err != nil {
		if errors.Is(err, jobRepo.ErrNotFound) {
			return nil, apperrors.NotFound("job not found")
		}
		return nil, apperrors.Internal(err)
	}
	if j.Status != models.JobStatusOpen {
		return nil, apperrors.StateConflict("job is no longer open for offers")
	}
	if j.ClientID == freelancerID {
		return nil, apperrors.Forbidden("cannot offer on your own job")
	}
	if existing := j.OfferByFreelancer(freelancerID); existing != nil && existing.Status == models.OfferStatusPending {
		return nil, apperrors.StateConflict("you already have a pending offer on this job")
	}

	freelancer, err := s.Users.GetByID(freelancerID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, apperrors.NotFound("freelancer not found")
		}
		return nil, apperrors.Internal(err)
	}

	acquired, remaining, err := s.Cooldowns.Acquire(ctx, jobID, freelancerID, OfferCooldown)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !acquired {
		return nil, apperrors.Cooldown("please wait before offering on this job again", remaining.Milliseconds())
	}

	o := models.Offer{
		ID:             uuid.New().String(),
		FreelancerID:   freelancer.ID,
		FreelancerName: freelancer.Name,
		Amount:         amount,
		Message:        message,
		Status:         models.OfferStatusPending,
		CreatedAt:      time.Now(),
	}
	if err := s.Jobs.AddOffer(jobID, o); err != nil {
		if relErr := s.Cooldowns.Release(ctx, jobID, freelancerID); relErr != nil {
			zap.L().Warn("failed to release cooldown after offer store failure",
				zap.String("jobID", jobID), zap.Error(relErr))
		}
		if errors.Is(err, jobRepo.ErrConflict) {
			return nil, apperrors.StateConflict("job is no longer open for offers")
		}
		if errors.Is(err, jobRepo.ErrNotFound) {
			return nil, apperrors.NotFound("job not found")
		}
		return nil, apperrors.Internal(err)
	}

	zap.L().Info("offer placed",
		zap.String("jobID", jobID), zap.String("freelancerID", freelancerID), zap.Float64("amount", amount))
	return &o, nil
}

// CheckCooldown reports whether the freelancer may offer on the job now.
func (s *DefaultOfferService) CheckCooldown(ctx context.Context, jobID, freelancerID string) (CooldownStatus, error) {
	remaining, err := s.Cooldowns.Remaining(ctx, jobID, freelancerID)
	if err != nil {
		return CooldownStatus{}, apperrors.Internal(err)
	}
	return CooldownStatus{
		CanMakeOffer: remaining <= 0,
		RemainingMs:  remaining.Milliseconds(),
	}, nil
}
