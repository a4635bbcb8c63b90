package job

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"

	jobRepo "gighaat/database/repository/job"
	userRepo "gighaat/database/repository/user"
	"gighaat/models"
	"gighaat/pkg/apperrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MinJobBudget is the smallest budget a client may post a job with.
const MinJobBudget = 10.0

var pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)

// DefaultJobService is the production JobService. Cache is optional; when set
// it serves the open-jobs listing and is dropped on every mutation that
// changes the open set.
type DefaultJobService struct {
	Repo  jobRepo.JobRepository
	Users userRepo.UserRepository
	Cache ListingCache
}

// PostJob creates a job in the open state for the client.
func (s *DefaultJobService) PostJob(clientID string, input PostJobInput) (*models.Job, error) {
	if err := validateJobInput(input); err != nil {
		return nil, err
	}
	client, err := s.Users.GetByID(clientID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	j := &models.Job{
		ID:               uuid.New().String(),
		ClientID:         client.ID,
		ClientName:       client.Name,
		Title:            input.Title,
		Description:      input.Description,
		Category:         input.Category,
		Address:          input.Address,
		Pincode:          input.Pincode,
		Budget:           input.Budget,
		GenderPreference: input.GenderPreference,
		Status:           models.JobStatusOpen,
		Offers:           []models.Offer{},
	}
	if err := s.Repo.Create(j); err != nil {
		return nil, apperrors.Internal(err)
	}
	s.invalidateListing()
	zap.L().Info("job posted", zap.String("jobID", j.ID), zap.String("clientID", clientID))
	return j, nil
}

// GetJob retrieves a single job.
func (s *DefaultJobService) GetJob(jobID string) (*models.Job, error) {
	j, err := s.Repo.GetByID(jobID)
	if err != nil {
		return nil, mapJobErr(err, "")
	}
	return j, nil
}

// MyJobs returns the client's jobs that are still in progress.
func (s *DefaultJobService) MyJobs(clientID string) ([]models.Job, error) {
	jobs, err := s.Repo.GetByClient(clientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	active := jobs[:0]
	for _, j := range jobs {
		switch j.Status {
		case models.JobStatusOpen, models.JobStatusAssigned, models.JobStatusWorkDone:
			active = append(active, j)
		}
	}
	return active, nil
}

// JobHistory returns the client's finished jobs.
func (s *DefaultJobService) JobHistory(clientID string) ([]models.Job, error) {
	jobs, err := s.Repo.GetByClient(clientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	done := jobs[:0]
	for _, j := range jobs {
		switch j.Status {
		case models.JobStatusCompleted, models.JobStatusFullyCompleted, models.JobStatusCancelled:
			done = append(done, j)
		}
	}
	return done, nil
}

// AvailableJobs returns all open jobs a freelancer may offer on, served from
// the listing cache when it holds a fresh copy.
func (s *DefaultJobService) AvailableJobs() ([]models.Job, error) {
	ctx := context.Background()
	if s.Cache != nil {
		raw, ok, err := s.Cache.Get(ctx, availableJobsCacheKey)
		if err != nil {
			zap.L().Warn("available-jobs cache read failed", zap.Error(err))
		} else if ok {
			var jobs []models.Job
			if err := json.Unmarshal(raw, &jobs); err == nil {
				return jobs, nil
			}
		}
	}

	jobs, err := s.Repo.GetByStatus(models.JobStatusOpen)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if s.Cache != nil {
		if raw, err := json.Marshal(jobs); err == nil {
			if err := s.Cache.Set(ctx, availableJobsCacheKey, raw, availableJobsCacheTTL); err != nil {
				zap.L().Warn("available-jobs cache write failed", zap.Error(err))
			}
		}
	}
	return jobs, nil
}

// invalidateListing drops the cached open-jobs listing after a mutation.
func (s *DefaultJobService) invalidateListing() {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(context.Background(), availableJobsCacheKey); err != nil {
		zap.L().Warn("available-jobs cache invalidation failed", zap.Error(err))
	}
}

// AssignedJobs returns jobs assigned to the freelancer that are still active.
func (s *DefaultJobService) AssignedJobs(freelancerID string) ([]models.Job, error) {
	jobs, err := s.Repo.GetAssignedTo(freelancerID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return jobs, nil
}

// AcceptOffer accepts the freelancer's pending offer on the client's open job.
// The repository applies the accept atomically, so of two concurrent accepts
// only the first succeeds; the loser sees a state conflict.
func (s *DefaultJobService) AcceptOffer(jobID, clientID, freelancerID string) (*models.Job, error) {
	j, err := s.Repo.GetByID(jobID)
	if err != nil {
		return nil, mapJobErr(err, "")
	}
	if j.ClientID != clientID {
		return nil, apperrors.Forbidden("job does not belong to you")
	}
	if j.Status != models.JobStatusOpen {
		return nil, apperrors.StateConflict("job is no longer open")
	}
	offer := j.OfferByFreelancer(freelancerID)
	if offer == nil || offer.Status != models.OfferStatusPending {
		return nil, apperrors.StateConflict("no pending offer from this freelancer")
	}

	assigned := models.AssignedFreelancer{ID: offer.FreelancerID, Name: offer.FreelancerName}
	if freelancer, uerr := s.Users.GetByID(freelancerID); uerr == nil {
		assigned.Phone = freelancer.PhoneNumber
	}

	updated, err := s.Repo.AcceptOffer(jobID, offer.ID, assigned)
	if err != nil {
		return nil, mapJobErr(err, "job is no longer open")
	}
	s.invalidateListing()
	zap.L().Info("offer accepted",
		zap.String("jobID", jobID), zap.String("freelancerID", freelancerID))
	return updated, nil
}

// RejectOffer rejects the freelancer's pending offer. The job stays open.
func (s *DefaultJobService) RejectOffer(jobID, clientID, freelancerID string) error {
	j, err := s.Repo.GetByID(jobID)
	if err != nil {
		return mapJobErr(err, "")
	}
	if j.ClientID != clientID {
		return apperrors.Forbidden("job does not belong to you")
	}
	offer := j.OfferByFreelancer(freelancerID)
	if offer == nil || offer.Status != models.OfferStatusPending {
		return apperrors.StateConflict("no pending offer from this freelancer")
	}
	if err := s.Repo.RejectOffer(jobID, offer.ID); err != nil {
		return mapJobErr(err, "offer is no longer pending")
	}
	return nil
}

// PickupJob assigns an open job directly to the freelancer at the posted
// budget. The repository pins the open status, so of two concurrent pickups
// only the first succeeds.
func (s *DefaultJobService) PickupJob(jobID, freelancerID string) (*models.Job, error) {
	j, err := s.Repo.GetByID(jobID)
	if err != nil {
		return nil, mapJobErr(err, "")
	}
	if j.ClientID == freelancerID {
		return nil, apperrors.Forbidden("you cannot pick up your own job")
	}
	if j.Status != models.JobStatusOpen {
		return nil, apperrors.StateConflict("job is no longer open")
	}
	freelancer, err := s.Users.GetByID(freelancerID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	assigned := models.AssignedFreelancer{
		ID:    freelancer.ID,
		Name:  freelancer.Name,
		Phone: freelancer.PhoneNumber,
	}
	updated, err := s.Repo.Assign(jobID, assigned)
	if err != nil {
		return nil, mapJobErr(err, "job is no longer open")
	}
	s.invalidateListing()
	zap.L().Info("job picked up",
		zap.String("jobID", jobID), zap.String("freelancerID", freelancerID))
	return updated, nil
}

// MarkWorkDone moves an assigned job to work_done.
func (s *DefaultJobService) MarkWorkDone(jobID, freelancerID string) error {
	j, err := s.Repo.GetByID(jobID)
	if err != nil {
		return mapJobErr(err, "")
	}
	if j.AssignedFreelancer == nil || j.AssignedFreelancer.ID != freelancerID {
		return apperrors.Forbidden("job is not assigned to you")
	}
	if err := s.Repo.UpdateStatus(jobID, models.JobStatusAssigned, models.JobStatusWorkDone); err != nil {
		return mapJobErr(err, "job is not in the assigned state")
	}
	return nil
}

// ConfirmWorkDone moves an assigned job to work_done on the client's say-so.
func (s *DefaultJobService) ConfirmWorkDone(jobID, clientID string) error {
	j, err := s.Repo.GetByID(jobID)
	if err != nil {
		return mapJobErr(err, "")
	}
	if j.ClientID != clientID {
		return apperrors.Forbidden("job does not belong to you")
	}
	if err := s.Repo.UpdateStatus(jobID, models.JobStatusAssigned, models.JobStatusWorkDone); err != nil {
		return mapJobErr(err, "job is not in the assigned state")
	}
	return nil
}

// ConfirmFullCompletion moves a completed job to fully_completed.
func (s *DefaultJobService) ConfirmFullCompletion(jobID, freelancerID string) error {
	j, err := s.Repo.GetByID(jobID)
	if err != nil {
		return mapJobErr(err, "")
	}
	if j.AssignedFreelancer == nil || j.AssignedFreelancer.ID != freelancerID {
		return apperrors.Forbidden("job is not assigned to you")
	}
	if err := s.Repo.UpdateStatus(jobID, models.JobStatusCompleted, models.JobStatusFullyCompleted); err != nil {
		return mapJobErr(err, "job has not been paid yet")
	}
	return nil
}

// CancelJob cancels the client's job while it is still open.
func (s *DefaultJobService) CancelJob(jobID, clientID string) error {
	j, err := s.Repo.GetByID(jobID)
	if err != nil {
		return mapJobErr(err, "")
	}
	if j.ClientID != clientID {
		return apperrors.Forbidden("job does not belong to you")
	}
	if err := s.Repo.UpdateStatus(jobID, models.JobStatusOpen, models.JobStatusCancelled); err != nil {
		return mapJobErr(err, "only open jobs can be cancelled")
	}
	s.invalidateListing()
	return nil
}

// UpdateJob edits the client's job while open with no accepted offer.
func (s *DefaultJobService) UpdateJob(jobID, clientID string, input PostJobInput) (*models.Job, error) {
	if err := validateJobInput(input); err != nil {
		return nil, err
	}
	j, err := s.Repo.GetByID(jobID)
	if err != nil {
		return nil, mapJobErr(err, "")
	}
	if j.ClientID != clientID {
		return nil, apperrors.Forbidden("job does not belong to you")
	}
	if !j.Editable() {
		return nil, apperrors.StateConflict("job can only be edited while open with no accepted offer")
	}

	j.Title = input.Title
	j.Description = input.Description
	j.Category = input.Category
	j.Address = input.Address
	j.Pincode = input.Pincode
	j.Budget = input.Budget
	j.GenderPreference = input.GenderPreference
	if err := s.Repo.ReplaceEditable(j); err != nil {
		return nil, mapJobErr(err, "job can only be edited while open with no accepted offer")
	}
	s.invalidateListing()
	return j, nil
}

// DeleteJob removes the client's job while open with no accepted offer.
func (s *DefaultJobService) DeleteJob(jobID, clientID string) error {
	j, err := s.Repo.GetByID(jobID)
	if err != nil {
		return mapJobErr(err, "")
	}
	if j.ClientID != clientID {
		return apperrors.Forbidden("job does not belong to you")
	}
	if err := s.Repo.DeleteEditable(jobID); err != nil {
		return mapJobErr(err, "job can only be deleted while open with no accepted offer")
	}
	s.invalidateListing()
	return nil
}

func validateJobInput(input PostJobInput) error {
	if input.Budget < MinJobBudget {
		return apperrors.Validation("budget must be at least 10")
	}
	if !pincodeRe.MatchString(input.Pincode) {
		return apperrors.Validation("pincode must be exactly 6 digits")
	}
	if input.Title == "" {
		return apperrors.Validation("title is required")
	}
	return nil
}

func mapJobErr(err error, conflictMsg string) error {
	switch {
	case errors.Is(err, jobRepo.ErrNotFound):
		return apperrors.NotFound("job not found")
	case errors.Is(err, jobRepo.ErrConflict):
		if conflictMsg == "" {
			conflictMsg = "job is not in a valid state for this action"
		}
		return apperrors.StateConflict(conflictMsg)
	default:
		return apperrors.Internal(err)
	}
}

func mapUserErr(err error) error {
	if errors.Is(err, userRepo.ErrNotFound) {
		return apperrors.NotFound("user not found")
	}
	return apperrors.Internal(err)
}
