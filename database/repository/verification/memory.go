package verificationRepo

import (
	"sort"
	"sync"
	"time"

	"gighaat/models"
)

// MemoryVerificationRepo is an in-memory VerificationRepository used as a test double.
type MemoryVerificationRepo struct {
	mu     sync.Mutex
	byID   map[string]*models.FreelancerVerification
	byUser map[string]string
}

// NewMemoryVerificationRepo creates an empty in-memory verification repository.
func NewMemoryVerificationRepo() *MemoryVerificationRepo {
	return &MemoryVerificationRepo{
		byID:   make(map[string]*models.FreelancerVerification),
		byUser: make(map[string]string),
	}
}

func (r *MemoryVerificationRepo) Create(v *models.FreelancerVerification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now
	cp := *v
	r.byID[v.ID] = &cp
	r.byUser[v.UserID] = v.ID
	return nil
}

func (r *MemoryVerificationRepo) GetByID(id string) (*models.FreelancerVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *MemoryVerificationRepo) GetByUserID(userID string) (*models.FreelancerVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byUser[userID]
	if !ok {
		return nil, nil
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *MemoryVerificationRepo) GetByStatus(status string) ([]models.FreelancerVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var verifications []models.FreelancerVerification
	for _, v := range r.byID {
		if status == "" || v.Status == status {
			verifications = append(verifications, *v)
		}
	}
	sort.Slice(verifications, func(i, k int) bool {
		return verifications[i].CreatedAt.After(verifications[k].CreatedAt)
	})
	return verifications, nil
}

func (r *MemoryVerificationRepo) Review(id, status, reviewedBy, rejectionReason string) (*models.FreelancerVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if v.Status != models.VerificationPending {
		return nil, ErrAlreadyReviewed
	}
	now := time.Now()
	v.Status = status
	v.ReviewedAt = &now
	v.ReviewedBy = reviewedBy
	v.RejectionReason = rejectionReason
	v.UpdatedAt = now
	cp := *v
	return &cp, nil
}

func (r *MemoryVerificationRepo) Resubmit(v *models.FreelancerVerification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byUser[v.UserID]
	if !ok {
		return ErrNotFound
	}
	existing := r.byID[id]
	if existing.Status != models.VerificationRejected {
		return ErrAlreadyReviewed
	}
	existing.FullName = v.FullName
	existing.DOB = v.DOB
	existing.Gender = v.Gender
	existing.Address = v.Address
	existing.AadhaarFront = v.AadhaarFront
	existing.AadhaarBack = v.AadhaarBack
	existing.PanCard = v.PanCard
	existing.ProfilePhoto = v.ProfilePhoto
	existing.Status = models.VerificationPending
	existing.RejectionReason = ""
	existing.ReviewedAt = nil
	existing.ReviewedBy = ""
	existing.UpdatedAt = time.Now()
	return nil
}
