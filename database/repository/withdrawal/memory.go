package withdrawalRepo

import (
	"sort"
	"sync"
	"time"

	"gighaat/models"
)

// MemoryWithdrawalRepo is an in-memory WithdrawalRepository used as a test double.
type MemoryWithdrawalRepo struct {
	mu   sync.Mutex
	reqs map[string]*models.WithdrawalRequest
}

// NewMemoryWithdrawalRepo creates an empty in-memory withdrawal repository.
func NewMemoryWithdrawalRepo() *MemoryWithdrawalRepo {
	return &MemoryWithdrawalRepo{reqs: make(map[string]*models.WithdrawalRequest)}
}

func (r *MemoryWithdrawalRepo) Create(req *models.WithdrawalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req.RequestedAt = time.Now()
	cp := *req
	r.reqs[req.ID] = &cp
	return nil
}

func (r *MemoryWithdrawalRepo) GetByID(id string) (*models.WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.reqs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *MemoryWithdrawalRepo) GetByFreelancer(freelancerID string) ([]models.WithdrawalRequest, error) {
	return r.filter(func(w *models.WithdrawalRequest) bool { return w.FreelancerID == freelancerID })
}

func (r *MemoryWithdrawalRepo) GetByStatus(status string) ([]models.WithdrawalRequest, error) {
	return r.filter(func(w *models.WithdrawalRequest) bool { return status == "" || w.Status == status })
}

func (r *MemoryWithdrawalRepo) Review(id, status, reviewedBy, rejectionReason string) (*models.WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.reqs[id]
	if !ok {
		return nil, ErrNotFound
	}
	if w.Status != models.WithdrawalPending {
		return nil, ErrAlreadyReviewed
	}
	now := time.Now()
	w.Status = status
	w.ReviewedAt = &now
	w.ReviewedBy = reviewedBy
	w.RejectionReason = rejectionReason
	cp := *w
	return &cp, nil
}

func (r *MemoryWithdrawalRepo) filter(keep func(*models.WithdrawalRequest) bool) ([]models.WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var reqs []models.WithdrawalRequest
	for _, w := range r.reqs {
		if keep(w) {
			reqs = append(reqs, *w)
		}
	}
	sort.Slice(reqs, func(i, k int) bool { return reqs[i].RequestedAt.After(reqs[k].RequestedAt) })
	return reqs, nil
}
