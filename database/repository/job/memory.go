package jobRepo

import (
	"sort"
	"sync"
	"time"

	"gighaat/models"
)

// MemoryJobRepo is an in-memory JobRepository used as a test double. It mirrors
// the conditional semantics of the Mongo implementation under a single mutex.
type MemoryJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*models.Job
}

// NewMemoryJobRepo creates an empty in-memory job repository.
func NewMemoryJobRepo() *MemoryJobRepo {
	return &MemoryJobRepo{jobs: make(map[string]*models.Job)}
}

func (r *MemoryJobRepo) Create(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *MemoryJobRepo) GetByID(id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := cloneJob(job)
	return &cp, nil
}

func (r *MemoryJobRepo) GetByClient(clientID string) ([]models.Job, error) {
	return r.filter(func(j *models.Job) bool { return j.ClientID == clientID })
}

func (r *MemoryJobRepo) GetByStatus(status string) ([]models.Job, error) {
	return r.filter(func(j *models.Job) bool { return j.Status == status })
}

func (r *MemoryJobRepo) GetAssignedTo(freelancerID string) ([]models.Job, error) {
	return r.filter(func(j *models.Job) bool {
		return j.AssignedFreelancer != nil && j.AssignedFreelancer.ID == freelancerID
	})
}

func (r *MemoryJobRepo) AddOffer(jobID string, offer models.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return ErrNotFound
	}
	if job.Status != models.JobStatusOpen {
		return ErrConflict
	}
	job.Offers = append(job.Offers, offer)
	job.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryJobRepo) AcceptOffer(jobID, offerID string, assigned models.AssignedFreelancer) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return nil, ErrNotFound
	}
	if job.Status != models.JobStatusOpen {
		return nil, ErrConflict
	}
	for i := range job.Offers {
		if job.Offers[i].ID == offerID && job.Offers[i].Status == models.OfferStatusPending {
			job.Offers[i].Status = models.OfferStatusAccepted
			job.Status = models.JobStatusAssigned
			a := assigned
			job.AssignedFreelancer = &a
			job.UpdatedAt = time.Now()
			cp := cloneJob(job)
			return &cp, nil
		}
	}
	return nil, ErrConflict
}

func (r *MemoryJobRepo) Assign(jobID string, assigned models.AssignedFreelancer) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return nil, ErrNotFound
	}
	if job.Status != models.JobStatusOpen {
		return nil, ErrConflict
	}
	job.Status = models.JobStatusAssigned
	a := assigned
	job.AssignedFreelancer = &a
	job.UpdatedAt = time.Now()
	cp := cloneJob(job)
	return &cp, nil
}

func (r *MemoryJobRepo) RejectOffer(jobID, offerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return ErrNotFound
	}
	for i := range job.Offers {
		if job.Offers[i].ID == offerID && job.Offers[i].Status == models.OfferStatusPending {
			job.Offers[i].Status = models.OfferStatusRejected
			job.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrConflict
}

func (r *MemoryJobRepo) UpdateStatus(jobID, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return ErrNotFound
	}
	if job.Status != from {
		return ErrConflict
	}
	job.Status = to
	job.UpdatedAt = time.Now()
	if to == models.JobStatusCompleted {
		now := time.Now()
		job.CompletedAt = &now
	}
	return nil
}

func (r *MemoryJobRepo) ReplaceEditable(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.jobs[job.ID]
	if !ok {
		return ErrNotFound
	}
	if !existing.Editable() {
		return ErrConflict
	}
	job.UpdatedAt = time.Now()
	cp := cloneJob(job)
	r.jobs[job.ID] = &cp
	return nil
}

func (r *MemoryJobRepo) DeleteEditable(jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.jobs[jobID]
	if !ok {
		return ErrNotFound
	}
	if !existing.Editable() {
		return ErrConflict
	}
	delete(r.jobs, jobID)
	return nil
}

func (r *MemoryJobRepo) filter(keep func(*models.Job) bool) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var jobs []models.Job
	for _, j := range r.jobs {
		if keep(j) {
			jobs = append(jobs, cloneJob(j))
		}
	}
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].CreatedAt.After(jobs[k].CreatedAt) })
	return jobs, nil
}

func cloneJob(j *models.Job) models.Job {
	cp := *j
	cp.Offers = append([]models.Offer(nil), j.Offers...)
	if j.AssignedFreelancer != nil {
		a := *j.AssignedFreelancer
		cp.AssignedFreelancer = &a
	}
	return cp
}
