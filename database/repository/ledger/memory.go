package ledgerRepo

import (
	"sort"
	"sync"
	"time"

	"gighaat/models"
)

// MemoryLedgerRepo is an in-memory LedgerRepository used as a test double.
type MemoryLedgerRepo struct {
	mu      sync.Mutex
	entries map[string]*models.CommissionEntry
}

// NewMemoryLedgerRepo creates an empty in-memory ledger repository.
func NewMemoryLedgerRepo() *MemoryLedgerRepo {
	return &MemoryLedgerRepo{entries: make(map[string]*models.CommissionEntry)}
}

func (r *MemoryLedgerRepo) Create(entry *models.CommissionEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.CreatedAt = time.Now()
	cp := *entry
	r.entries[entry.ID] = &cp
	return nil
}

func (r *MemoryLedgerRepo) GetByID(id string) (*models.CommissionEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *MemoryLedgerRepo) GetByFreelancer(freelancerID, status string) ([]models.CommissionEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var entries []models.CommissionEntry
	for _, e := range r.entries {
		if e.FreelancerID != freelancerID {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, k int) bool { return entries[i].CreatedAt.After(entries[k].CreatedAt) })
	return entries, nil
}

func (r *MemoryLedgerRepo) MarkPaid(id string) (*models.CommissionEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if e.Status != models.CommissionPending {
		return nil, ErrAlreadyPaid
	}
	now := time.Now()
	e.Status = models.CommissionPaid
	e.PaidAt = &now
	cp := *e
	return &cp, nil
}
