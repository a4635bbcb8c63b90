package orderRepo

import (
	"sync"
	"time"

	"gighaat/models"
)

// MemoryOrderRepo is an in-memory OrderRepository used as a test double.
type MemoryOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*models.PaymentOrder
}

// NewMemoryOrderRepo creates an empty in-memory order repository.
func NewMemoryOrderRepo() *MemoryOrderRepo {
	return &MemoryOrderRepo{orders: make(map[string]*models.PaymentOrder)}
}

func (r *MemoryOrderRepo) Create(order *models.PaymentOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	cp := *order
	r.orders[order.OrderID] = &cp
	return nil
}

func (r *MemoryOrderRepo) GetByOrderID(orderID string) (*models.PaymentOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *MemoryOrderRepo) GetLatestByJob(jobID string) (*models.PaymentOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *models.PaymentOrder
	for _, o := range r.orders {
		if o.JobID != jobID {
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) {
			latest = o
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r *MemoryOrderRepo) MarkPaid(orderID string) (*models.PaymentOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	if o.Status != models.PaymentOrderCreated {
		return nil, ErrAlreadySettled
	}
	now := time.Now()
	o.Status = models.PaymentOrderPaid
	o.PaidAt = &now
	cp := *o
	return &cp, nil
}

func (r *MemoryOrderRepo) MarkFailed(orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	if o.Status != models.PaymentOrderCreated {
		return ErrAlreadySettled
	}
	o.Status = models.PaymentOrderFailed
	return nil
}

func (r *MemoryOrderRepo) ListCreatedBefore(cutoff time.Time) ([]models.PaymentOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var orders []models.PaymentOrder
	for _, o := range r.orders {
		if o.Status == models.PaymentOrderCreated && o.CreatedAt.Before(cutoff) {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}
