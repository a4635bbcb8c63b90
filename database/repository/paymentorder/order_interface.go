package orderRepo

import (
	"errors"
	"time"

	"gighaat/models"
)

// ErrNotFound is returned when no payment order matches the given ID.
var ErrNotFound = errors.New("payment order not found")

// ErrAlreadySettled is returned by MarkPaid when the order has already left
// the created state. Callers treat this as "someone else settled it".
var ErrAlreadySettled = errors.New("payment order already settled")

// OrderRepository defines data access for UPI payment orders. MarkPaid is
// conditional on the created state, so the side effects of a successful
// verification (job completion, wallet credit) run exactly once no matter how
// many pollers observe gateway success concurrently.
type OrderRepository interface {
	// Create inserts a new payment order.
	Create(order *models.PaymentOrder) error
	// GetByOrderID retrieves an order by its unique ID.
	GetByOrderID(orderID string) (*models.PaymentOrder, error)
	// GetLatestByJob retrieves the most recent order for a job.
	GetLatestByJob(jobID string) (*models.PaymentOrder, error)
	// MarkPaid transitions the order from created to paid exactly once.
	MarkPaid(orderID string) (*models.PaymentOrder, error)
	// MarkFailed transitions the order from created to failed.
	MarkFailed(orderID string) error
	// ListCreatedBefore returns orders still in the created state older than
	// the cutoff, for out-of-band reconciliation.
	ListCreatedBefore(cutoff time.Time) ([]models.PaymentOrder, error)
}
