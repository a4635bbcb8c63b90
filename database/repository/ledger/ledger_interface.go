package ledgerRepo

import (
	"errors"

	"gighaat/models"
)

// ErrNotFound is returned when no commission entry matches the given ID.
var ErrNotFound = errors.New("commission entry not found")

// ErrAlreadyPaid is returned when marking an entry paid that is not pending.
var ErrAlreadyPaid = errors.New("commission entry already paid")

// LedgerRepository defines data access for commission ledger entries.
type LedgerRepository interface {
	// Create inserts a new commission entry.
	Create(entry *models.CommissionEntry) error
	// GetByID retrieves an entry by its unique ID.
	GetByID(id string) (*models.CommissionEntry, error)
	// GetByFreelancer retrieves a freelancer's entries, optionally filtered
	// by status ("" means all), newest first.
	GetByFreelancer(freelancerID, status string) ([]models.CommissionEntry, error)
	// MarkPaid transitions an entry from pending to paid exactly once.
	MarkPaid(id string) (*models.CommissionEntry, error)
}
