package walletRepo

import (
	"errors"

	"gighaat/models"
)

// ErrInsufficientBalance is returned when a debit would overdraw the wallet.
var ErrInsufficientBalance = errors.New("insufficient wallet balance")

// ErrDuplicateCredit is returned when a job payout has already been credited.
var ErrDuplicateCredit = errors.New("job already credited to wallet")

// WalletRepository defines methods for wallet data access. Credit and Debit
// are atomic against their guards: a job may be credited at most once and a
// debit never overdraws the balance, even under concurrent callers.
type WalletRepository interface {
	// GetOrCreate returns the freelancer's wallet, creating an empty one on
	// first access.
	GetOrCreate(freelancerID string) (*models.Wallet, error)
	// CreditForJob increases the balance and appends a credit transaction,
	// guarded so the same job can only ever be credited once.
	CreditForJob(freelancerID string, txn models.WalletTransaction) error
	// Debit decreases the balance and appends a debit transaction, guarded
	// against overdraft.
	Debit(freelancerID string, txn models.WalletTransaction) error
}
