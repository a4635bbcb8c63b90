package walletRepo

import (
	"sync"
	"time"

	"gighaat/models"
)

// MemoryWalletRepo is an in-memory WalletRepository used as a test double.
type MemoryWalletRepo struct {
	mu      sync.Mutex
	wallets map[string]*models.Wallet
}

// NewMemoryWalletRepo creates an empty in-memory wallet repository.
func NewMemoryWalletRepo() *MemoryWalletRepo {
	return &MemoryWalletRepo{wallets: make(map[string]*models.Wallet)}
}

func (r *MemoryWalletRepo) GetOrCreate(freelancerID string) (*models.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w := r.getOrCreateLocked(freelancerID)
	cp := cloneWallet(w)
	return &cp, nil
}

func (r *MemoryWalletRepo) CreditForJob(freelancerID string, txn models.WalletTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.getOrCreateLocked(freelancerID)
	for _, t := range w.Transactions {
		if t.JobID != "" && t.JobID == txn.JobID {
			return ErrDuplicateCredit
		}
	}
	w.Balance += txn.Amount
	w.Transactions = append(w.Transactions, txn)
	w.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryWalletRepo) Debit(freelancerID string, txn models.WalletTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.getOrCreateLocked(freelancerID)
	if w.Balance < txn.Amount {
		return ErrInsufficientBalance
	}
	w.Balance -= txn.Amount
	w.Transactions = append(w.Transactions, txn)
	w.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryWalletRepo) getOrCreateLocked(freelancerID string) *models.Wallet {
	w, ok := r.wallets[freelancerID]
	if !ok {
		w = &models.Wallet{FreelancerID: freelancerID, UpdatedAt: time.Now()}
		r.wallets[freelancerID] = w
	}
	return w
}

func cloneWallet(w *models.Wallet) models.Wallet {
	cp := *w
	cp.Transactions = append([]models.WalletTransaction(nil), w.Transactions...)
	return cp
}
