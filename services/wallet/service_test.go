package wallet

import (
	"testing"
	"time"

	walletRepo "gighaat/database/repository/wallet"
	withdrawalRepo "gighaat/database/repository/withdrawal"
	"gighaat/models"
	"gighaat/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWalletFixture(t *testing.T, balance float64) (*DefaultWalletService, *walletRepo.MemoryWalletRepo) {
	t.Helper()

	wallets := walletRepo.NewMemoryWalletRepo()
	if balance > 0 {
		require.NoError(t, wallets.CreditForJob("freelancer-1", models.WalletTransaction{
			ID:        uuid.New().String(),
			Type:      models.WalletTxnCredit,
			Amount:    balance,
			JobID:     "job-seed",
			Timestamp: time.Now(),
		}))
	}
	return &DefaultWalletService{
		Wallets:     wallets,
		Withdrawals: withdrawalRepo.NewMemoryWithdrawalRepo(),
	}, wallets
}

func TestGetWalletCreatesEmptyWallet(t *testing.T) {
	svc, _ := newWalletFixture(t, 0)

	w, err := svc.GetWallet("freelancer-9")
	require.NoError(t, err)
	assert.Equal(t, "freelancer-9", w.FreelancerID)
	assert.Zero(t, w.Balance)
	assert.Empty(t, w.Transactions)
}

func TestRequestWithdrawalMinimumAmount(t *testing.T) {
	svc, _ := newWalletFixture(t, 500)

	_, err := svc.RequestWithdrawal("freelancer-1", 99.99, "ravi@upi")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	req, err := svc.RequestWithdrawal("freelancer-1", 100, "ravi@upi")
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalPending, req.Status)
}

func TestRequestWithdrawalChecksBalanceAndUPI(t *testing.T) {
	svc, _ := newWalletFixture(t, 150)

	_, err := svc.RequestWithdrawal("freelancer-1", 200, "ravi@upi")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	_, err = svc.RequestWithdrawal("freelancer-1", 100, "")
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestRequestDoesNotMoveMoney(t *testing.T) {
	svc, wallets := newWalletFixture(t, 500)

	_, err := svc.RequestWithdrawal("freelancer-1", 200, "ravi@upi")
	require.NoError(t, err)

	w, _ := wallets.GetOrCreate("freelancer-1")
	assert.InDelta(t, 500.0, w.Balance, 1e-9)
}

func TestApproveWithdrawalDebitsWallet(t *testing.T) {
	svc, wallets := newWalletFixture(t, 500)
	req, err := svc.RequestWithdrawal("freelancer-1", 200, "ravi@upi")
	require.NoError(t, err)

	approved, err := svc.ApproveWithdrawal(req.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalApproved, approved.Status)
	assert.Equal(t, "admin-1", approved.ReviewedBy)
	require.NotNil(t, approved.ReviewedAt)

	w, _ := wallets.GetOrCreate("freelancer-1")
	assert.InDelta(t, 300.0, w.Balance, 1e-9)
	require.Len(t, w.Transactions, 2)
	assert.Equal(t, models.WalletTxnDebit, w.Transactions[1].Type)

	// A second review of the same request is a conflict, and no second debit.
	_, err = svc.ApproveWithdrawal(req.ID, "admin-2")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)

	w, _ = wallets.GetOrCreate("freelancer-1")
	assert.InDelta(t, 300.0, w.Balance, 1e-9)
}

func TestApproveWithdrawalRequiresCoveringBalance(t *testing.T) {
	svc, wallets := newWalletFixture(t, 500)
	req, err := svc.RequestWithdrawal("freelancer-1", 400, "ravi@upi")
	require.NoError(t, err)

	// Balance drops after the request was filed.
	require.NoError(t, wallets.Debit("freelancer-1", models.WalletTransaction{
		ID: uuid.New().String(), Type: models.WalletTxnDebit, Amount: 300, Timestamp: time.Now(),
	}))

	_, err = svc.ApproveWithdrawal(req.ID, "admin-1")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)
}

func TestRejectWithdrawal(t *testing.T) {
	svc, wallets := newWalletFixture(t, 500)
	req, err := svc.RequestWithdrawal("freelancer-1", 200, "ravi@upi")
	require.NoError(t, err)

	_, err = svc.RejectWithdrawal(req.ID, "admin-1", "")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	rejected, err := svc.RejectWithdrawal(req.ID, "admin-1", "UPI ID could not be validated")
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalRejected, rejected.Status)
	assert.Equal(t, "UPI ID could not be validated", rejected.RejectionReason)

	w, _ := wallets.GetOrCreate("freelancer-1")
	assert.InDelta(t, 500.0, w.Balance, 1e-9)
}

func TestListWithdrawalsByStatus(t *testing.T) {
	svc, _ := newWalletFixture(t, 1000)
	first, err := svc.RequestWithdrawal("freelancer-1", 100, "ravi@upi")
	require.NoError(t, err)
	_, err = svc.RequestWithdrawal("freelancer-1", 150, "ravi@upi")
	require.NoError(t, err)
	_, err = svc.ApproveWithdrawal(first.ID, "admin-1")
	require.NoError(t, err)

	pending, err := svc.ListWithdrawals(models.WithdrawalPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := svc.ListWithdrawals("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.ListWithdrawals("bogus")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}
