package wallet

import (
	"errors"
	"fmt"
	"time"

	walletRepo "gighaat/database/repository/wallet"
	withdrawalRepo "gighaat/database/repository/withdrawal"
	"gighaat/models"
	"gighaat/pkg/apperrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WalletService exposes a freelancer's wallet and the withdrawal workflow.
// Requesting a withdrawal does not move money; the balance is debited when an
// admin approves the request.
type WalletService interface {
	// GetWallet returns the freelancer's wallet, creating an empty one on
	// first access.
	GetWallet(freelancerID string) (*models.Wallet, error)
	// RequestWithdrawal files a pending withdrawal for admin review.
	RequestWithdrawal(freelancerID string, amount float64, upiID string) (*models.WithdrawalRequest, error)
	// WithdrawalHistory returns the freelancer's withdrawal requests, newest first.
	WithdrawalHistory(freelancerID string) ([]models.WithdrawalRequest, error)
	// ListWithdrawals returns requests in the given status for admin review
	// ("" means all).
	ListWithdrawals(status string) ([]models.WithdrawalRequest, error)
	// ApproveWithdrawal approves a pending request and debits the wallet.
	ApproveWithdrawal(requestID, adminID string) (*models.WithdrawalRequest, error)
	// RejectWithdrawal rejects a pending request with a reason. No money moves.
	RejectWithdrawal(requestID, adminID, reason string) (*models.WithdrawalRequest, error)
}

// DefaultWalletService is the production WalletService.
type DefaultWalletService struct {
	Wallets     walletRepo.WalletRepository
	Withdrawals withdrawalRepo.WithdrawalRepository
}

// GetWallet returns the freelancer's wallet.
func (s *DefaultWalletService) GetWallet(freelancerID string) (*models.Wallet, error) {
	w, err := s.Wallets.GetOrCreate(freelancerID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return w, nil
}

// RequestWithdrawal files a pending withdrawal for admin review. The balance
// check here is advisory; the authoritative check is the guarded debit at
// approval time.
func (s *DefaultWalletService) RequestWithdrawal(freelancerID string, amount float64, upiID string) (*models.WithdrawalRequest, error) {
	if amount < models.MinWithdrawalAmount {
		return nil, apperrors.Validation(fmt.Sprintf("minimum withdrawal is %.0f", models.MinWithdrawalAmount))
	}
	if upiID == "" {
		return nil, apperrors.Validation("UPI ID is required")
	}

	w, err := s.Wallets.GetOrCreate(freelancerID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if amount > w.Balance {
		return nil, apperrors.Validation("withdrawal amount exceeds wallet balance")
	}

	req := &models.WithdrawalRequest{
		ID:           uuid.New().String(),
		FreelancerID: freelancerID,
		Amount:       amount,
		UPIID:        upiID,
		Status:       models.WithdrawalPending,
		RequestedAt:  time.Now(),
	}
	if err := s.Withdrawals.Create(req); err != nil {
		return nil, apperrors.Internal(err)
	}
	zap.L().Info("withdrawal requested",
		zap.String("requestID", req.ID), zap.String("freelancerID", freelancerID), zap.Float64("amount", amount))
	return req, nil
}

// WithdrawalHistory returns the freelancer's withdrawal requests.
func (s *DefaultWalletService) WithdrawalHistory(freelancerID string) ([]models.WithdrawalRequest, error) {
	reqs, err := s.Withdrawals.GetByFreelancer(freelancerID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return reqs, nil
}

// ListWithdrawals returns requests in the given status for admin review.
func (s *DefaultWalletService) ListWithdrawals(status string) ([]models.WithdrawalRequest, error) {
	switch status {
	case "", models.WithdrawalPending, models.WithdrawalApproved, models.WithdrawalRejected:
	default:
		return nil, apperrors.Validation("unknown withdrawal status")
	}
	reqs, err := s.Withdrawals.GetByStatus(status)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return reqs, nil
}

// ApproveWithdrawal approves a pending request and debits the wallet. The
// review transition serializes concurrent admins; the debit is guarded against
// overdraft in case the balance dropped since the request was filed.
func (s *DefaultWalletService) ApproveWithdrawal(requestID, adminID string) (*models.WithdrawalRequest, error) {
	req, err := s.Withdrawals.GetByID(requestID)
	if err != nil {
		return nil, mapWithdrawalErr(err)
	}

	w, err := s.Wallets.GetOrCreate(req.FreelancerID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if req.Amount > w.Balance {
		return nil, apperrors.StateConflict("freelancer balance no longer covers this withdrawal")
	}

	approved, err := s.Withdrawals.Review(requestID, models.WithdrawalApproved, adminID, "")
	if err != nil {
		return nil, mapWithdrawalErr(err)
	}

	txn := models.WalletTransaction{
		ID:          uuid.New().String(),
		Type:        models.WalletTxnDebit,
		Amount:      approved.Amount,
		Description: "withdrawal to " + approved.UPIID,
		Timestamp:   time.Now(),
		Status:      "completed",
	}
	if err := s.Wallets.Debit(approved.FreelancerID, txn); err != nil {
		if errors.Is(err, walletRepo.ErrInsufficientBalance) {
			// The balance moved between the check and the debit. The request
			// is already approved; flag it loudly for manual follow-up.
			zap.L().Error("approved withdrawal could not be debited",
				zap.String("requestID", requestID), zap.String("freelancerID", approved.FreelancerID))
			return nil, apperrors.StateConflict("freelancer balance no longer covers this withdrawal")
		}
		return nil, apperrors.Internal(err)
	}
	zap.L().Info("withdrawal approved",
		zap.String("requestID", requestID), zap.Float64("amount", approved.Amount))
	return approved, nil
}

// RejectWithdrawal rejects a pending request with a reason.
func (s *DefaultWalletService) RejectWithdrawal(requestID, adminID, reason string) (*models.WithdrawalRequest, error) {
	if reason == "" {
		return nil, apperrors.Validation("rejection reason is required")
	}
	rejected, err := s.Withdrawals.Review(requestID, models.WithdrawalRejected, adminID, reason)
	if err != nil {
		return nil, mapWithdrawalErr(err)
	}
	zap.L().Info("withdrawal rejected", zap.String("requestID", requestID))
	return rejected, nil
}

func mapWithdrawalErr(err error) error {
	switch {
	case errors.Is(err, withdrawalRepo.ErrNotFound):
		return apperrors.NotFound("withdrawal request not found")
	case errors.Is(err, withdrawalRepo.ErrAlreadyReviewed):
		return apperrors.StateConflict("withdrawal request already reviewed")
	default:
		return apperrors.Internal(err)
	}
}
