package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gighaat/config"
	jobRepo "gighaat/database/repository/job"
	ledgerRepo "gighaat/database/repository/ledger"
	orderRepo "gighaat/database/repository/paymentorder"
	walletRepo "gighaat/database/repository/wallet"
	"gighaat/models"
	"gighaat/pkg/apperrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// staleOrderAge is how long an order may sit in the created state before the
// reconciler re-checks it against the gateway.
const staleOrderAge = 15 * time.Minute

// DefaultPaymentService is the production PaymentService.
type DefaultPaymentService struct {
	Orders  orderRepo.OrderRepository
	Jobs    jobRepo.JobRepository
	Ledger  ledgerRepo.LedgerRepository
	Wallets walletRepo.WalletRepository
	Gateway Gateway
}

// CreateUPIPayment creates a gateway order for the client's work_done job.
func (s *DefaultPaymentService) CreateUPIPayment(ctx context.Context, jobID, clientID string) (*models.PaymentOrder, error) {
	j, err := s.payableJob(jobID, clientID)
	if err != nil {
		return nil, err
	}

	amounts := UPISplit(jobAmount(j))
	orderID := uuid.New().String()
	gw, err := s.Gateway.CreateOrder(ctx, orderID, amounts.TotalAmount, config.AppConfig.PaymentCurrency)
	if err != nil {
		return nil, apperrors.Gateway("payment gateway rejected the order", err)
	}

	order := &models.PaymentOrder{
		OrderID:      orderID,
		JobID:        j.ID,
		ClientID:     j.ClientID,
		FreelancerID: j.AssignedFreelancer.ID,
		Method:       models.PaymentMethodUPI,
		Amounts:      amounts,
		Status:       models.PaymentOrderCreated,
		GatewayRef:   gw.Ref,
		PaymentURL:   paymentURL(gw, orderID),
		CreatedAt:    time.Now(),
	}
	if err := s.Orders.Create(order); err != nil {
		return nil, apperrors.Internal(err)
	}
	zap.L().Info("upi order created",
		zap.String("orderID", orderID), zap.String("jobID", jobID), zap.Float64("amount", amounts.TotalAmount))
	return order, nil
}

// VerifyUPIPayment polls the gateway for the order's outcome and settles it.
// Settlement is idempotent: the order's created-to-paid transition is the
// exactly-once gate, and repeated verification of a paid order just returns it.
func (s *DefaultPaymentService) VerifyUPIPayment(ctx context.Context, orderID, clientID string) (*models.PaymentOrder, error) {
	order, err := s.Orders.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrNotFound) {
			return nil, apperrors.NotFound("payment order not found")
		}
		return nil, apperrors.Internal(err)
	}
	if order.ClientID != clientID {
		return nil, apperrors.Forbidden("payment order does not belong to you")
	}
	if order.Status != models.PaymentOrderCreated {
		return order, nil
	}

	status, err := s.Gateway.CheckOrder(ctx, order.GatewayRef)
	if err != nil {
		return nil, apperrors.Gateway("payment gateway verification failed", err)
	}
	switch status {
	case GatewayOrderPaid:
		return s.settleOrder(order)
	case GatewayOrderFailed:
		if err := s.Orders.MarkFailed(orderID); err != nil && !errors.Is(err, orderRepo.ErrAlreadySettled) {
			return nil, apperrors.Internal(err)
		}
		return s.refetch(orderID)
	default:
		return order, nil
	}
}

// GetPaymentStatus returns the most recent payment order for the job.
func (s *DefaultPaymentService) GetPaymentStatus(jobID, clientID string) (*models.PaymentOrder, error) {
	order, err := s.Orders.GetLatestByJob(jobID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrNotFound) {
			return nil, apperrors.NotFound("no payment recorded for this job")
		}
		return nil, apperrors.Internal(err)
	}
	if order.ClientID != clientID {
		return nil, apperrors.Forbidden("payment order does not belong to you")
	}
	return order, nil
}

// RecordCashPayment marks the client's work_done job as paid in cash. The job
// transition is the serialization point, so a concurrent UPI settlement and a
// cash record cannot both win.
func (s *DefaultPaymentService) RecordCashPayment(jobID, clientID string) (*models.PaymentOrder, error) {
	j, err := s.payableJob(jobID, clientID)
	if err != nil {
		return nil, err
	}

	amounts := CashSplit(jobAmount(j))
	if err := s.Jobs.UpdateStatus(jobID, models.JobStatusWorkDone, models.JobStatusCompleted); err != nil {
		if errors.Is(err, jobRepo.ErrConflict) || errors.Is(err, jobRepo.ErrNotFound) {
			return nil, apperrors.StateConflict("job has already been paid")
		}
		return nil, apperrors.Internal(err)
	}

	now := time.Now()
	entry := &models.CommissionEntry{
		ID:           uuid.New().String(),
		FreelancerID: j.AssignedFreelancer.ID,
		JobID:        j.ID,
		JobTitle:     j.Title,
		ClientName:   j.ClientName,
		Amount:       amounts.Commission,
		Status:       models.CommissionPending,
		CreatedAt:    now,
	}
	if err := s.Ledger.Create(entry); err != nil {
		return nil, apperrors.Internal(err)
	}

	order := &models.PaymentOrder{
		OrderID:      uuid.New().String(),
		JobID:        j.ID,
		ClientID:     j.ClientID,
		FreelancerID: j.AssignedFreelancer.ID,
		Method:       models.PaymentMethodCash,
		Amounts:      amounts,
		Status:       models.PaymentOrderPaid,
		CreatedAt:    now,
		PaidAt:       &now,
	}
	if err := s.Orders.Create(order); err != nil {
		return nil, apperrors.Internal(err)
	}
	zap.L().Info("cash payment recorded",
		zap.String("jobID", jobID), zap.Float64("commission", amounts.Commission))
	return order, nil
}

// PayCommission settles a pending commission entry. The paid amount must match
// the amount owed exactly; partial settlement is not supported.
func (s *DefaultPaymentService) PayCommission(entryID, freelancerID string, amountPaid float64) (*models.CommissionEntry, error) {
	entry, err := s.Ledger.GetByID(entryID)
	if err != nil {
		if errors.Is(err, ledgerRepo.ErrNotFound) {
			return nil, apperrors.NotFound("commission entry not found")
		}
		return nil, apperrors.Internal(err)
	}
	if entry.FreelancerID != freelancerID {
		return nil, apperrors.Forbidden("commission entry does not belong to you")
	}
	if math.Abs(amountPaid-entry.Amount) > 1e-9 {
		return nil, apperrors.Validation(fmt.Sprintf("commission due is %.2f, got %.2f", entry.Amount, amountPaid))
	}

	paid, err := s.Ledger.MarkPaid(entryID)
	if err != nil {
		if errors.Is(err, ledgerRepo.ErrAlreadyPaid) {
			return nil, apperrors.StateConflict("commission entry already paid")
		}
		return nil, apperrors.Internal(err)
	}
	zap.L().Info("commission settled",
		zap.String("entryID", entryID), zap.Float64("amount", paid.Amount))
	return paid, nil
}

// CommissionDues returns the freelancer's unpaid commission entries.
func (s *DefaultPaymentService) CommissionDues(freelancerID string) (*CommissionDuesSummary, error) {
	entries, err := s.Ledger.GetByFreelancer(freelancerID, models.CommissionPending)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	total := 0.0
	for _, e := range entries {
		total += e.Amount
	}
	return &CommissionDuesSummary{Entries: entries, TotalDue: total}, nil
}

// CommissionHistory returns all of the freelancer's commission entries.
func (s *DefaultPaymentService) CommissionHistory(freelancerID string) ([]models.CommissionEntry, error) {
	entries, err := s.Ledger.GetByFreelancer(freelancerID, "")
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return entries, nil
}

// ReconcileStaleOrders re-checks gateway outcomes for orders that have sat in
// the created state too long. A client that paid but never called verify (app
// killed, network drop) still gets its job completed and wallet credited.
func (s *DefaultPaymentService) ReconcileStaleOrders(ctx context.Context) error {
	orders, err := s.Orders.ListCreatedBefore(time.Now().Add(-staleOrderAge))
	if err != nil {
		return err
	}
	for i := range orders {
		order := &orders[i]
		status, err := s.Gateway.CheckOrder(ctx, order.GatewayRef)
		if err != nil {
			zap.L().Warn("reconcile gateway check failed",
				zap.String("orderID", order.OrderID), zap.Error(err))
			continue
		}
		switch status {
		case GatewayOrderPaid:
			if _, err := s.settleOrder(order); err != nil {
				zap.L().Error("reconcile settlement failed",
					zap.String("orderID", order.OrderID), zap.Error(err))
			} else {
				zap.L().Info("reconciled stale order as paid", zap.String("orderID", order.OrderID))
			}
		case GatewayOrderFailed:
			if err := s.Orders.MarkFailed(order.OrderID); err != nil && !errors.Is(err, orderRepo.ErrAlreadySettled) {
				zap.L().Error("reconcile mark-failed failed",
					zap.String("orderID", order.OrderID), zap.Error(err))
			}
		}
	}
	return nil
}

// settleOrder runs the paid-side effects behind the order's created-to-paid
// gate. If another settler already holds the gate, the stored order is
// returned as-is. Job completion and wallet credit carry their own guards, so
// re-running them after a partial failure is safe.
func (s *DefaultPaymentService) settleOrder(order *models.PaymentOrder) (*models.PaymentOrder, error) {
	settled, err := s.Orders.MarkPaid(order.OrderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrAlreadySettled) {
			return s.refetch(order.OrderID)
		}
		return nil, apperrors.Internal(err)
	}

	if err := s.Jobs.UpdateStatus(settled.JobID, models.JobStatusWorkDone, models.JobStatusCompleted); err != nil {
		if !errors.Is(err, jobRepo.ErrConflict) && !errors.Is(err, jobRepo.ErrNotFound) {
			return nil, apperrors.Internal(err)
		}
	}

	txn := models.WalletTransaction{
		ID:          uuid.New().String(),
		Type:        models.WalletTxnCredit,
		Amount:      settled.Amounts.FreelancerAmount,
		Description: "payout for job " + settled.JobID,
		JobID:       settled.JobID,
		Timestamp:   time.Now(),
		Status:      "completed",
	}
	if err := s.Wallets.CreditForJob(settled.FreelancerID, txn); err != nil {
		if !errors.Is(err, walletRepo.ErrDuplicateCredit) {
			return nil, apperrors.Internal(err)
		}
	}
	zap.L().Info("upi order settled",
		zap.String("orderID", settled.OrderID), zap.String("jobID", settled.JobID),
		zap.Float64("payout", settled.Amounts.FreelancerAmount))
	return settled, nil
}

func (s *DefaultPaymentService) refetch(orderID string) (*models.PaymentOrder, error) {
	order, err := s.Orders.GetByOrderID(orderID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return order, nil
}

// payableJob loads the job and checks it is the client's and ready for payment.
func (s *DefaultPaymentService) payableJob(jobID, clientID string) (*models.Job, error) {
	j, err := s.Jobs.GetByID(jobID)
	if err != nil {
		if errors.Is(err, jobRepo.ErrNotFound) {
			return nil, apperrors.NotFound("job not found")
		}
		return nil, apperrors.Internal(err)
	}
	if j.ClientID != clientID {
		return nil, apperrors.Forbidden("job does not belong to you")
	}
	if j.Status != models.JobStatusWorkDone {
		return nil, apperrors.StateConflict("job is not awaiting payment")
	}
	if j.AssignedFreelancer == nil {
		return nil, apperrors.StateConflict("job has no assigned freelancer")
	}
	return j, nil
}

// jobAmount is the amount owed for the job: the accepted offer amount, or the
// posted budget if the offer record is missing.
func jobAmount(j *models.Job) float64 {
	if offer := j.AcceptedOffer(); offer != nil {
		return offer.Amount
	}
	return j.Budget
}

func paymentURL(gw *GatewayOrder, orderID string) string {
	if gw.PaymentURL != "" {
		return gw.PaymentURL
	}
	return fmt.Sprintf("%s/%s", config.AppConfig.PaymentPageBase, orderID)
}
