package payment

import (
	"context"
	"testing"
	"time"

	jobRepo "gighaat/database/repository/job"
	ledgerRepo "gighaat/database/repository/ledger"
	orderRepo "gighaat/database/repository/paymentorder"
	walletRepo "gighaat/database/repository/wallet"
	"gighaat/models"
	"gighaat/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	svc     *DefaultPaymentService
	jobs    *jobRepo.MemoryJobRepo
	orders  *orderRepo.MemoryOrderRepo
	ledger  *ledgerRepo.MemoryLedgerRepo
	wallets *walletRepo.MemoryWalletRepo
	gateway *MemoryGateway
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	f := &paymentFixture{
		jobs:    jobRepo.NewMemoryJobRepo(),
		orders:  orderRepo.NewMemoryOrderRepo(),
		ledger:  ledgerRepo.NewMemoryLedgerRepo(),
		wallets: walletRepo.NewMemoryWalletRepo(),
		gateway: NewMemoryGateway(),
	}
	f.svc = &DefaultPaymentService{
		Orders:  f.orders,
		Jobs:    f.jobs,
		Ledger:  f.ledger,
		Wallets: f.wallets,
		Gateway: f.gateway,
	}
	return f
}

// workDoneJob seeds a job awaiting payment with an accepted offer of 450.
func (f *paymentFixture) workDoneJob(t *testing.T) *models.Job {
	t.Helper()

	j := &models.Job{
		ID:         "job-1",
		ClientID:   "client-1",
		ClientName: "Asha",
		Title:      "Fix kitchen sink",
		Budget:     500,
		Status:     models.JobStatusWorkDone,
		Offers: []models.Offer{{
			ID:             "offer-1",
			FreelancerID:   "freelancer-1",
			FreelancerName: "Ravi",
			Amount:         450,
			Status:         models.OfferStatusAccepted,
		}},
		AssignedFreelancer: &models.AssignedFreelancer{ID: "freelancer-1", Name: "Ravi"},
	}
	require.NoError(t, f.jobs.Create(j))
	return j
}

func TestCreateUPIPaymentRequiresPayableJob(t *testing.T) {
	f := newPaymentFixture(t)
	j := f.workDoneJob(t)
	ctx := context.Background()

	_, err := f.svc.CreateUPIPayment(ctx, j.ID, "someone-else")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)

	require.NoError(t, f.jobs.UpdateStatus(j.ID, models.JobStatusWorkDone, models.JobStatusCompleted))
	_, err = f.svc.CreateUPIPayment(ctx, j.ID, "client-1")
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)
}

func TestUPIPaymentSettlesOnce(t *testing.T) {
	f := newPaymentFixture(t)
	j := f.workDoneJob(t)
	ctx := context.Background()

	order, err := f.svc.CreateUPIPayment(ctx, j.ID, "client-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentOrderCreated, order.Status)
	assert.InDelta(t, 450.0, order.Amounts.TotalAmount, 1e-9)
	assert.InDelta(t, 45.0, order.Amounts.Commission, 1e-9)
	assert.InDelta(t, 405.0, order.Amounts.FreelancerAmount, 1e-9)

	// Verification before the payer completes the order is a no-op.
	pending, err := f.svc.VerifyUPIPayment(ctx, order.OrderID, "client-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentOrderCreated, pending.Status)

	f.gateway.Settle(order.GatewayRef)

	paid, err := f.svc.VerifyUPIPayment(ctx, order.OrderID, "client-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentOrderPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	settled, err := f.jobs.GetByID(j.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, settled.Status)

	w, err := f.wallets.GetOrCreate("freelancer-1")
	require.NoError(t, err)
	assert.InDelta(t, 405.0, w.Balance, 1e-9)
	require.Len(t, w.Transactions, 1)
	assert.Equal(t, models.WalletTxnCredit, w.Transactions[0].Type)

	// A second verification returns the stored result without re-crediting.
	again, err := f.svc.VerifyUPIPayment(ctx, order.OrderID, "client-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentOrderPaid, again.Status)

	w, _ = f.wallets.GetOrCreate("freelancer-1")
	assert.InDelta(t, 405.0, w.Balance, 1e-9)
	assert.Len(t, w.Transactions, 1)
}

func TestVerifyUPIPaymentFailure(t *testing.T) {
	f := newPaymentFixture(t)
	j := f.workDoneJob(t)
	ctx := context.Background()

	order, err := f.svc.CreateUPIPayment(ctx, j.ID, "client-1")
	require.NoError(t, err)
	f.gateway.Fail(order.GatewayRef)

	failed, err := f.svc.VerifyUPIPayment(ctx, order.OrderID, "client-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentOrderFailed, failed.Status)

	// The job stays payable and the wallet untouched.
	unchanged, _ := f.jobs.GetByID(j.ID)
	assert.Equal(t, models.JobStatusWorkDone, unchanged.Status)
	w, _ := f.wallets.GetOrCreate("freelancer-1")
	assert.Zero(t, w.Balance)
}

func TestRecordCashPayment(t *testing.T) {
	f := newPaymentFixture(t)
	j := f.workDoneJob(t)

	order, err := f.svc.RecordCashPayment(j.ID, "client-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethodCash, order.Method)
	assert.Equal(t, models.PaymentOrderPaid, order.Status)
	assert.InDelta(t, 45.0, order.Amounts.Commission, 1e-9)

	completed, _ := f.jobs.GetByID(j.ID)
	assert.Equal(t, models.JobStatusCompleted, completed.Status)

	// Cash money moved off-platform: no wallet credit, but a commission debt.
	w, _ := f.wallets.GetOrCreate("freelancer-1")
	assert.Zero(t, w.Balance)

	dues, err := f.svc.CommissionDues("freelancer-1")
	require.NoError(t, err)
	require.Len(t, dues.Entries, 1)
	assert.InDelta(t, 45.0, dues.TotalDue, 1e-9)
	assert.Equal(t, j.Title, dues.Entries[0].JobTitle)

	// Recording again fails: the job already left work_done.
	_, err = f.svc.RecordCashPayment(j.ID, "client-1")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)
}

func TestPayCommission(t *testing.T) {
	f := newPaymentFixture(t)
	j := f.workDoneJob(t)
	_, err := f.svc.RecordCashPayment(j.ID, "client-1")
	require.NoError(t, err)

	dues, _ := f.svc.CommissionDues("freelancer-1")
	entry := dues.Entries[0]

	// Wrong amount is rejected without settling.
	_, err = f.svc.PayCommission(entry.ID, "freelancer-1", 44)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	// Someone else's entry is off limits.
	_, err = f.svc.PayCommission(entry.ID, "freelancer-2", entry.Amount)
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)

	paid, err := f.svc.PayCommission(entry.ID, "freelancer-1", entry.Amount)
	require.NoError(t, err)
	assert.Equal(t, models.CommissionPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	// Settling twice is a conflict.
	_, err = f.svc.PayCommission(entry.ID, "freelancer-1", entry.Amount)
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)

	dues, _ = f.svc.CommissionDues("freelancer-1")
	assert.Empty(t, dues.Entries)

	history, err := f.svc.CommissionHistory("freelancer-1")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestReconcileStaleOrders(t *testing.T) {
	f := newPaymentFixture(t)
	j := f.workDoneJob(t)
	ctx := context.Background()

	gw, err := f.gateway.CreateOrder(ctx, "stale-1", 450, "inr")
	require.NoError(t, err)
	order := &models.PaymentOrder{
		OrderID:      "stale-1",
		JobID:        j.ID,
		ClientID:     "client-1",
		FreelancerID: "freelancer-1",
		Method:       models.PaymentMethodUPI,
		Amounts:      UPISplit(450),
		Status:       models.PaymentOrderCreated,
		GatewayRef:   gw.Ref,
		CreatedAt:    time.Now().Add(-time.Hour),
	}
	require.NoError(t, f.orders.Create(order))

	// The payer completed the order but never called verify.
	f.gateway.Settle(gw.Ref)
	require.NoError(t, f.svc.ReconcileStaleOrders(ctx))

	settled, err := f.orders.GetByOrderID("stale-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentOrderPaid, settled.Status)

	completed, _ := f.jobs.GetByID(j.ID)
	assert.Equal(t, models.JobStatusCompleted, completed.Status)

	w, _ := f.wallets.GetOrCreate("freelancer-1")
	assert.InDelta(t, 405.0, w.Balance, 1e-9)
}
