package payment

import (
	"context"

	"gighaat/models"
)

// CommissionDuesSummary lists a freelancer's unpaid cash commissions and the
// total owed.
type CommissionDuesSummary struct {
	Entries  []models.CommissionEntry `json:"entries"`
	TotalDue float64                  `json:"totalDue"`
}

// PaymentService owns both payment paths for a finished job. UPI payments go
// through the external gateway and credit the freelancer's wallet net of
// commission; cash payments are settled off-platform, so the platform records
// a commission debt against the freelancer instead.
type PaymentService interface {
	// CreateUPIPayment creates a gateway order for the client's work_done job.
	// The amount is the accepted offer amount.
	CreateUPIPayment(ctx context.Context, jobID, clientID string) (*models.PaymentOrder, error)
	// VerifyUPIPayment polls the gateway for the order's outcome. Settlement
	// side effects (job completion, wallet credit) run exactly once no matter
	// how many times verification observes success.
	VerifyUPIPayment(ctx context.Context, orderID, clientID string) (*models.PaymentOrder, error)
	// GetPaymentStatus returns the most recent payment order for the job.
	GetPaymentStatus(jobID, clientID string) (*models.PaymentOrder, error)
	// RecordCashPayment marks the client's work_done job as paid in cash and
	// books a pending commission entry against the freelancer.
	RecordCashPayment(jobID, clientID string) (*models.PaymentOrder, error)
	// PayCommission settles a pending commission entry. The paid amount must
	// match the amount owed exactly.
	PayCommission(entryID, freelancerID string, amountPaid float64) (*models.CommissionEntry, error)
	// CommissionDues returns the freelancer's unpaid commission entries.
	CommissionDues(freelancerID string) (*CommissionDuesSummary, error)
	// CommissionHistory returns all of the freelancer's commission entries.
	CommissionHistory(freelancerID string) ([]models.CommissionEntry, error)
	// ReconcileStaleOrders re-checks gateway outcomes for orders stuck in the
	// created state, settling or failing them.
	ReconcileStaleOrders(ctx context.Context) error
}
