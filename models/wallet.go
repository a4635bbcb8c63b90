package models

import "time"

// Wallet transaction types.
const (
	WalletTxnCredit = "credit"
	WalletTxnDebit  = "debit"
)

// WithdrawalRequest status values.
const (
	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
	WithdrawalRejected = "rejected"
)

// MinWithdrawalAmount is the smallest withdrawal a freelancer may request.
const MinWithdrawalAmount = 100.0

// WalletTransaction is one ledgered movement on a freelancer wallet.
type WalletTransaction struct {
	ID          string    `bson:"id" json:"id"`
	Type        string    `bson:"type" json:"type"`
	Amount      float64   `bson:"amount" json:"amount"`
	Description string    `bson:"description" json:"description"`
	JobID       string    `bson:"job_id,omitempty" json:"jobId,omitempty"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
	Status      string    `bson:"status" json:"status"`
}

// Wallet holds a freelancer's accrued earnings. Balance only moves through
// credits from completed UPI payouts and debits from approved withdrawals.
type Wallet struct {
	FreelancerID string              `bson:"freelancer_id" json:"freelancerId"`
	Balance      float64             `bson:"balance" json:"balance"`
	Transactions []WalletTransaction `bson:"transactions" json:"transactions"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updatedAt"`
}

// WithdrawalRequest is a freelancer's request to move wallet funds to a UPI
// account. The balance is debited at approval time, not at request time.
type WithdrawalRequest struct {
	ID              string     `bson:"id" json:"id"`
	FreelancerID    string     `bson:"freelancer_id" json:"freelancerId"`
	Amount          float64    `bson:"amount" json:"amount"`
	UPIID           string     `bson:"upi_id" json:"upiId"`
	Status          string     `bson:"status" json:"status"`
	RequestedAt     time.Time  `bson:"requested_at" json:"requestedAt"`
	ReviewedAt      *time.Time `bson:"reviewed_at,omitempty" json:"reviewedAt,omitempty"`
	ReviewedBy      string     `bson:"reviewed_by,omitempty" json:"reviewedBy,omitempty"`
	RejectionReason string     `bson:"rejection_reason,omitempty" json:"rejectionReason,omitempty"`
}
