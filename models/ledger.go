package models

import "time"

// CommissionEntry status values.
const (
	CommissionPending = "pending"
	CommissionPaid    = "paid"
)

// CommissionEntry is a commission owed to the platform by a freelancer after a
// cash payment. The commission is not collected at payment time; the entry
// tracks the obligation until the freelancer settles it.
type CommissionEntry struct {
	ID           string     `bson:"id" json:"id"`
	FreelancerID string     `bson:"freelancer_id" json:"freelancerId"`
	JobID        string     `bson:"job_id" json:"jobId"`
	JobTitle     string     `bson:"job_title" json:"jobTitle"`
	ClientName   string     `bson:"client_name" json:"clientName"`
	Amount       float64    `bson:"amount" json:"amount"`
	Status       string     `bson:"status" json:"status"`
	CreatedAt    time.Time  `bson:"created_at" json:"createdAt"`
	PaidAt       *time.Time `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
}
