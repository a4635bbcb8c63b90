package models

import "time"

// Payment methods accepted for a job.
const (
	PaymentMethodCash = "cash"
	PaymentMethodUPI  = "upi"
)

// PaymentOrder status values.
const (
	PaymentOrderCreated = "created"
	PaymentOrderPaid    = "paid"
	PaymentOrderFailed  = "failed"
)

// PaymentAmounts is the commission split for a job payment.
type PaymentAmounts struct {
	TotalAmount      float64 `bson:"total_amount" json:"totalAmount"`
	Commission       float64 `bson:"commission" json:"commission"`
	FreelancerAmount float64 `bson:"freelancer_amount" json:"freelancerAmount"`
}

// PaymentOrder records a UPI payment intent created against the external
// gateway. The paid transition happens exactly once; verification of an
// already-paid order returns the stored result without re-crediting.
type PaymentOrder struct {
	OrderID      string         `bson:"order_id" json:"orderId"`
	JobID        string         `bson:"job_id" json:"jobId"`
	ClientID     string         `bson:"client_id" json:"clientId"`
	FreelancerID string         `bson:"freelancer_id" json:"freelancerId"`
	Method       string         `bson:"method" json:"method"`
	Amounts      PaymentAmounts `bson:"amounts" json:"amounts"`
	Status       string         `bson:"status" json:"status"`
	GatewayRef   string         `bson:"gateway_ref,omitempty" json:"gatewayRef,omitempty"`
	PaymentURL   string         `bson:"payment_url,omitempty" json:"paymentUrl,omitempty"`
	CreatedAt    time.Time      `bson:"created_at" json:"createdAt"`
	PaidAt       *time.Time     `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
}
