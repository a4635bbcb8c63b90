package payment

import (
	"math"

	"gighaat/models"
)

// CommissionRate is the platform's fixed cut of every job payment.
const CommissionRate = 0.10

// CashSplit computes the commission split for a cash payment. The cash path
// rounds the commission to cents, so the freelancer amount carries the
// fractional remainder.
func CashSplit(totalAmount float64) models.PaymentAmounts {
	commission := math.Round(totalAmount*CommissionRate*100) / 100
	return models.PaymentAmounts{
		TotalAmount:      totalAmount,
		Commission:       commission,
		FreelancerAmount: totalAmount - commission,
	}
}

// UPISplit computes the commission split for a UPI payment. The UPI path
// rounds the commission to the whole currency unit.
func UPISplit(totalAmount float64) models.PaymentAmounts {
	commission := math.Round(totalAmount * CommissionRate)
	return models.PaymentAmounts{
		TotalAmount:      totalAmount,
		Commission:       commission,
		FreelancerAmount: totalAmount - commission,
	}
}
