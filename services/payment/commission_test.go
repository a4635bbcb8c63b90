package payment

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestCashSplit(t *testing.T) {
	cases := []struct {
		name       string
		total      float64
		commission float64
	}{
		{"round amount", 1000, 100},
		{"fractional commission kept to cents", 1234.56, 123.46},
		{"half cent rounds up", 100.05, 10.01},
		{"small job", 10, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := CashSplit(tc.total)
			assert.InDelta(t, tc.commission, s.Commission, 1e-9)
			assert.InDelta(t, tc.total-tc.commission, s.FreelancerAmount, 1e-9)
			assert.Equal(t, tc.total, s.TotalAmount)
		})
	}
}

func TestUPISplit(t *testing.T) {
	cases := []struct {
		name       string
		total      float64
		commission float64
	}{
		{"round amount", 1000, 100},
		{"commission rounds to whole unit", 1234.56, 123},
		{"rounds up from half", 125, 13},
		{"small job", 10, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := UPISplit(tc.total)
			assert.InDelta(t, tc.commission, s.Commission, 1e-9)
			assert.InDelta(t, tc.total-tc.commission, s.FreelancerAmount, 1e-9)
		})
	}
}

func TestSplitProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	amounts := gen.Float64Range(10, 1_000_000)

	properties.Property("cash split sums back to the total", prop.ForAll(
		func(total float64) bool {
			s := CashSplit(total)
			return math.Abs(s.Commission+s.FreelancerAmount-total) < 1e-6
		}, amounts))

	properties.Property("cash commission lands on a cent boundary", prop.ForAll(
		func(total float64) bool {
			s := CashSplit(total)
			cents := s.Commission * 100
			return math.Abs(cents-math.Round(cents)) < 1e-6
		}, amounts))

	properties.Property("upi split sums back to the total", prop.ForAll(
		func(total float64) bool {
			s := UPISplit(total)
			return math.Abs(s.Commission+s.FreelancerAmount-total) < 1e-6
		}, amounts))

	properties.Property("upi commission is a whole currency unit", prop.ForAll(
		func(total float64) bool {
			s := UPISplit(total)
			return s.Commission == math.Round(s.Commission)
		}, amounts))

	properties.Property("commission stays near ten percent", prop.ForAll(
		func(total float64) bool {
			cash := CashSplit(total)
			upi := UPISplit(total)
			return math.Abs(cash.Commission-total*CommissionRate) <= 0.005+1e-9 &&
				math.Abs(upi.Commission-total*CommissionRate) <= 0.5+1e-9
		}, amounts))

	properties.TestingRun(t)
}
