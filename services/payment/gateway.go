package payment

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// GatewayOrderStatus is the gateway-side state of a payment order.
type GatewayOrderStatus string

const (
	GatewayOrderPending GatewayOrderStatus = "pending"
	GatewayOrderPaid    GatewayOrderStatus = "paid"
	GatewayOrderFailed  GatewayOrderStatus = "failed"
)

// GatewayOrder is the gateway's handle for a created payment.
type GatewayOrder struct {
	Ref        string
	PaymentURL string
}

// Gateway abstracts the external UPI payment processor. CreateOrder registers
// a payment for the given amount; CheckOrder reports whether the payer has
// completed it.
type Gateway interface {
	CreateOrder(ctx context.Context, orderID string, amount float64, currency string) (*GatewayOrder, error)
	CheckOrder(ctx context.Context, ref string) (GatewayOrderStatus, error)
}

// StripeGateway implements Gateway on Stripe payment intents. The intent ID is
// the gateway ref; the amount is converted to the currency's smallest unit.
type StripeGateway struct{}

func (g *StripeGateway) CreateOrder(_ context.Context, orderID string, amount float64, currency string) (*GatewayOrder, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("order_id", orderID)
	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("gateway order creation failed: %w", err)
	}
	return &GatewayOrder{Ref: pi.ID}, nil
}

func (g *StripeGateway) CheckOrder(_ context.Context, ref string) (GatewayOrderStatus, error) {
	pi, err := paymentintent.Get(ref, nil)
	if err != nil {
		return "", fmt.Errorf("gateway order lookup failed: %w", err)
	}
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return GatewayOrderPaid, nil
	case stripe.PaymentIntentStatusCanceled:
		return GatewayOrderFailed, nil
	default:
		return GatewayOrderPending, nil
	}
}

// MemoryGateway is an in-memory Gateway used as a test double. Orders start
// pending; tests settle or fail them explicitly.
type MemoryGateway struct {
	mu     sync.Mutex
	orders map[string]GatewayOrderStatus
}

// NewMemoryGateway creates an empty in-memory gateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{orders: make(map[string]GatewayOrderStatus)}
}

func (g *MemoryGateway) CreateOrder(_ context.Context, orderID string, _ float64, _ string) (*GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ref := "gw_" + orderID
	g.orders[ref] = GatewayOrderPending
	return &GatewayOrder{Ref: ref}, nil
}

func (g *MemoryGateway) CheckOrder(_ context.Context, ref string) (GatewayOrderStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	status, ok := g.orders[ref]
	if !ok {
		return "", fmt.Errorf("unknown gateway ref %q", ref)
	}
	return status, nil
}

// Settle marks the order paid on the gateway side.
func (g *MemoryGateway) Settle(ref string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.orders[ref] = GatewayOrderPaid
}

// Fail marks the order failed on the gateway side.
func (g *MemoryGateway) Fail(ref string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.orders[ref] = GatewayOrderFailed
}
