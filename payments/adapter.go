package payments

import (
	"fmt"
	"time"
)

type CheckoutInput struct {
	SessionID  string
	Amount     int64
	Currency   string
	CustomerID string
}

type Checkout struct {
	PaymentRef string `json:"paymentId"`
	URL        string `json:"url"`
}

type ProviderStatus struct {
	PaymentRef string `json:"paymentId"`
	Status     string `json:"status"`
}

// Adapter is the stable surface a payment provider must offer. Only the
// mock below exists; a Stripe or Wompi adapter would implement the same
// two calls.
type Adapter interface {
	CreateCheckout(in CheckoutInput) (*Checkout, error)
	GetStatus(paymentRef string) (*ProviderStatus, error)
}

// MockAdapter fabricates a checkout URL and reports every payment as
// paid. It stands in for a real processor in demos and tests.
type MockAdapter struct{}

func (MockAdapter) CreateCheckout(in CheckoutInput) (*Checkout, error) {
	ref := fmt.Sprintf("pay_%d", time.Now().UnixNano())
	url := fmt.Sprintf("https://example.com/checkout?session=%s&amount=%d&currency=%s",
		in.SessionID, in.Amount, in.Currency)
	return &Checkout{PaymentRef: ref, URL: url}, nil
}

func (MockAdapter) GetStatus(paymentRef string) (*ProviderStatus, error) {
	return &ProviderStatus{PaymentRef: paymentRef, Status: "paid"}, nil
}
