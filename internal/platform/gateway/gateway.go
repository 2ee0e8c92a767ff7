// Package gateway abstracts the external payment gateway used for
// non-cash settlement. A checkout is opened against the gateway and the
// outcome (customer paid, or dismissed the checkout) arrives
// asynchronously on a channel.
package gateway

import "context"

// Outcome of a completed checkout.
type Outcome string

const (
	// OutcomeSuccess means the customer completed payment.
	OutcomeSuccess Outcome = "success"
	// OutcomeDismissed means the customer abandoned the checkout.
	OutcomeDismissed Outcome = "dismissed"
)

// CheckoutRequest describes the payment to collect. Amounts are in the
// currency's minor unit (paise for INR).
type CheckoutRequest struct {
	AmountPaise   int64
	Currency      string
	Description   string
	CustomerName  string
	CustomerPhone string
}

// Result is the terminal event of a checkout. The reference fields are
// only populated on success.
type Result struct {
	Outcome   Outcome
	PaymentID string
	OrderID   string
	Signature string
}

// Checkout is an open gateway session. Exactly one Result is delivered
// on Done, after which the channel is closed.
type Checkout interface {
	Done() <-chan Result
}

// Client opens checkouts against a payment gateway. OpenCheckout returns
// an error when the gateway itself cannot be reached or fails to load;
// customer-side outcomes are reported through the Checkout.
type Client interface {
	OpenCheckout(ctx context.Context, req CheckoutRequest) (Checkout, error)
}
