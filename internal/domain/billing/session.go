package billing

import "time"

// State of a billing session's payment workflow.
type State string

const (
	// StateIdle is the initial state: items can be edited, no payment
	// method chosen yet.
	StateIdle State = "idle"
	// StateMethodChosen means a payment method is selected and payment
	// can be attempted.
	StateMethodChosen State = "method_chosen"
	// StateProcessing means a gateway checkout is open and awaiting the
	// customer's action.
	StateProcessing State = "processing"
	// StateCompleted is transient: payment succeeded and the bill is
	// being finalized, after which the session resets to idle.
	StateCompleted State = "completed"
	// StateCancelled means the customer abandoned the payment. Cart and
	// customer details are retained so the payment can be retried.
	StateCancelled State = "cancelled"
	// StateFailed means the last payment attempt errored. Cart and
	// customer details are retained.
	StateFailed State = "failed"
)

// Session is one billing workflow: a cart of items, the customer being
// billed, and the payment state machine. Sessions are not safe for
// concurrent use; the service serializes access.
type Session struct {
	ID        string
	Cart      Cart
	Customer  *Customer
	Method    PaymentMethod
	State     State
	CreatedAt time.Time
}

// canEdit reports whether cart and customer details may be changed.
// Only an in-flight gateway checkout locks the session.
func (s *Session) canEdit() bool {
	return s.State != StateProcessing && s.State != StateCompleted
}

// SelectMethod chooses the payment method. This is the precondition
// gate: the cart must be non-empty and the customer identified before a
// method can be chosen, and a rejection changes no state. Re-selection
// is allowed from any settled state so an abandoned or failed payment
// can be retried.
func (s *Session) SelectMethod(m PaymentMethod) error {
	if !ValidMethod(m) {
		return &ValidationError{Field: "method", Reason: "must be cash or gateway"}
	}
	switch s.State {
	case StateIdle, StateMethodChosen, StateCancelled, StateFailed:
	default:
		return ErrInvalidState
	}
	if s.Cart.Len() == 0 {
		return ErrEmptyCart
	}
	if s.Customer == nil || s.Customer.Name == "" {
		return ErrMissingCustomer
	}
	s.Method = m
	s.State = StateMethodChosen
	return nil
}

// readyForPayment validates the preconditions common to both payment
// paths.
func (s *Session) readyForPayment(m PaymentMethod) error {
	if s.State != StateMethodChosen || s.Method != m {
		return ErrInvalidState
	}
	if s.Cart.Len() == 0 {
		return ErrEmptyCart
	}
	if s.Customer == nil || s.Customer.Name == "" {
		return ErrMissingCustomer
	}
	return nil
}

// PayCash settles the session in cash. The tendered amount must cover
// the cart total; otherwise the session stays in MethodChosen so the
// cashier can re-enter the amount.
func (s *Session) PayCash(amountReceived float64, notes string) (PaymentResult, error) {
	if err := s.readyForPayment(MethodCash); err != nil {
		return PaymentResult{}, err
	}
	total := s.Cart.Total()
	if amountReceived < total {
		return PaymentResult{}, ErrInvalidAmount
	}
	s.State = StateCompleted
	return PaymentResult{
		Method:         MethodCash,
		AmountReceived: round2(amountReceived),
		Change:         round2(amountReceived - total),
		Notes:          notes,
		Timestamp:      time.Now(),
	}, nil
}

// BeginGateway transitions to Processing after validating the payment
// preconditions. A zero-total cart is settleable in cash but not via the
// gateway, which only accepts positive amounts.
func (s *Session) BeginGateway() error {
	if err := s.readyForPayment(MethodGateway); err != nil {
		return err
	}
	if s.Cart.Total() <= 0 {
		return &ValidationError{Field: "total", Reason: "gateway payments require a positive amount"}
	}
	s.State = StateProcessing
	return nil
}

// Cancel abandons the current payment attempt. Cart and customer
// details survive so the session can be resumed.
func (s *Session) Cancel() error {
	if s.State == StateProcessing || s.State == StateCompleted {
		return ErrInvalidState
	}
	s.State = StateCancelled
	return nil
}

// reset clears all billing state after a bill has been finalized.
func (s *Session) reset() {
	s.Cart.Clear()
	s.Customer = nil
	s.Method = ""
	s.State = StateIdle
}
