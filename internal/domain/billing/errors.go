package billing

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound  = errors.New("billing: session not found")
	ErrBillNotFound     = errors.New("billing: bill not found")
	ErrDuplicateBill    = errors.New("billing: duplicate bill id")
	ErrEmptyCart        = errors.New("billing: cart is empty")
	ErrMissingCustomer  = errors.New("billing: customer details missing")
	ErrInvalidAmount    = errors.New("billing: amount received is less than total")
	ErrInvalidState     = errors.New("billing: operation not allowed in current state")
	ErrPaymentCancelled = errors.New("billing: payment cancelled by customer")
	ErrGatewayLoad      = errors.New("billing: payment gateway failed to load")
	ErrGatewayTimeout   = errors.New("billing: payment gateway timed out")
)

// ValidationError reports a rejected input field on a cart or customer
// operation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("billing: invalid %s: %s", e.Field, e.Reason)
}
