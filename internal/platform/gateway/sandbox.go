package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrLoadFailed is returned when the gateway checkout cannot be opened.
var ErrLoadFailed = errors.New("gateway: checkout failed to load")

// Sandbox is an in-process gateway used in development and tests. It
// resolves every checkout after Delay with the configured Outcome, and
// fabricates payment references in the gateway's id format.
type Sandbox struct {
	KeyID    string
	Secret   string
	FailLoad bool
	Outcome  Outcome
	Delay    time.Duration
}

// NewSandbox returns a sandbox that settles every checkout successfully
// with no delay.
func NewSandbox(keyID, secret string) *Sandbox {
	return &Sandbox{KeyID: keyID, Secret: secret, Outcome: OutcomeSuccess}
}

type sandboxCheckout struct {
	done chan Result
}

func (c *sandboxCheckout) Done() <-chan Result { return c.done }

func (s *Sandbox) OpenCheckout(ctx context.Context, req CheckoutRequest) (Checkout, error) {
	if s.FailLoad {
		return nil, ErrLoadFailed
	}
	if req.AmountPaise <= 0 {
		return nil, fmt.Errorf("gateway: invalid amount %d", req.AmountPaise)
	}

	co := &sandboxCheckout{done: make(chan Result, 1)}
	delay := s.Delay
	outcome := s.Outcome

	go func() {
		defer close(co.done)
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				co.done <- Result{Outcome: OutcomeDismissed}
				return
			}
		}
		if outcome != OutcomeSuccess {
			co.done <- Result{Outcome: outcome}
			return
		}
		paymentID := "pay_" + shortID()
		orderID := "order_" + shortID()
		co.done <- Result{
			Outcome:   OutcomeSuccess,
			PaymentID: paymentID,
			OrderID:   orderID,
			Signature: s.sign(orderID, paymentID),
		}
	}()

	return co, nil
}

// sign computes the gateway's HMAC-SHA256 signature over "orderID|paymentID".
func (s *Sandbox) sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(s.Secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
}
