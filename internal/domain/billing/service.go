package billing

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medicare/hms/internal/platform/gateway"
	"github.com/medicare/hms/pkg/pagination"
)

// ServiceConfig carries the billing knobs from the server config.
type ServiceConfig struct {
	Currency string
	// GatewayTimeout bounds how long a gateway checkout may stay open.
	// Zero means wait indefinitely.
	GatewayTimeout time.Duration
}

// Service owns the billing sessions and the bill ledger. All session
// access is serialized through the service mutex; the mutex is released
// while a gateway checkout is awaited so other sessions stay live.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session

	ledger BillLedger
	gw     gateway.Client
	cfg    ServiceConfig
	log    zerolog.Logger
	now    func() time.Time
}

func NewService(cfg ServiceConfig, ledger BillLedger, gw gateway.Client, log zerolog.Logger) *Service {
	return &Service{
		sessions: make(map[string]*Session),
		ledger:   ledger,
		gw:       gw,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// SessionView is a read snapshot of a session for API responses.
type SessionView struct {
	ID        string        `json:"id"`
	State     State         `json:"state"`
	Method    PaymentMethod `json:"method,omitempty"`
	Customer  *Customer     `json:"customer,omitempty"`
	Items     []LineItem    `json:"items"`
	Total     float64       `json:"total"`
	CreatedAt time.Time     `json:"created_at"`
}

func snapshot(s *Session) SessionView {
	v := SessionView{
		ID:        s.ID,
		State:     s.State,
		Method:    s.Method,
		Items:     s.Cart.Items(),
		Total:     s.Cart.Total(),
		CreatedAt: s.CreatedAt,
	}
	if s.Customer != nil {
		c := *s.Customer
		v.Customer = &c
	}
	return v
}

// StartSession creates a new idle billing session.
func (s *Service) StartSession() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{
		ID:        uuid.NewString(),
		State:     StateIdle,
		CreatedAt: s.now(),
	}
	s.sessions[sess.ID] = sess
	s.log.Info().Str("session_id", sess.ID).Msg("billing session started")
	return snapshot(sess)
}

// Session returns a snapshot of the session.
func (s *Service) Session(id string) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return SessionView{}, ErrSessionNotFound
	}
	return snapshot(sess), nil
}

func (s *Service) sessionLocked(id string) (*Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// AddItem adds a line item to the session's cart.
func (s *Service) AddItem(sessionID, name, unitPrice string, quantity int) (LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.sessionLocked(sessionID)
	if err != nil {
		return LineItem{}, err
	}
	if !sess.canEdit() {
		return LineItem{}, ErrInvalidState
	}
	return sess.Cart.AddItem(name, unitPrice, quantity)
}

// UpdateItemQuantity adjusts an item's quantity by delta. Unknown item
// ids are ignored.
func (s *Service) UpdateItemQuantity(sessionID, itemID string, delta int) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.sessionLocked(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if !sess.canEdit() {
		return SessionView{}, ErrInvalidState
	}
	sess.Cart.UpdateQuantity(itemID, delta)
	return snapshot(sess), nil
}

// RemoveItem deletes an item from the cart. Unknown item ids are
// ignored.
func (s *Service) RemoveItem(sessionID, itemID string) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.sessionLocked(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if !sess.canEdit() {
		return SessionView{}, ErrInvalidState
	}
	sess.Cart.RemoveItem(itemID)
	return snapshot(sess), nil
}

// SetCustomer records who is being billed.
func (s *Service) SetCustomer(sessionID string, c Customer) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.sessionLocked(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if !sess.canEdit() {
		return SessionView{}, ErrInvalidState
	}
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Name == "" {
		return SessionView{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	sess.Customer = &c
	return snapshot(sess), nil
}

// SelectMethod chooses how the session will be paid.
func (s *Service) SelectMethod(sessionID string, m PaymentMethod) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.sessionLocked(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if err := sess.SelectMethod(m); err != nil {
		return SessionView{}, err
	}
	return snapshot(sess), nil
}

// PayCash settles the session in cash and finalizes the bill.
func (s *Service) PayCash(sessionID string, amountReceived float64, notes string) (Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.sessionLocked(sessionID)
	if err != nil {
		return Bill{}, err
	}
	res, err := sess.PayCash(amountReceived, notes)
	if err != nil {
		return Bill{}, err
	}
	bill, err := s.finalizeLocked(sess, res)
	if err != nil {
		return Bill{}, err
	}
	s.log.Info().
		Str("session_id", sessionID).
		Str("bill_id", bill.ID).
		Float64("total", bill.Total).
		Float64("change", res.Change).
		Msg("cash payment completed")
	return bill, nil
}

// PayGateway opens a gateway checkout for the session and blocks until
// the customer completes or dismisses it. On success the bill is
// finalized; on dismissal the session moves to Cancelled with cart and
// customer retained; if the checkout fails to load the session drops
// back to MethodChosen so the payment can be retried immediately.
func (s *Service) PayGateway(ctx context.Context, sessionID string) (Bill, error) {
	s.mu.Lock()
	sess, err := s.sessionLocked(sessionID)
	if err != nil {
		s.mu.Unlock()
		return Bill{}, err
	}
	if err := sess.BeginGateway(); err != nil {
		s.mu.Unlock()
		return Bill{}, err
	}
	req := gateway.CheckoutRequest{
		AmountPaise:   int64(math.Round(sess.Cart.Total() * 100)),
		Currency:      s.cfg.Currency,
		Description:   "Hospital bill payment",
		CustomerName:  sess.Customer.Name,
		CustomerPhone: sess.Customer.Phone,
	}
	s.mu.Unlock()

	co, err := s.gw.OpenCheckout(ctx, req)
	if err != nil {
		s.mu.Lock()
		sess.State = StateMethodChosen
		s.mu.Unlock()
		s.log.Error().Err(err).Str("session_id", sessionID).Msg("gateway checkout failed to load")
		return Bill{}, fmt.Errorf("%w: %v", ErrGatewayLoad, err)
	}

	var timeout <-chan time.Time
	if s.cfg.GatewayTimeout > 0 {
		timer := time.NewTimer(s.cfg.GatewayTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case res := <-co.Done():
		s.mu.Lock()
		defer s.mu.Unlock()
		if res.Outcome != gateway.OutcomeSuccess {
			sess.State = StateCancelled
			s.log.Info().Str("session_id", sessionID).Msg("gateway checkout dismissed")
			return Bill{}, ErrPaymentCancelled
		}
		sess.State = StateCompleted
		bill, err := s.finalizeLocked(sess, PaymentResult{
			Method:    MethodGateway,
			Amount:    sess.Cart.Total(),
			PaymentID: res.PaymentID,
			OrderID:   res.OrderID,
			Signature: res.Signature,
			Timestamp: s.now(),
		})
		if err != nil {
			return Bill{}, err
		}
		s.log.Info().
			Str("session_id", sessionID).
			Str("bill_id", bill.ID).
			Str("payment_id", res.PaymentID).
			Msg("gateway payment completed")
		return bill, nil
	case <-timeout:
		s.mu.Lock()
		sess.State = StateFailed
		s.mu.Unlock()
		return Bill{}, ErrGatewayTimeout
	case <-ctx.Done():
		s.mu.Lock()
		sess.State = StateFailed
		s.mu.Unlock()
		return Bill{}, ctx.Err()
	}
}

// Cancel abandons the session's current payment attempt.
func (s *Service) Cancel(sessionID string) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.sessionLocked(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if err := sess.Cancel(); err != nil {
		return SessionView{}, err
	}
	return snapshot(sess), nil
}

// finalizeLocked writes the bill to the ledger and resets the session.
// The bill id is derived from the current time; on a collision the
// counter advances until a free id is found.
func (s *Service) finalizeLocked(sess *Session, res PaymentResult) (Bill, error) {
	bill := Bill{
		CreatedAt: s.now(),
		Customer:  *sess.Customer,
		Items:     sess.Cart.Items(),
		Total:     sess.Cart.Total(),
		Payment:   res,
		Status:    BillStatusPaid,
	}
	millis := s.now().UnixMilli()
	for {
		bill.ID = fmt.Sprintf("BILL-%d", millis)
		err := s.ledger.Append(bill)
		if err == nil {
			break
		}
		if err != ErrDuplicateBill {
			return Bill{}, err
		}
		millis++
	}
	sess.reset()
	return bill, nil
}

// ListBills pages through the ledger, newest first.
func (s *Service) ListBills(p pagination.Params) ([]Bill, int) {
	return s.ledger.List(p)
}

// Bill looks up a finalized bill by id.
func (s *Service) Bill(id string) (Bill, error) {
	return s.ledger.Get(id)
}

// AllBills returns the full ledger for exports.
func (s *Service) AllBills() []Bill {
	return s.ledger.All()
}
