package billing

import "time"

// PaymentMethod is how a bill gets settled.
type PaymentMethod string

const (
	MethodCash    PaymentMethod = "cash"
	MethodGateway PaymentMethod = "gateway"
)

// ValidMethod reports whether m is a supported payment method.
func ValidMethod(m PaymentMethod) bool {
	return m == MethodCash || m == MethodGateway
}

// LineItem is one service or product on a bill. Total is always
// UnitPrice multiplied by Quantity.
type LineItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

// Customer identifies who is being billed.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// PaymentResult records how a completed payment was settled. The cash
// fields and the gateway reference fields are mutually exclusive. The
// gateway signature is stored as supplied by the collaborator; it is
// not re-verified here and a real deployment must verify it server-side.
type PaymentResult struct {
	Method         PaymentMethod `json:"method"`
	AmountReceived float64       `json:"amount_received,omitempty"`
	Change         float64       `json:"change,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	Amount         float64       `json:"amount,omitempty"`
	PaymentID      string        `json:"payment_id,omitempty"`
	OrderID        string        `json:"order_id,omitempty"`
	Signature      string        `json:"signature,omitempty"`
	Timestamp      time.Time     `json:"timestamp"`
}

// BillStatusPaid is the only status a finalized bill can carry; bills
// are immutable once written.
const BillStatusPaid = "Paid"

// Bill is an immutable record of a settled payment.
type Bill struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Customer  Customer      `json:"customer"`
	Items     []LineItem    `json:"items"`
	Total     float64       `json:"total"`
	Payment   PaymentResult `json:"payment"`
	Status    string        `json:"status"`
}
