package billing

import (
	"sync"

	"github.com/medicare/hms/pkg/pagination"
)

// BillLedger is an append-only store of finalized bills, newest first.
type BillLedger interface {
	Append(bill Bill) error
	List(p pagination.Params) ([]Bill, int)
	Get(id string) (Bill, error)
	All() []Bill
}

// BillLedgerMem keeps the ledger in memory. Bills are immutable once
// appended; there is no update or delete.
type BillLedgerMem struct {
	mu    sync.RWMutex
	bills []Bill
	byID  map[string]struct{}
}

func NewBillLedgerMem() *BillLedgerMem {
	return &BillLedgerMem{byID: make(map[string]struct{})}
}

// Append prepends the bill so the ledger reads newest first. Bill ids
// must be unique.
func (l *BillLedgerMem) Append(bill Bill) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.byID[bill.ID]; exists {
		return ErrDuplicateBill
	}
	l.byID[bill.ID] = struct{}{}
	l.bills = append([]Bill{bill}, l.bills...)
	return nil
}

func (l *BillLedgerMem) List(p pagination.Params) ([]Bill, int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return pagination.Page(l.bills, p.Limit, p.Offset), len(l.bills)
}

func (l *BillLedgerMem) Get(id string) (Bill, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, b := range l.bills {
		if b.ID == id {
			return b, nil
		}
	}
	return Bill{}, ErrBillNotFound
}

// All returns every bill, newest first. Used by exports.
func (l *BillLedgerMem) All() []Bill {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Bill, len(l.bills))
	copy(out, l.bills)
	return out
}
