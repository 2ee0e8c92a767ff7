package pharmacy

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/medicare/hms/pkg/pagination"
)

var (
	ErrItemNotFound = errors.New("pharmacy: inventory item not found")
	ErrBadItem      = errors.New("pharmacy: invalid inventory item")
)

// InventoryItem is a stocked medication that the billing form picks
// prices from.
type InventoryItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Stock     int     `json:"stock"`
}

// InventoryRepo stores the medication stock.
type InventoryRepo interface {
	List(p pagination.Params) ([]InventoryItem, int)
	Create(item InventoryItem) (InventoryItem, error)
	Update(id string, unitPrice float64, stock int) (InventoryItem, error)
	Delete(id string) error
	All() []InventoryItem
}

type InventoryRepoMem struct {
	mu    sync.RWMutex
	items []InventoryItem
}

func NewInventoryRepoMem() *InventoryRepoMem {
	return &InventoryRepoMem{items: []InventoryItem{
		{ID: uuid.NewString(), Name: "Amoxicillin 500mg", UnitPrice: 150, Stock: 120},
		{ID: uuid.NewString(), Name: "Paracetamol 650mg", UnitPrice: 80, Stock: 300},
		{ID: uuid.NewString(), Name: "Lisinopril 10mg", UnitPrice: 95, Stock: 85},
		{ID: uuid.NewString(), Name: "Metformin 850mg", UnitPrice: 110, Stock: 140},
		{ID: uuid.NewString(), Name: "Atorvastatin 20mg", UnitPrice: 130, Stock: 60},
	}}
}

func (r *InventoryRepoMem) List(p pagination.Params) ([]InventoryItem, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return pagination.Page(r.items, p.Limit, p.Offset), len(r.items)
}

func (r *InventoryRepoMem) Create(item InventoryItem) (InventoryItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" || item.UnitPrice < 0 || item.Stock < 0 {
		return InventoryItem{}, ErrBadItem
	}
	item.ID = uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
	return item, nil
}

func (r *InventoryRepoMem) Update(id string, unitPrice float64, stock int) (InventoryItem, error) {
	if unitPrice < 0 || stock < 0 {
		return InventoryItem{}, ErrBadItem
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].UnitPrice = unitPrice
			r.items[i].Stock = stock
			return r.items[i], nil
		}
	}
	return InventoryItem{}, ErrItemNotFound
}

func (r *InventoryRepoMem) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *InventoryRepoMem) All() []InventoryItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]InventoryItem, len(r.items))
	copy(out, r.items)
	return out
}
