package pharmacy

import (
	"sync"

	"github.com/medicare/hms/pkg/pagination"
)

// Repo stores the pharmacy worklist.
type Repo interface {
	List(p pagination.Params) ([]Prescription, int)
	Get(id string) (Prescription, error)
	UpdateStatus(id, status string) (Prescription, error)
	All() []Prescription
}

// RepoMem is the in-memory worklist, seeded with the day's orders.
type RepoMem struct {
	mu    sync.RWMutex
	items []Prescription
}

func NewRepoMem() *RepoMem {
	return &RepoMem{items: seedPrescriptions()}
}

func seedPrescriptions() []Prescription {
	return []Prescription{
		{ID: "RX001", Patient: "Alice Johnson", Medication: "Amoxicillin 500mg", Status: StatusDispensed, Priority: PriorityNormal, Time: "09:15 AM"},
		{ID: "RX002", Patient: "Bob Smith", Medication: "Lisinopril 10mg", Status: StatusPreparing, Priority: PriorityUrgent, Time: "10:30 AM"},
		{ID: "RX003", Patient: "Carol Davis", Medication: "Metformin 850mg", Status: StatusPending, Priority: PriorityHigh, Time: "11:45 AM"},
		{ID: "RX004", Patient: "Daniel Wilson", Medication: "Atorvastatin 20mg", Status: StatusDispensed, Priority: PriorityNormal, Time: "08:30 AM"},
	}
}

func (r *RepoMem) List(p pagination.Params) ([]Prescription, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return pagination.Page(r.items, p.Limit, p.Offset), len(r.items)
}

func (r *RepoMem) Get(id string) (Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rx := range r.items {
		if rx.ID == id {
			return rx, nil
		}
	}
	return Prescription{}, ErrNotFound
}

func (r *RepoMem) UpdateStatus(id, status string) (Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Status = status
			return r.items[i], nil
		}
	}
	return Prescription{}, ErrNotFound
}

func (r *RepoMem) All() []Prescription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Prescription, len(r.items))
	copy(out, r.items)
	return out
}
