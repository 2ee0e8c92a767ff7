package lab

import (
	"sync"

	"github.com/medicare/hms/pkg/pagination"
)

// Repo stores the lab worklist.
type Repo interface {
	List(p pagination.Params) ([]TestOrder, int)
	Get(id string) (TestOrder, error)
	SetStatus(id, status string) (TestOrder, error)
	All() []TestOrder
}

type RepoMem struct {
	mu    sync.RWMutex
	items []TestOrder
}

func NewRepoMem() *RepoMem {
	return &RepoMem{items: []TestOrder{
		{ID: "LAB001", Patient: "John Doe", Test: "Complete Blood Count", Status: StatusCompleted, Priority: "Normal", Time: "09:30 AM"},
		{ID: "LAB002", Patient: "Jane Smith", Test: "Lipid Profile", Status: StatusInProgress, Priority: "Urgent", Time: "10:15 AM"},
		{ID: "LAB003", Patient: "Mike Johnson", Test: "Liver Function Test", Status: StatusPending, Priority: "Normal", Time: "11:00 AM"},
		{ID: "LAB004", Patient: "Sarah Wilson", Test: "Glucose Tolerance", Status: StatusCompleted, Priority: "High", Time: "08:45 AM"},
	}}
}

func (r *RepoMem) List(p pagination.Params) ([]TestOrder, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return pagination.Page(r.items, p.Limit, p.Offset), len(r.items)
}

func (r *RepoMem) Get(id string) (TestOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.items {
		if o.ID == id {
			return o, nil
		}
	}
	return TestOrder{}, ErrNotFound
}

func (r *RepoMem) SetStatus(id, status string) (TestOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Status = status
			return r.items[i], nil
		}
	}
	return TestOrder{}, ErrNotFound
}

func (r *RepoMem) All() []TestOrder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]TestOrder, len(r.items))
	copy(out, r.items)
	return out
}
