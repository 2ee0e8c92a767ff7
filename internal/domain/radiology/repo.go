package radiology

import (
	"sync"

	"github.com/medicare/hms/pkg/pagination"
)

// Repo stores the imaging schedule.
type Repo interface {
	List(p pagination.Params, machine string) ([]Scan, int)
	Get(id string) (Scan, error)
	SetStatus(id, status string) (Scan, error)
	All() []Scan
}

type RepoMem struct {
	mu    sync.RWMutex
	items []Scan
}

func NewRepoMem() *RepoMem {
	return &RepoMem{items: []Scan{
		{ID: "RAD001", Patient: "Emma Brown", Scan: "Chest X-Ray", Status: StatusCompleted, Priority: "Normal", Time: "09:00 AM", Machine: "X-Ray Room 1"},
		{ID: "RAD002", Patient: "David Lee", Scan: "MRI Brain", Status: StatusInProgress, Priority: "Urgent", Time: "10:30 AM", Machine: "MRI Room A"},
		{ID: "RAD003", Patient: "Lisa Garcia", Scan: "CT Abdomen", Status: StatusScheduled, Priority: "High", Time: "02:00 PM", Machine: "CT Room 2"},
		{ID: "RAD004", Patient: "Robert Taylor", Scan: "Ultrasound", Status: StatusCompleted, Priority: "Normal", Time: "08:15 AM", Machine: "US Room 3"},
	}}
}

// List pages the schedule, optionally filtered to one machine.
func (r *RepoMem) List(p pagination.Params, machine string) ([]Scan, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	filtered := r.items
	if machine != "" {
		filtered = nil
		for _, s := range r.items {
			if s.Machine == machine {
				filtered = append(filtered, s)
			}
		}
	}
	return pagination.Page(filtered, p.Limit, p.Offset), len(filtered)
}

func (r *RepoMem) Get(id string) (Scan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.items {
		if s.ID == id {
			return s, nil
		}
	}
	return Scan{}, ErrNotFound
}

func (r *RepoMem) SetStatus(id, status string) (Scan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Status = status
			return r.items[i], nil
		}
	}
	return Scan{}, ErrNotFound
}

func (r *RepoMem) All() []Scan {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Scan, len(r.items))
	copy(out, r.items)
	return out
}
