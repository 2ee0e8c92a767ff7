package pharmacy

import (
	"github.com/rs/zerolog"

	"github.com/medicare/hms/pkg/pagination"
)

type Service struct {
	repo Repo
	inv  InventoryRepo
	log  zerolog.Logger
}

func NewService(repo Repo, inv InventoryRepo, log zerolog.Logger) *Service {
	return &Service{repo: repo, inv: inv, log: log}
}

func (s *Service) List(p pagination.Params) ([]Prescription, int) {
	return s.repo.List(p)
}

func (s *Service) Get(id string) (Prescription, error) {
	return s.repo.Get(id)
}

// SetStatus moves a prescription through the dispensing workflow.
func (s *Service) SetStatus(id, status string) (Prescription, error) {
	if !validStatus(status) {
		return Prescription{}, ErrUnknownStatus
	}
	rx, err := s.repo.UpdateStatus(id, status)
	if err != nil {
		return Prescription{}, err
	}
	s.log.Info().Str("prescription_id", id).Str("status", status).Msg("prescription status updated")
	return rx, nil
}

// Stats counts the worklist by status for the dashboard cards.
func (s *Service) Stats() Stats {
	var st Stats
	for _, rx := range s.repo.All() {
		st.Total++
		switch rx.Status {
		case StatusDispensed:
			st.Dispensed++
		case StatusPreparing:
			st.Preparing++
		case StatusPending:
			st.Pending++
		}
	}
	return st
}

func (s *Service) All() []Prescription {
	return s.repo.All()
}

func (s *Service) ListInventory(p pagination.Params) ([]InventoryItem, int) {
	return s.inv.List(p)
}

func (s *Service) AddInventoryItem(item InventoryItem) (InventoryItem, error) {
	created, err := s.inv.Create(item)
	if err != nil {
		return InventoryItem{}, err
	}
	s.log.Info().Str("item_id", created.ID).Str("name", created.Name).Msg("inventory item added")
	return created, nil
}

func (s *Service) UpdateInventoryItem(id string, unitPrice float64, stock int) (InventoryItem, error) {
	return s.inv.Update(id, unitPrice, stock)
}

func (s *Service) DeleteInventoryItem(id string) error {
	return s.inv.Delete(id)
}
