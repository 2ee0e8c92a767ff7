package lab

import (
	"github.com/rs/zerolog"

	"github.com/medicare/hms/pkg/pagination"
)

type Service struct {
	repo Repo
	log  zerolog.Logger
}

func NewService(repo Repo, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) List(p pagination.Params) ([]TestOrder, int) {
	return s.repo.List(p)
}

func (s *Service) Get(id string) (TestOrder, error) {
	return s.repo.Get(id)
}

// Complete marks a test order as completed.
func (s *Service) Complete(id string) (TestOrder, error) {
	o, err := s.repo.SetStatus(id, StatusCompleted)
	if err != nil {
		return TestOrder{}, err
	}
	s.log.Info().Str("order_id", id).Msg("lab test completed")
	return o, nil
}

func (s *Service) Stats() Stats {
	var st Stats
	for _, o := range s.repo.All() {
		st.Total++
		switch o.Status {
		case StatusCompleted:
			st.Completed++
		case StatusInProgress:
			st.InProgress++
		case StatusPending:
			st.Pending++
		}
	}
	return st
}
