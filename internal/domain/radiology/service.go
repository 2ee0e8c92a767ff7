package radiology

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

func (s *Service) List(p pagination.Params, machine string) ([]Scan, int) {
	return s.repo.List(p, machine)
}

func (s *Service) Get(id string) (Scan, error) {
	return s.repo.Get(id)
}

// SetStatus moves a scan through the imaging workflow.
func (s *Service) SetStatus(id, status string) (Scan, error) {
	switch status {
	case StatusScheduled, StatusInProgress, StatusCompleted:
	default:
		return Scan{}, ErrUnknownStatus
	}
	sc, err := s.repo.SetStatus(id, status)
	if err != nil {
		return Scan{}, err
	}
	s.log.Info().Str("scan_id", id).Str("status", status).Msg("scan status updated")
	return sc, nil
}

func (s *Service) Stats() Stats {
	var st Stats
	for _, sc := range s.repo.All() {
		st.Total++
		switch sc.Status {
		case StatusCompleted:
			st.Completed++
		case StatusInProgress:
			st.InProgress++
		case StatusScheduled:
			st.Scheduled++
		}
	}
	return st
}
