package radiology

import "errors"

var (
	ErrNotFound      = errors.New("radiology: scan not found")
	ErrUnknownStatus = errors.New("radiology: unknown status")
)

const (
	StatusScheduled  = "Scheduled"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Scan is one imaging appointment on the radiology schedule.
type Scan struct {
	ID       string `json:"id"`
	Patient  string `json:"patient"`
	Scan     string `json:"scan"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Time     string `json:"time"`
	Machine  string `json:"machine"`
}

// Stats summarizes the schedule for the department dashboard.
type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Scheduled  int `json:"scheduled"`
}
