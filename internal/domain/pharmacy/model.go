package pharmacy

import "errors"

var (
	ErrNotFound      = errors.New("pharmacy: prescription not found")
	ErrUnknownStatus = errors.New("pharmacy: unknown status")
)

const (
	StatusPending   = "Pending"
	StatusPreparing = "Preparing"
	StatusDispensed = "Dispensed"
)

const (
	PriorityNormal = "Normal"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

// Prescription is one medication order on the pharmacy worklist.
type Prescription struct {
	ID         string `json:"id"`
	Patient    string `json:"patient"`
	Medication string `json:"medication"`
	Status     string `json:"status"`
	Priority   string `json:"priority"`
	Time       string `json:"time"`
}

// Stats summarizes the worklist for the department dashboard.
type Stats struct {
	Total     int `json:"total"`
	Dispensed int `json:"dispensed"`
	Preparing int `json:"preparing"`
	Pending   int `json:"pending"`
}

func validStatus(s string) bool {
	return s == StatusPending || s == StatusPreparing || s == StatusDispensed
}
