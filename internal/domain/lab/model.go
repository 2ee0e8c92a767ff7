package lab

import "errors"

var ErrNotFound = errors.New("lab: test order not found")

const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// TestOrder is one laboratory test on the day's worklist.
type TestOrder struct {
	ID       string `json:"id"`
	Patient  string `json:"patient"`
	Test     string `json:"test"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Time     string `json:"time"`
}

// Stats summarizes the worklist for the department dashboard.
type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Pending    int `json:"pending"`
}
