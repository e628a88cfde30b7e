package models

import "time"

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Version   string        `json:"version"`
	Uptime    time.Duration `json:"uptime"`
}

// StatusResponse summarizes the most recent scrape cycle for the status API.
type StatusResponse struct {
	Status       string        `json:"status"`
	RunID        string        `json:"run_id,omitempty"`
	StartedAt    time.Time     `json:"started_at,omitempty"`
	FinishedAt   time.Time     `json:"finished_at,omitempty"`
	Listings     int           `json:"listings"`
	TotalMatches int           `json:"total_matches"`
	TotalPages   int           `json:"total_pages"`
	FailedPages  int           `json:"failed_pages"`
	Workers      int           `json:"workers"`
	Elapsed      time.Duration `json:"elapsed"`
	Error        string        `json:"error,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
