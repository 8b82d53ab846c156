package domain

import "time"

// JobStatus enumerates lifecycle states for job openings.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "OPEN"
	JobStatusClosed JobStatus = "CLOSED"
	JobStatusOnHold JobStatus = "ON_HOLD"
)

// Job is a client opening candidates are pipelined against. Visibility of a
// job (and of every candidate on it) derives from CreatedByID.
type Job struct {
	ID            string
	Title         string
	ClientID      string
	CreatedByID   string
	RecruiterIDs  []string
	Status        JobStatus
	NoOfPositions int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
