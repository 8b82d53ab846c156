package events

import (
	"time"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCandidateCreated       EventType = "candidate_created"
	EventCandidateStatusChanged EventType = "candidate_status_changed"
	EventJobChanged             EventType = "job_changed"
	EventInvoiceCreated         EventType = "invoice_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	ActorID   *string     `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CandidateCreatedPayload payload.
type CandidateCreatedPayload struct {
	JobID       string                 `json:"job_id"`
	CreatedByID string                 `json:"created_by_id"`
	Status      domain.CandidateStatus `json:"status"`
}

// CandidateStatusChangedPayload payload.
type CandidateStatusChangedPayload struct {
	JobID           string                 `json:"job_id"`
	OldStatus       domain.CandidateStatus `json:"old_status"`
	NewStatus       domain.CandidateStatus `json:"new_status"`
	Comment         string                 `json:"comment,omitempty"`
	RejectionReason string                 `json:"rejection_reason,omitempty"`
}

// JobChangedPayload payload.
type JobChangedPayload struct {
	ClientID string           `json:"client_id"`
	Title    string           `json:"title"`
	Status   domain.JobStatus `json:"status"`
}

// InvoiceCreatedPayload payload.
type InvoiceCreatedPayload struct {
	Number     string `json:"number"`
	ClientID   string `json:"client_id"`
	GrandTotal int64  `json:"grand_total"`
	LineCount  int    `json:"line_count"`
}
