package domain

import "time"

// ActivityType captures what an activity log entry records.
type ActivityType string

const (
	ActivityCandidateCreated ActivityType = "CANDIDATE_CREATED"
	ActivityStatusChanged    ActivityType = "STATUS_CHANGED"
	ActivityInvoiceCreated   ActivityType = "INVOICE_CREATED"
)

// ActivityEntry is an immutable audit trail record derived from domain
// events.
type ActivityEntry struct {
	ID        string
	Type      ActivityType
	ActorID   *string
	SubjectID string
	JobID     *string
	Detail    map[string]any
	CreatedAt time.Time
}
