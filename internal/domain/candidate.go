package domain

import "time"

// CandidateStatus enumerates pipeline states. The set is fixed and
// case-sensitive; legacy alias spellings are folded in by NormalizeStatus.
type CandidateStatus string

const (
	StatusNew         CandidateStatus = "New"
	StatusShortlisted CandidateStatus = "Shortlisted"
	StatusInterviewed CandidateStatus = "Interviewed"
	StatusSelected    CandidateStatus = "Selected"
	StatusJoined      CandidateStatus = "Joined"
	StatusHold        CandidateStatus = "Hold"
	StatusRejected    CandidateStatus = "Rejected"
	StatusDropped     CandidateStatus = "Dropped"
)

// statusAliases maps legacy spellings onto the canonical set.
var statusAliases = map[string]CandidateStatus{
	"Screening":    StatusNew,
	"Under Review": StatusNew,
	"Screen":       StatusShortlisted,
	"Screened":     StatusShortlisted,
	"Interview":    StatusInterviewed,
	"Offer":        StatusSelected,
	"Hired":        StatusJoined,
}

// NormalizeStatus folds alias spellings into the canonical status set.
// Unrecognized values come back with ok=false and must not be counted
// anywhere.
func NormalizeStatus(raw string) (CandidateStatus, bool) {
	if alias, found := statusAliases[raw]; found {
		return alias, true
	}
	switch s := CandidateStatus(raw); s {
	case StatusNew, StatusShortlisted, StatusInterviewed, StatusSelected,
		StatusJoined, StatusHold, StatusRejected, StatusDropped:
		return s, true
	}
	return "", false
}

// NegativeActor records who an explicit rejection/drop is attributed to.
type NegativeActor string

const (
	ActorManager NegativeActor = "Manager"
	ActorMentor  NegativeActor = "Mentor"
	ActorClient  NegativeActor = "Client"
)

// StatusHistoryEntry is one append-only transition record. Entries are
// chronologically non-decreasing.
type StatusHistoryEntry struct {
	Status          string    `json:"status"`
	Timestamp       time.Time `json:"timestamp"`
	Comment         string    `json:"comment,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	ChangedByID     *string   `json:"changed_by_id,omitempty"`
}

// Candidate is one applicant pipelined against a job. DynamicFields carries
// caller-defined columns (name, phone, CTC and so on) under open string keys.
type Candidate struct {
	ID            string
	JobID         string
	CreatedByID   string
	Status        CandidateStatus
	StatusHistory []StatusHistoryEntry
	RejectedBy    *NegativeActor
	DroppedBy     *NegativeActor
	JoiningDate   *time.Time
	SelectionDate *time.Time
	DynamicFields map[string]string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
