package report

import (
	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

// StatusGroup is one named count bucket of a report. It either matches a set
// of canonical statuses directly or delegates to the attribution classifier
// for a Rejected/Dropped split.
type StatusGroup struct {
	Name     string
	Statuses []domain.CandidateStatus
	Negative *NegativeBucket
}

// NegativeBucket pairs a terminal status with the actor it is attributed to.
type NegativeBucket struct {
	MainStatus domain.CandidateStatus
	Actor      Attribution
}

// DefaultStatusGroups is the funnel every dashboard renders: the forward
// stages in order followed by the four attributed negative buckets.
func DefaultStatusGroups() []StatusGroup {
	return []StatusGroup{
		{Name: "New", Statuses: []domain.CandidateStatus{domain.StatusNew}},
		{Name: "Shortlisted", Statuses: []domain.CandidateStatus{domain.StatusShortlisted}},
		{Name: "Interviewed", Statuses: []domain.CandidateStatus{domain.StatusInterviewed}},
		{Name: "Selected", Statuses: []domain.CandidateStatus{domain.StatusSelected}},
		{Name: "Joined", Statuses: []domain.CandidateStatus{domain.StatusJoined}},
		{Name: "Hold", Statuses: []domain.CandidateStatus{domain.StatusHold}},
		{Name: "Rejected by Manager", Negative: &NegativeBucket{MainStatus: domain.StatusRejected, Actor: AttributionManager}},
		{Name: "Rejected by Client", Negative: &NegativeBucket{MainStatus: domain.StatusRejected, Actor: AttributionClient}},
		{Name: "Dropped by Manager", Negative: &NegativeBucket{MainStatus: domain.StatusDropped, Actor: AttributionManager}},
		{Name: "Dropped by Client", Negative: &NegativeBucket{MainStatus: domain.StatusDropped, Actor: AttributionClient}},
	}
}
