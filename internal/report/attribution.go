package report

import (
	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

// Attribution assigns responsibility for a terminal negative status.
type Attribution int

const (
	// AttributionNotApplicable means the candidate does not belong to the
	// bucket at all; callers must exclude it.
	AttributionNotApplicable Attribution = iota
	// AttributionManager covers the internal screening side (managers and
	// mentors alike).
	AttributionManager
	// AttributionClient covers rejections by the client's own process.
	AttributionClient
)

// AttributeNegative decides who a Rejected/Dropped candidate is attributed
// to. Explicit rejectedBy/droppedBy data wins; without it, a candidate whose
// history ever reached the interview stage is assumed to have been turned
// down by the client, and one who never reached it by internal screening.
//
// The heuristic keys on presence of an interview entry, not on its position
// relative to the rejection. That matches how every report has always read
// this data and changing it would silently shift historical counts.
func AttributeNegative(c *domain.Candidate, mainStatus domain.CandidateStatus) Attribution {
	if !matchesNegative(c.Status, mainStatus) {
		return AttributionNotApplicable
	}

	var explicit *domain.NegativeActor
	switch mainStatus {
	case domain.StatusRejected:
		explicit = c.RejectedBy
	case domain.StatusDropped:
		explicit = c.DroppedBy
	}

	if explicit != nil {
		switch *explicit {
		case domain.ActorManager, domain.ActorMentor:
			return AttributionManager
		case domain.ActorClient:
			return AttributionClient
		default:
			// Unknown explicit value: do not guess.
			return AttributionNotApplicable
		}
	}

	for i := range c.StatusHistory {
		normalized, ok := domain.NormalizeStatus(c.StatusHistory[i].Status)
		if ok && normalized == domain.StatusInterviewed {
			return AttributionClient
		}
	}
	return AttributionManager
}

// matchesNegative accepts the legacy Reject/Drop spellings alongside the
// canonical terminal statuses.
func matchesNegative(status, main domain.CandidateStatus) bool {
	switch main {
	case domain.StatusRejected:
		return status == domain.StatusRejected || status == "Reject"
	case domain.StatusDropped:
		return status == domain.StatusDropped || status == "Drop"
	}
	return false
}
