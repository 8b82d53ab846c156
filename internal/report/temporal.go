package report

import (
	"time"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

// TemporalMode selects which timestamp a report counts records by.
type TemporalMode string

const (
	// ModeCreation counts by the record's creation timestamp.
	ModeCreation TemporalMode = "creation"
	// ModeStatus counts by the timestamp of the status transition being
	// bucketed.
	ModeStatus TemporalMode = "status"
)

// DateRange is an inclusive day-granular window. Either bound may be nil.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Active reports whether any bound is set.
func (r DateRange) Active() bool {
	return r.Start != nil || r.End != nil
}

// InRange reports whether ts falls inside the window. Start is inclusive at
// 00:00:00.000 of its date and End at 23:59:59.999 of its date. A missing
// timestamp is excluded whenever a range is active and included otherwise.
func (r DateRange) InRange(ts *time.Time) bool {
	if !r.Active() {
		return true
	}
	if ts == nil || ts.IsZero() {
		return false
	}
	if r.Start != nil && ts.Before(startOfDay(*r.Start)) {
		return false
	}
	if r.End != nil && ts.After(endOfDay(*r.End)) {
		return false
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}

// StatusTimestamp returns the timestamp relevant when counting candidate c
// under the given canonical status: the latest matching status-history entry,
// else the joining/selection date for Joined/Selected, else the creation
// timestamp.
func StatusTimestamp(c *domain.Candidate, status domain.CandidateStatus) *time.Time {
	for i := len(c.StatusHistory) - 1; i >= 0; i-- {
		entry := &c.StatusHistory[i]
		normalized, ok := domain.NormalizeStatus(entry.Status)
		if ok && normalized == status && !entry.Timestamp.IsZero() {
			ts := entry.Timestamp
			return &ts
		}
	}
	switch status {
	case domain.StatusJoined:
		if c.JoiningDate != nil && !c.JoiningDate.IsZero() {
			return c.JoiningDate
		}
	case domain.StatusSelected:
		if c.SelectionDate != nil && !c.SelectionDate.IsZero() {
			return c.SelectionDate
		}
	}
	if c.CreatedAt.IsZero() {
		return nil
	}
	ts := c.CreatedAt
	return &ts
}
