package report

import (
	"sort"
	"strings"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

const dateColumnLayout = "2006-01-02"

// ColumnFilters restricts report rows by computed column values. Each filter
// is a multi-select: empty means no restriction, otherwise the row value must
// match one entry (case-insensitive). A row failing any active filter is
// dropped before its candidates are counted, so totals reflect only visible
// rows.
type ColumnFilters struct {
	DatesReceived  []string
	ClientNames    []string
	JobTitles      []string
	RecruiterNames []string
}

// AggregateRequest parameterizes one pipeline aggregation.
type AggregateRequest struct {
	Scope        Scope
	Range        DateRange
	Mode         TemporalMode
	Groups       []StatusGroup
	Filters      ColumnFilters
	// OwnOnly restricts counts to candidates the acting user personally
	// created. Off, counts cover every candidate of an in-scope job.
	OwnOnly      bool
	ActingUserID string
}

// BucketCount is one bucket cell of a row, carrying the candidate ids behind
// the count for drill-down.
type BucketCount struct {
	Name         string   `json:"name"`
	Count        int      `json:"count"`
	CandidateIDs []string `json:"candidate_ids,omitempty"`
}

// JobRow is one report line for an in-scope job.
type JobRow struct {
	JobID              string        `json:"job_id"`
	JobTitle           string        `json:"job_title"`
	ClientName         string        `json:"client_name"`
	DateReceived       string        `json:"date_received"`
	RecruiterNames     []string      `json:"recruiter_names"`
	Positions          int           `json:"positions"`
	PositionsRemaining int           `json:"positions_remaining"`
	Buckets            []BucketCount `json:"buckets"`
}

// Totals is the column-wise sum over all emitted rows. Unclassified counts
// candidates whose status or explicit attribution could not be recognized;
// dashboards do not render it but it keeps silent exclusions observable.
type Totals struct {
	Positions          int           `json:"positions"`
	PositionsRemaining int           `json:"positions_remaining"`
	Buckets            []BucketCount `json:"buckets"`
	Unclassified       int           `json:"unclassified"`
}

// PipelineReport is the aggregation result a dashboard renders.
type PipelineReport struct {
	Rows   []JobRow `json:"rows"`
	Totals Totals   `json:"totals"`
}

// Aggregator resolves display names for report columns. It is pure over the
// collections it was built from and safe to reuse across calls.
type Aggregator struct {
	clientNames map[string]string
	staffNames  map[string]string
}

// NewAggregator indexes clients and staff for column rendering.
func NewAggregator(clients []domain.Client, staff []domain.StaffUser) *Aggregator {
	clientNames := make(map[string]string, len(clients))
	for i := range clients {
		clientNames[clients[i].ID] = clients[i].CompanyName
	}
	staffNames := make(map[string]string, len(staff))
	for i := range staff {
		staffNames[staff[i].ID] = staff[i].Name
	}
	return &Aggregator{clientNames: clientNames, staffNames: staffNames}
}

// Aggregate computes per-job funnel rows and grand totals. Candidates of an
// in-scope job are counted regardless of who created them unless OwnOnly is
// set; the job itself must be in scope.
func (a *Aggregator) Aggregate(jobs []domain.Job, candidates []domain.Candidate, req AggregateRequest) *PipelineReport {
	byJob := groupCandidatesByJob(candidates)

	rows := make([]JobRow, 0, len(jobs))
	totals := Totals{Buckets: emptyBuckets(req.Groups)}

	for i := range jobs {
		job := &jobs[i]
		if !req.Scope.Contains(job.CreatedByID) {
			continue
		}

		row := JobRow{
			JobID:          job.ID,
			JobTitle:       job.Title,
			ClientName:     a.clientNames[job.ClientID],
			DateReceived:   job.CreatedAt.Format(dateColumnLayout),
			RecruiterNames: a.recruiterNames(job.RecruiterIDs),
			Positions:      job.NoOfPositions,
		}
		if !passesColumnFilters(&row, req.Filters) {
			continue
		}

		jobCandidates := byJob[job.ID]
		row.Buckets, totals.Unclassified = a.countBuckets(jobCandidates, req, totals.Unclassified)
		row.PositionsRemaining = row.Positions - joinedCount(req.Groups, row.Buckets)

		totals.Positions += row.Positions
		totals.PositionsRemaining += row.PositionsRemaining
		for b := range row.Buckets {
			totals.Buckets[b].Count += row.Buckets[b].Count
			totals.Buckets[b].CandidateIDs = append(totals.Buckets[b].CandidateIDs, row.Buckets[b].CandidateIDs...)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].DateReceived != rows[j].DateReceived {
			return rows[i].DateReceived > rows[j].DateReceived
		}
		return rows[i].JobID < rows[j].JobID
	})

	return &PipelineReport{Rows: rows, Totals: totals}
}

// countBuckets fills one bucket column set over the given candidates and
// accumulates the unclassified diagnostic.
func (a *Aggregator) countBuckets(candidates []*domain.Candidate, req AggregateRequest, unclassified int) ([]BucketCount, int) {
	buckets := emptyBuckets(req.Groups)

	for _, c := range candidates {
		if req.OwnOnly && c.CreatedByID != req.ActingUserID {
			continue
		}
		if isUnclassified(c) {
			unclassified++
			continue
		}
		for g := range req.Groups {
			if a.candidateInBucket(c, &req.Groups[g], req.Mode, req.Range) {
				buckets[g].Count++
				buckets[g].CandidateIDs = append(buckets[g].CandidateIDs, c.ID)
			}
		}
	}
	return buckets, unclassified
}

func (a *Aggregator) candidateInBucket(c *domain.Candidate, group *StatusGroup, mode TemporalMode, dateRange DateRange) bool {
	var bucketStatus domain.CandidateStatus

	if group.Negative != nil {
		if AttributeNegative(c, group.Negative.MainStatus) != group.Negative.Actor {
			return false
		}
		bucketStatus = group.Negative.MainStatus
	} else {
		status, ok := domain.NormalizeStatus(string(c.Status))
		if !ok {
			return false
		}
		matched := false
		for _, s := range group.Statuses {
			if s == status {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
		bucketStatus = status
	}

	if mode == ModeStatus {
		return dateRange.InRange(StatusTimestamp(c, bucketStatus))
	}
	if c.CreatedAt.IsZero() {
		return dateRange.InRange(nil)
	}
	ts := c.CreatedAt
	return dateRange.InRange(&ts)
}

// isUnclassified flags candidates no bucket may count: unknown status, or a
// terminal status with an unrecognized explicit attribution.
func isUnclassified(c *domain.Candidate) bool {
	status, ok := domain.NormalizeStatus(string(c.Status))
	if !ok {
		// Legacy Reject/Drop spellings fall through to the same
		// attribution check as the canonical statuses.
		switch {
		case matchesNegative(c.Status, domain.StatusRejected):
			status = domain.StatusRejected
		case matchesNegative(c.Status, domain.StatusDropped):
			status = domain.StatusDropped
		default:
			return true
		}
	}
	switch status {
	case domain.StatusRejected:
		return c.RejectedBy != nil && !knownActor(*c.RejectedBy)
	case domain.StatusDropped:
		return c.DroppedBy != nil && !knownActor(*c.DroppedBy)
	}
	return false
}

func knownActor(actor domain.NegativeActor) bool {
	switch actor {
	case domain.ActorManager, domain.ActorMentor, domain.ActorClient:
		return true
	}
	return false
}

func (a *Aggregator) recruiterNames(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := a.staffNames[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

func groupCandidatesByJob(candidates []domain.Candidate) map[string][]*domain.Candidate {
	byJob := make(map[string][]*domain.Candidate)
	for i := range candidates {
		byJob[candidates[i].JobID] = append(byJob[candidates[i].JobID], &candidates[i])
	}
	return byJob
}

func emptyBuckets(groups []StatusGroup) []BucketCount {
	buckets := make([]BucketCount, len(groups))
	for i := range groups {
		buckets[i].Name = groups[i].Name
	}
	return buckets
}

// joinedCount locates the Joined bucket so positions-remaining can subtract
// it. Without a Joined group nothing is subtracted.
func joinedCount(groups []StatusGroup, buckets []BucketCount) int {
	for i := range groups {
		if groups[i].Negative != nil {
			continue
		}
		for _, s := range groups[i].Statuses {
			if s == domain.StatusJoined {
				return buckets[i].Count
			}
		}
	}
	return 0
}

func passesColumnFilters(row *JobRow, filters ColumnFilters) bool {
	if !valueSelected(row.DateReceived, filters.DatesReceived) {
		return false
	}
	if !valueSelected(row.ClientName, filters.ClientNames) {
		return false
	}
	if !valueSelected(row.JobTitle, filters.JobTitles) {
		return false
	}
	if len(filters.RecruiterNames) > 0 && !anySelected(row.RecruiterNames, filters.RecruiterNames) {
		return false
	}
	return true
}

func valueSelected(value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if strings.EqualFold(value, s) {
			return true
		}
	}
	return false
}

func anySelected(values, selected []string) bool {
	for _, v := range values {
		if valueSelected(v, selected) {
			return true
		}
	}
	return false
}
