package report

import (
	"sort"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

// RecruiterRow is one line of the per-recruiter performance table: bucket
// counts over the candidates that staff member created on in-scope jobs.
type RecruiterRow struct {
	StaffID   string        `json:"staff_id"`
	StaffName string        `json:"staff_name"`
	Buckets   []BucketCount `json:"buckets"`
}

// RecruiterReport aggregates candidate counts by creator.
type RecruiterReport struct {
	Rows   []RecruiterRow `json:"rows"`
	Totals Totals         `json:"totals"`
}

// AggregateByRecruiter groups the same bucket computation by candidate
// creator instead of by job. Only candidates on in-scope jobs participate,
// and only creators inside the scope get a row. OwnOnly is meaningless here
// and ignored.
func (a *Aggregator) AggregateByRecruiter(jobs []domain.Job, candidates []domain.Candidate, staff []domain.StaffUser, req AggregateRequest) *RecruiterReport {
	inScopeJobs := make(map[string]struct{}, len(jobs))
	for i := range jobs {
		if req.Scope.Contains(jobs[i].CreatedByID) {
			inScopeJobs[jobs[i].ID] = struct{}{}
		}
	}

	byCreator := make(map[string][]*domain.Candidate)
	for i := range candidates {
		c := &candidates[i]
		if _, ok := inScopeJobs[c.JobID]; !ok {
			continue
		}
		byCreator[c.CreatedByID] = append(byCreator[c.CreatedByID], c)
	}

	countReq := req
	countReq.OwnOnly = false

	rows := make([]RecruiterRow, 0, len(byCreator))
	totals := Totals{Buckets: emptyBuckets(req.Groups)}

	for i := range staff {
		member := &staff[i]
		if !req.Scope.Contains(member.ID) {
			continue
		}
		row := RecruiterRow{StaffID: member.ID, StaffName: member.Name}
		row.Buckets, totals.Unclassified = a.countBuckets(byCreator[member.ID], countReq, totals.Unclassified)
		for b := range row.Buckets {
			totals.Buckets[b].Count += row.Buckets[b].Count
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].StaffName != rows[j].StaffName {
			return rows[i].StaffName < rows[j].StaffName
		}
		return rows[i].StaffID < rows[j].StaffID
	})

	return &RecruiterReport{Rows: rows, Totals: totals}
}
