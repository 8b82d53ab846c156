package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 11, 0, 0, 0, time.UTC)
}

type fixture struct {
	staff      []domain.StaffUser
	clients    []domain.Client
	jobs       []domain.Job
	candidates []domain.Candidate
	agg        *Aggregator
}

func newFixture() *fixture {
	f := &fixture{
		staff: []domain.StaffUser{
			staffMember("admin", domain.DesignationAdmin, ""),
			staffMember("mgr", domain.DesignationManager, "admin"),
			staffMember("mentor", domain.DesignationMentor, "mgr"),
			staffMember("rec-1", domain.DesignationRecruiter, "mentor"),
			staffMember("rec-2", domain.DesignationRecruiter, "mentor"),
			staffMember("rec-3", domain.DesignationRecruiter, "admin"),
		},
		clients: []domain.Client{
			{ID: "client-1", CompanyName: "Acme Corp"},
			{ID: "client-2", CompanyName: "Globex"},
		},
		jobs: []domain.Job{
			{ID: "job-1", Title: "Backend Engineer", ClientID: "client-1", CreatedByID: "rec-1",
				RecruiterIDs: []string{"rec-1", "rec-2"}, NoOfPositions: 3, CreatedAt: date(2025, 5, 1)},
			{ID: "job-2", Title: "Data Analyst", ClientID: "client-2", CreatedByID: "rec-3",
				RecruiterIDs: []string{"rec-3"}, NoOfPositions: 2, CreatedAt: date(2025, 5, 2)},
			{ID: "job-3", Title: "QA Engineer", ClientID: "client-1", CreatedByID: "mentor",
				RecruiterIDs: []string{"rec-2"}, NoOfPositions: 1, CreatedAt: date(2025, 4, 20)},
		},
	}

	f.candidates = []domain.Candidate{
		{ID: "cand-new", JobID: "job-1", CreatedByID: "rec-1", Status: domain.StatusNew,
			CreatedAt: date(2025, 5, 3),
			StatusHistory: []domain.StatusHistoryEntry{
				{Status: "New", Timestamp: date(2025, 5, 3)},
			}},
		{ID: "cand-joined", JobID: "job-1", CreatedByID: "rec-1", Status: domain.StatusJoined,
			CreatedAt: date(2025, 5, 4),
			StatusHistory: []domain.StatusHistoryEntry{
				{Status: "New", Timestamp: date(2025, 5, 4)},
				{Status: "Interviewed", Timestamp: date(2025, 5, 6)},
				{Status: "Joined", Timestamp: date(2025, 5, 10)},
			}},
		{ID: "cand-rej-client", JobID: "job-1", CreatedByID: "rec-1", Status: domain.StatusRejected,
			CreatedAt: date(2025, 5, 4),
			StatusHistory: []domain.StatusHistoryEntry{
				{Status: "New", Timestamp: date(2025, 5, 4)},
				{Status: "Interviewed", Timestamp: date(2025, 5, 7)},
				{Status: "Rejected", Timestamp: date(2025, 5, 8)},
			}},
		{ID: "cand-rej-manager", JobID: "job-1", CreatedByID: "rec-1", Status: domain.StatusRejected,
			CreatedAt: date(2025, 5, 5),
			StatusHistory: []domain.StatusHistoryEntry{
				{Status: "New", Timestamp: date(2025, 5, 5)},
				{Status: "Rejected", Timestamp: date(2025, 5, 6)},
			}},
		{ID: "cand-garbage", JobID: "job-1", CreatedByID: "rec-1", Status: domain.CandidateStatus("Telephonic"),
			CreatedAt: date(2025, 5, 5)},
		{ID: "cand-shortlisted", JobID: "job-1", CreatedByID: "rec-2", Status: domain.StatusShortlisted,
			CreatedAt: date(2025, 5, 6),
			StatusHistory: []domain.StatusHistoryEntry{
				{Status: "New", Timestamp: date(2025, 5, 6)},
				{Status: "Screened", Timestamp: date(2025, 5, 7)},
			}},
		{ID: "cand-outside", JobID: "job-2", CreatedByID: "rec-3", Status: domain.StatusNew,
			CreatedAt: date(2025, 5, 9)},
		{ID: "cand-offer", JobID: "job-3", CreatedByID: "rec-2", Status: domain.CandidateStatus("Offer"),
			CreatedAt: date(2025, 4, 22),
			StatusHistory: []domain.StatusHistoryEntry{
				{Status: "New", Timestamp: date(2025, 4, 22)},
				{Status: "Offer", Timestamp: date(2025, 4, 28)},
			}},
	}

	f.agg = NewAggregator(f.clients, f.staff)
	return f
}

func (f *fixture) scopeFor(id string) Scope {
	for i := range f.staff {
		if f.staff[i].ID == id {
			return ResolveScope(&f.staff[i], f.staff)
		}
	}
	panic("unknown staff id " + id)
}

func bucketByName(t *testing.T, buckets []BucketCount, name string) BucketCount {
	t.Helper()
	for _, b := range buckets {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("bucket %q not found", name)
	return BucketCount{}
}

func TestAggregate_AdminSeesEverything(t *testing.T) {
	f := newFixture()
	out := f.agg.Aggregate(f.jobs, f.candidates, AggregateRequest{
		Scope:  f.scopeFor("admin"),
		Mode:   ModeCreation,
		Groups: DefaultStatusGroups(),
	})

	require.Len(t, out.Rows, 3)
	// Display order: newest date first, ids break ties.
	assert.Equal(t, []string{"job-2", "job-1", "job-3"},
		[]string{out.Rows[0].JobID, out.Rows[1].JobID, out.Rows[2].JobID})

	assert.Equal(t, 2, bucketByName(t, out.Totals.Buckets, "New").Count)
	assert.Equal(t, 1, bucketByName(t, out.Totals.Buckets, "Shortlisted").Count)
	assert.Equal(t, 1, bucketByName(t, out.Totals.Buckets, "Selected").Count)
	assert.Equal(t, 1, bucketByName(t, out.Totals.Buckets, "Joined").Count)
	assert.Equal(t, 1, bucketByName(t, out.Totals.Buckets, "Rejected by Manager").Count)
	assert.Equal(t, 1, bucketByName(t, out.Totals.Buckets, "Rejected by Client").Count)
	assert.Equal(t, 0, bucketByName(t, out.Totals.Buckets, "Dropped by Client").Count)

	assert.Equal(t, 6, out.Totals.Positions)
	assert.Equal(t, 5, out.Totals.PositionsRemaining)
	assert.Equal(t, 1, out.Totals.Unclassified)
}

func TestAggregate_RowColumnsAndDrilldown(t *testing.T) {
	f := newFixture()
	out := f.agg.Aggregate(f.jobs, f.candidates, AggregateRequest{
		Scope:  f.scopeFor("admin"),
		Mode:   ModeCreation,
		Groups: DefaultStatusGroups(),
	})

	row := out.Rows[1]
	require.Equal(t, "job-1", row.JobID)
	assert.Equal(t, "Acme Corp", row.ClientName)
	assert.Equal(t, "2025-05-01", row.DateReceived)
	assert.Equal(t, []string{"staff-rec-1", "staff-rec-2"}, row.RecruiterNames)
	assert.Equal(t, 3, row.Positions)
	assert.Equal(t, 2, row.PositionsRemaining)

	joined := bucketByName(t, row.Buckets, "Joined")
	assert.Equal(t, []string{"cand-joined"}, joined.CandidateIDs)
	rejected := bucketByName(t, row.Buckets, "Rejected by Client")
	assert.Equal(t, []string{"cand-rej-client"}, rejected.CandidateIDs)
}

func TestAggregate_LegacySpellingWithUnknownActorIsUnclassified(t *testing.T) {
	f := newFixture()
	actor := domain.NegativeActor("HR")
	f.candidates = append(f.candidates,
		domain.Candidate{ID: "cand-legacy-rej", JobID: "job-1", CreatedByID: "rec-1",
			Status: domain.CandidateStatus("Reject"), RejectedBy: &actor, CreatedAt: date(2025, 5, 7)},
		domain.Candidate{ID: "cand-legacy-drop", JobID: "job-1", CreatedByID: "rec-1",
			Status: domain.CandidateStatus("Drop"), DroppedBy: &actor, CreatedAt: date(2025, 5, 7)},
	)

	out := f.agg.Aggregate(f.jobs, f.candidates, AggregateRequest{
		Scope:  f.scopeFor("admin"),
		Mode:   ModeCreation,
		Groups: DefaultStatusGroups(),
	})

	// The fixture's garbage status plus the two legacy spellings whose
	// explicit actor is unrecognized. They must not land in any bucket.
	assert.Equal(t, 3, out.Totals.Unclassified)
	for _, name := range []string{"Rejected by Manager", "Rejected by Client", "Dropped by Manager", "Dropped by Client"} {
		assert.NotContains(t, bucketByName(t, out.Totals.Buckets, name).CandidateIDs, "cand-legacy-rej", "bucket %s", name)
		assert.NotContains(t, bucketByName(t, out.Totals.Buckets, name).CandidateIDs, "cand-legacy-drop", "bucket %s", name)
	}
}

func TestAggregate_TotalsBucketsCarryCandidateIDs(t *testing.T) {
	f := newFixture()
	out := f.agg.Aggregate(f.jobs, f.candidates, AggregateRequest{
		Scope:  f.scopeFor("admin"),
		Mode:   ModeCreation,
		Groups: DefaultStatusGroups(),
	})

	// Totals buckets aggregate the per-row candidate lists, so a totals
	// drilldown resolves the same ids the counts were built from.
	newBucket := bucketByName(t, out.Totals.Buckets, "New")
	assert.Equal(t, newBucket.Count, len(newBucket.CandidateIDs))
	assert.ElementsMatch(t, []string{"cand-new", "cand-outside"}, newBucket.CandidateIDs)

	joined := bucketByName(t, out.Totals.Buckets, "Joined")
	assert.Equal(t, []string{"cand-joined"}, joined.CandidateIDs)
}

func TestAggregate_MentorScopeExcludesForeignJobs(t *testing.T) {
	f := newFixture()
	out := f.agg.Aggregate(f.jobs, f.candidates, AggregateRequest{
		Scope:  f.scopeFor("mentor"),
		Mode:   ModeCreation,
		Groups: DefaultStatusGroups(),
	})

	require.Len(t, out.Rows, 2)
	for _, row := range out.Rows {
		assert.NotEqual(t, "job-2", row.JobID)
	}
	// Candidates inherit visibility from the job: the shortlisted candidate
	// created by rec-2 still counts on the in-scope job-1.
	assert.Equal(t, 1, bucketByName(t, out.Totals.Buckets, "Shortlisted").Count)
}

func TestAggregate_TemporalModes(t *testing.T) {
	f := newFixture()
	start := date(2025, 5, 9)
	end := date(2025, 5, 12)
	base := AggregateRequest{
		Scope:  f.scopeFor("admin"),
		Range:  DateRange{Start: &start, End: &end},
		Groups: DefaultStatusGroups(),
	}

	creation := base
	creation.Mode = ModeCreation
	out := f.agg.Aggregate(f.jobs, f.candidates, creation)
	// Only cand-outside was created inside the window.
	assert.Equal(t, 0, bucketByName(t, out.Totals.Buckets, "Joined").Count)
	assert.Equal(t, 1, bucketByName(t, out.Totals.Buckets, "New").Count)

	status := base
	status.Mode = ModeStatus
	out = f.agg.Aggregate(f.jobs, f.candidates, status)
	// cand-joined moved to Joined on the 10th, inside the window.
	assert.Equal(t, 1, bucketByName(t, out.Totals.Buckets, "Joined").Count)
	assert.Equal(t, 0, bucketByName(t, out.Totals.Buckets, "Rejected by Client").Count)
}

func TestAggregate_RecruiterWithEmptyWindowSeesZeroes(t *testing.T) {
	f := newFixture()
	start := date(2026, 1, 1)
	end := date(2026, 1, 1)
	out := f.agg.Aggregate(f.jobs, f.candidates, AggregateRequest{
		Scope:  f.scopeFor("rec-1"),
		Range:  DateRange{Start: &start, End: &end},
		Mode:   ModeStatus,
		Groups: DefaultStatusGroups(),
	})

	require.Len(t, out.Rows, 1)
	for _, b := range out.Totals.Buckets {
		assert.Zero(t, b.Count, "bucket %s", b.Name)
	}
}

func TestAggregate_ColumnFiltersDropRowsBeforeTotals(t *testing.T) {
	f := newFixture()
	out := f.agg.Aggregate(f.jobs, f.candidates, AggregateRequest{
		Scope:   f.scopeFor("admin"),
		Mode:    ModeCreation,
		Groups:  DefaultStatusGroups(),
		Filters: ColumnFilters{ClientNames: []string{"acme corp"}},
	})

	require.Len(t, out.Rows, 2)
	assert.Equal(t, 4, out.Totals.Positions)
	// job-2's New candidate no longer contributes.
	assert.Equal(t, 1, bucketByName(t, out.Totals.Buckets, "New").Count)

	out = f.agg.Aggregate(f.jobs, f.candidates, AggregateRequest{
		Scope:   f.scopeFor("admin"),
		Mode:    ModeCreation,
		Groups:  DefaultStatusGroups(),
		Filters: ColumnFilters{RecruiterNames: []string{"staff-rec-3"}},
	})
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "job-2", out.Rows[0].JobID)
}

func TestAggregate_OwnOnlyRestrictsToCreator(t *testing.T) {
	f := newFixture()
	out := f.agg.Aggregate(f.jobs, f.candidates, AggregateRequest{
		Scope:        f.scopeFor("rec-1"),
		Mode:         ModeCreation,
		Groups:       DefaultStatusGroups(),
		OwnOnly:      true,
		ActingUserID: "rec-1",
	})

	require.Len(t, out.Rows, 1)
	assert.Equal(t, 0, bucketByName(t, out.Totals.Buckets, "Shortlisted").Count)
	assert.Equal(t, 1, bucketByName(t, out.Totals.Buckets, "New").Count)
}

func TestAggregate_Deterministic(t *testing.T) {
	f := newFixture()
	req := AggregateRequest{
		Scope:  f.scopeFor("admin"),
		Mode:   ModeStatus,
		Groups: DefaultStatusGroups(),
	}

	first := f.agg.Aggregate(f.jobs, f.candidates, req)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, f.agg.Aggregate(f.jobs, f.candidates, req))
	}
}

func TestAggregateByRecruiter(t *testing.T) {
	f := newFixture()
	out := f.agg.AggregateByRecruiter(f.jobs, f.candidates, f.staff, AggregateRequest{
		Scope:  f.scopeFor("mentor"),
		Mode:   ModeCreation,
		Groups: DefaultStatusGroups(),
	})

	require.Len(t, out.Rows, 3)

	byID := map[string]RecruiterRow{}
	for _, row := range out.Rows {
		byID[row.StaffID] = row
	}
	require.Contains(t, byID, "rec-1")
	require.Contains(t, byID, "rec-2")

	assert.Equal(t, 1, bucketByName(t, byID["rec-1"].Buckets, "New").Count)
	assert.Equal(t, 1, bucketByName(t, byID["rec-1"].Buckets, "Joined").Count)
	assert.Equal(t, 1, bucketByName(t, byID["rec-2"].Buckets, "Shortlisted").Count)
	assert.Equal(t, 1, bucketByName(t, byID["rec-2"].Buckets, "Selected").Count)
	// rec-3's candidate sits on an out-of-scope job.
	assert.NotContains(t, byID, "rec-3")
	assert.Equal(t, 1, bucketByName(t, out.Totals.Buckets, "New").Count)
}

func TestNormalizeStatusAliases(t *testing.T) {
	tests := []struct {
		raw      string
		expected domain.CandidateStatus
		ok       bool
	}{
		{"New", domain.StatusNew, true},
		{"Screening", domain.StatusNew, true},
		{"Under Review", domain.StatusNew, true},
		{"Screen", domain.StatusShortlisted, true},
		{"Screened", domain.StatusShortlisted, true},
		{"Interview", domain.StatusInterviewed, true},
		{"Offer", domain.StatusSelected, true},
		{"Hired", domain.StatusJoined, true},
		{"Hold", domain.StatusHold, true},
		{"hired", "", false},
		{"Telephonic", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := domain.NormalizeStatus(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw=%q", tt.raw)
		assert.Equal(t, tt.expected, got, "raw=%q", tt.raw)
	}
}
