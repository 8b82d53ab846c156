package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

func reportFixture(t *testing.T) (*ReportService, *domain.StaffUser, *domain.StaffUser) {
	t.Helper()

	admin := domain.StaffUser{ID: "adm", Name: "Asha", Designation: domain.DesignationAdmin, Active: true}
	recruiter := domain.StaffUser{ID: "rec", Name: "Ravi", Designation: domain.DesignationRecruiter, Active: true}
	other := domain.StaffUser{ID: "oth", Name: "Omar", Designation: domain.DesignationRecruiter, Active: true}

	staffRepo := newFakeStaffRepo(admin, recruiter, other)
	clientRepo := newFakeClientRepo(domain.Client{ID: "cl-1", CompanyName: "Acme"})
	jobRepo := newFakeJobRepo(
		domain.Job{ID: "job-1", Title: "Backend Engineer", ClientID: "cl-1", CreatedByID: "rec", NoOfPositions: 2},
		domain.Job{ID: "job-2", Title: "Data Analyst", ClientID: "cl-1", CreatedByID: "oth", NoOfPositions: 1},
	)
	candidateRepo := newFakeCandidateRepo(
		domain.Candidate{ID: "c1", JobID: "job-1", CreatedByID: "rec", Status: domain.StatusNew},
		domain.Candidate{ID: "c2", JobID: "job-1", CreatedByID: "rec", Status: domain.StatusInterviewed},
		domain.Candidate{ID: "c3", JobID: "job-2", CreatedByID: "oth", Status: domain.StatusJoined},
	)

	svc := NewReportService(ReportDependencies{
		StaffRepo:     staffRepo,
		JobRepo:       jobRepo,
		ClientRepo:    clientRepo,
		CandidateRepo: candidateRepo,
		Logger:        zap.NewNop(),
	})
	return svc, &admin, &recruiter
}

func TestPipelineReportScopesRows(t *testing.T) {
	svc, admin, recruiter := reportFixture(t)

	adminReport, err := svc.PipelineReport(context.Background(), admin, ReportQuery{})
	require.NoError(t, err)
	assert.Len(t, adminReport.Rows, 2)
	assert.Equal(t, 3, adminReport.Totals.Positions)

	recruiterReport, err := svc.PipelineReport(context.Background(), recruiter, ReportQuery{})
	require.NoError(t, err)
	require.Len(t, recruiterReport.Rows, 1)
	assert.Equal(t, "job-1", recruiterReport.Rows[0].JobID)
	assert.Equal(t, 2, recruiterReport.Totals.Positions)
}

func TestDrilldownReturnsBucketCandidates(t *testing.T) {
	svc, admin, _ := reportFixture(t)

	candidates, err := svc.Drilldown(context.Background(), admin, ReportQuery{}, "job-1", "Interviewed")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "c2", candidates[0].ID)
}

func TestDrilldownTotalsSpansJobs(t *testing.T) {
	svc, admin, _ := reportFixture(t)

	// An empty job id drills into the totals row, which must resolve the
	// same candidates its counts were built from across every row.
	candidates, err := svc.Drilldown(context.Background(), admin, ReportQuery{}, "", "New")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "c1", candidates[0].ID)

	candidates, err = svc.Drilldown(context.Background(), admin, ReportQuery{}, "", "Joined")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "c3", candidates[0].ID)
}

func TestDrilldownUnknownJobFails(t *testing.T) {
	svc, admin, _ := reportFixture(t)

	_, err := svc.Drilldown(context.Background(), admin, ReportQuery{}, "job-404", "New")
	assert.Error(t, err)
}
