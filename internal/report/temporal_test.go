package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

func tsPtr(t time.Time) *time.Time { return &t }

func TestDateRange_InRange(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	end := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		r        DateRange
		ts       *time.Time
		expected bool
	}{
		{
			name:     "no bounds admits everything",
			r:        DateRange{},
			ts:       tsPtr(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)),
			expected: true,
		},
		{
			name:     "no bounds admits missing timestamp",
			r:        DateRange{},
			ts:       nil,
			expected: true,
		},
		{
			name:     "active range excludes missing timestamp",
			r:        DateRange{Start: &start},
			ts:       nil,
			expected: false,
		},
		{
			name:     "start is inclusive from midnight",
			r:        DateRange{Start: &start},
			ts:       tsPtr(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
			expected: true,
		},
		{
			name:     "day before start excluded",
			r:        DateRange{Start: &start},
			ts:       tsPtr(time.Date(2025, 3, 9, 23, 59, 59, 999_000_000, time.UTC)),
			expected: false,
		},
		{
			name:     "end of end day included",
			r:        DateRange{End: &end},
			ts:       tsPtr(time.Date(2025, 3, 20, 23, 59, 59, 999_000_000, time.UTC)),
			expected: true,
		},
		{
			name:     "one millisecond past end excluded",
			r:        DateRange{End: &end},
			ts:       tsPtr(time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)),
			expected: false,
		},
		{
			name:     "inside both bounds",
			r:        DateRange{Start: &start, End: &end},
			ts:       tsPtr(time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.r.InRange(tt.ts))
		})
	}
}

func TestStatusTimestamp(t *testing.T) {
	created := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	shortlisted := time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)
	interviewedAgain := time.Date(2025, 1, 12, 10, 0, 0, 0, time.UTC)
	joining := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	c := &domain.Candidate{
		Status:    domain.StatusJoined,
		CreatedAt: created,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: "New", Timestamp: created},
			{Status: "Screened", Timestamp: shortlisted},
			{Status: "Interview", Timestamp: time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)},
			{Status: "Interviewed", Timestamp: interviewedAgain},
		},
		JoiningDate: &joining,
	}

	t.Run("latest matching history entry wins", func(t *testing.T) {
		got := StatusTimestamp(c, domain.StatusInterviewed)
		assert.Equal(t, interviewedAgain, *got)
	})

	t.Run("alias entries are matched", func(t *testing.T) {
		got := StatusTimestamp(c, domain.StatusShortlisted)
		assert.Equal(t, shortlisted, *got)
	})

	t.Run("joined falls back to joining date", func(t *testing.T) {
		got := StatusTimestamp(c, domain.StatusJoined)
		assert.Equal(t, joining, *got)
	})

	t.Run("selected falls back to creation without selection date", func(t *testing.T) {
		got := StatusTimestamp(c, domain.StatusSelected)
		assert.Equal(t, created, *got)
	})

	t.Run("missing everything yields nil", func(t *testing.T) {
		empty := &domain.Candidate{Status: domain.StatusNew}
		assert.Nil(t, StatusTimestamp(empty, domain.StatusNew))
	})
}
