package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

func actorPtr(a domain.NegativeActor) *domain.NegativeActor { return &a }

func historyThrough(statuses ...string) []domain.StatusHistoryEntry {
	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	entries := make([]domain.StatusHistoryEntry, len(statuses))
	for i, s := range statuses {
		entries[i] = domain.StatusHistoryEntry{Status: s, Timestamp: base.AddDate(0, 0, i)}
	}
	return entries
}

func TestAttributeNegative(t *testing.T) {
	tests := []struct {
		name       string
		candidate  domain.Candidate
		mainStatus domain.CandidateStatus
		expected   Attribution
	}{
		{
			name:       "wrong bucket is not applicable",
			candidate:  domain.Candidate{Status: domain.StatusJoined},
			mainStatus: domain.StatusRejected,
			expected:   AttributionNotApplicable,
		},
		{
			name:       "legacy Reject spelling matches the rejected bucket",
			candidate:  domain.Candidate{Status: "Reject", StatusHistory: historyThrough("New")},
			mainStatus: domain.StatusRejected,
			expected:   AttributionManager,
		},
		{
			name:       "dropped candidate not applicable to rejected bucket",
			candidate:  domain.Candidate{Status: domain.StatusDropped},
			mainStatus: domain.StatusRejected,
			expected:   AttributionNotApplicable,
		},
		{
			name: "explicit mentor maps to manager",
			candidate: domain.Candidate{
				Status:        domain.StatusRejected,
				RejectedBy:    actorPtr(domain.ActorMentor),
				StatusHistory: historyThrough("New", "Interviewed"),
			},
			mainStatus: domain.StatusRejected,
			expected:   AttributionManager,
		},
		{
			name: "explicit client wins over missing interview history",
			candidate: domain.Candidate{
				Status:    domain.StatusDropped,
				DroppedBy: actorPtr(domain.ActorClient),
			},
			mainStatus: domain.StatusDropped,
			expected:   AttributionClient,
		},
		{
			name: "unknown explicit value does not guess",
			candidate: domain.Candidate{
				Status:        domain.StatusRejected,
				RejectedBy:    actorPtr(domain.NegativeActor("HR Ops")),
				StatusHistory: historyThrough("New", "Interviewed"),
			},
			mainStatus: domain.StatusRejected,
			expected:   AttributionNotApplicable,
		},
		{
			name: "heuristic: interview reached means client",
			candidate: domain.Candidate{
				Status:        domain.StatusRejected,
				StatusHistory: historyThrough("New", "Shortlisted", "Interviewed", "Rejected"),
			},
			mainStatus: domain.StatusRejected,
			expected:   AttributionClient,
		},
		{
			name: "heuristic: interview alias counts",
			candidate: domain.Candidate{
				Status:        domain.StatusDropped,
				StatusHistory: historyThrough("New", "Interview"),
			},
			mainStatus: domain.StatusDropped,
			expected:   AttributionClient,
		},
		{
			name: "heuristic: never interviewed means manager",
			candidate: domain.Candidate{
				Status:        domain.StatusRejected,
				StatusHistory: historyThrough("New", "Shortlisted", "Rejected"),
			},
			mainStatus: domain.StatusRejected,
			expected:   AttributionManager,
		},
		{
			name:       "empty history defaults to manager",
			candidate:  domain.Candidate{Status: domain.StatusDropped},
			mainStatus: domain.StatusDropped,
			expected:   AttributionManager,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AttributeNegative(&tt.candidate, tt.mainStatus))
		})
	}
}

func TestAttributeNegative_RemovingInterviewFlipsAttribution(t *testing.T) {
	c := domain.Candidate{
		Status:        domain.StatusRejected,
		StatusHistory: historyThrough("New", "Shortlisted", "Interviewed", "Rejected"),
	}
	assert.Equal(t, AttributionClient, AttributeNegative(&c, domain.StatusRejected))

	c.StatusHistory = historyThrough("New", "Shortlisted", "Rejected")
	assert.Equal(t, AttributionManager, AttributeNegative(&c, domain.StatusRejected))
}
