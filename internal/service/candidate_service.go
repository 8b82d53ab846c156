package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
	"github.com/spec-kit/recruiting-pipeline/internal/events"
	"github.com/spec-kit/recruiting-pipeline/internal/repository"
	apperrors "github.com/spec-kit/recruiting-pipeline/pkg/util/errorutil"
)

// CandidateService coordinates candidate pipeline workflows.
type CandidateService struct {
	candidates repository.CandidateRepository
	jobs       *JobService
	dispatcher events.Dispatcher
}

// CandidateDependencies bundles requirements for the candidate service.
type CandidateDependencies struct {
	CandidateRepo repository.CandidateRepository
	Jobs          *JobService
	Dispatcher    events.Dispatcher
}

// CandidateCreateInput describes candidate creation payload.
type CandidateCreateInput struct {
	JobID         string
	Status        string
	DynamicFields map[string]string
}

// StatusChangeInput describes one pipeline transition.
type StatusChangeInput struct {
	Status          string
	Comment         string
	RejectionReason string
	// Actor attributes an explicit rejection or drop. Nil leaves
	// attribution to the interview-presence heuristic.
	Actor         *domain.NegativeActor
	JoiningDate   *time.Time
	SelectionDate *time.Time
}

// CandidateListFilters describes listing parameters.
type CandidateListFilters struct {
	JobID       *string
	Status      *domain.CandidateStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	OwnOnly     bool
	Limit       int
	Offset      int
}

// NewCandidateService constructs the service.
func NewCandidateService(deps CandidateDependencies) *CandidateService {
	return &CandidateService{
		candidates: deps.CandidateRepo,
		jobs:       deps.Jobs,
		dispatcher: deps.Dispatcher,
	}
}

// CreateCandidate pipelines a new candidate against a job the actor can see.
func (s *CandidateService) CreateCandidate(ctx context.Context, actor *domain.StaffUser, input CandidateCreateInput) (*domain.Candidate, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	if _, err := s.jobs.GetJob(ctx, actor, input.JobID); err != nil {
		return nil, err
	}

	status := domain.StatusNew
	if input.Status != "" {
		normalized, ok := domain.NormalizeStatus(input.Status)
		if !ok {
			return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": input.Status})
		}
		status = normalized
	}

	now := time.Now()
	candidate := &domain.Candidate{
		JobID:       input.JobID,
		CreatedByID: actor.ID,
		Status:      status,
		StatusHistory: []domain.StatusHistoryEntry{{
			Status:      string(status),
			Timestamp:   now,
			ChangedByID: &actor.ID,
		}},
		DynamicFields: input.DynamicFields,
	}
	if err := s.candidates.Create(ctx, candidate); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventCandidateCreated,
		SubjectID: candidate.ID,
		ActorID:   &actor.ID,
		Payload: events.CandidateCreatedPayload{
			JobID:       candidate.JobID,
			CreatedByID: candidate.CreatedByID,
			Status:      candidate.Status,
		},
	})
	return candidate, nil
}

// ChangeStatus appends a transition to the candidate history. History is
// append-only; the current status and date fields are derived snapshots.
func (s *CandidateService) ChangeStatus(ctx context.Context, actor *domain.StaffUser, candidateID string, input StatusChangeInput) (*domain.Candidate, error) {
	candidate, err := s.GetCandidate(ctx, actor, candidateID)
	if err != nil {
		return nil, err
	}

	newStatus, ok := domain.NormalizeStatus(input.Status)
	if !ok {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": input.Status})
	}
	if input.Actor != nil && !validActor(*input.Actor) {
		return nil, apperrors.NewValidationError("unknown actor", map[string]any{"actor": *input.Actor})
	}

	oldStatus := candidate.Status
	now := time.Now()
	candidate.Status = newStatus
	candidate.StatusHistory = append(candidate.StatusHistory, domain.StatusHistoryEntry{
		Status:          string(newStatus),
		Timestamp:       now,
		Comment:         input.Comment,
		RejectionReason: input.RejectionReason,
		ChangedByID:     &actor.ID,
	})

	switch newStatus {
	case domain.StatusRejected:
		candidate.RejectedBy = input.Actor
	case domain.StatusDropped:
		candidate.DroppedBy = input.Actor
	case domain.StatusSelected:
		date := now
		if input.SelectionDate != nil {
			date = *input.SelectionDate
		}
		candidate.SelectionDate = &date
	case domain.StatusJoined:
		date := now
		if input.JoiningDate != nil {
			date = *input.JoiningDate
		}
		candidate.JoiningDate = &date
	}

	if err := s.candidates.Update(ctx, candidate); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventCandidateStatusChanged,
		SubjectID: candidate.ID,
		ActorID:   &actor.ID,
		Payload: events.CandidateStatusChangedPayload{
			JobID:           candidate.JobID,
			OldStatus:       oldStatus,
			NewStatus:       newStatus,
			Comment:         input.Comment,
			RejectionReason: input.RejectionReason,
		},
	})
	return candidate, nil
}

// UpdateDynamicFields merges caller-defined columns into the candidate.
func (s *CandidateService) UpdateDynamicFields(ctx context.Context, actor *domain.StaffUser, candidateID string, fields map[string]string) (*domain.Candidate, error) {
	candidate, err := s.GetCandidate(ctx, actor, candidateID)
	if err != nil {
		return nil, err
	}
	if candidate.DynamicFields == nil {
		candidate.DynamicFields = make(map[string]string, len(fields))
	}
	for key, value := range fields {
		if value == "" {
			delete(candidate.DynamicFields, key)
			continue
		}
		candidate.DynamicFields[key] = value
	}
	if err := s.candidates.Update(ctx, candidate); err != nil {
		return nil, apperrors.MapError(err)
	}
	return candidate, nil
}

// GetCandidate fetches a candidate enforcing job visibility.
func (s *CandidateService) GetCandidate(ctx context.Context, actor *domain.StaffUser, candidateID string) (*domain.Candidate, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	candidate, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("candidate", map[string]any{"candidate_id": candidateID})
		}
		return nil, apperrors.MapError(err)
	}
	if _, err := s.jobs.GetJob(ctx, actor, candidate.JobID); err != nil {
		return nil, err
	}
	return candidate, nil
}

// ListCandidates lists candidates on jobs the actor can see.
func (s *CandidateService) ListCandidates(ctx context.Context, actor *domain.StaffUser, filters CandidateListFilters) ([]domain.Candidate, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	repoFilter := repository.CandidateFilter{
		JobID:       filters.JobID,
		Status:      filters.Status,
		CreatedFrom: filters.CreatedFrom,
		CreatedTo:   filters.CreatedTo,
		Limit:       filters.Limit,
		Offset:      filters.Offset,
	}
	if filters.OwnOnly {
		repoFilter.CreatedByID = &actor.ID
	}
	if filters.JobID == nil {
		visibleJobs, err := s.jobs.ListJobs(ctx, actor, JobListFilters{})
		if err != nil {
			return nil, err
		}
		jobIDs := make([]string, 0, len(visibleJobs))
		for _, job := range visibleJobs {
			jobIDs = append(jobIDs, job.ID)
		}
		if len(jobIDs) == 0 {
			return []domain.Candidate{}, nil
		}
		repoFilter.JobIDs = jobIDs
	} else if _, err := s.jobs.GetJob(ctx, actor, *filters.JobID); err != nil {
		return nil, err
	}
	candidates, err := s.candidates.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return candidates, nil
}

func (s *CandidateService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validActor(actor domain.NegativeActor) bool {
	switch actor {
	case domain.ActorManager, domain.ActorMentor, domain.ActorClient:
		return true
	}
	return false
}
