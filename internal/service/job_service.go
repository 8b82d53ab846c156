package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
	"github.com/spec-kit/recruiting-pipeline/internal/events"
	"github.com/spec-kit/recruiting-pipeline/internal/report"
	"github.com/spec-kit/recruiting-pipeline/internal/repository"
	apperrors "github.com/spec-kit/recruiting-pipeline/pkg/util/errorutil"
)

// JobService coordinates job and client workflows.
type JobService struct {
	jobs       repository.JobRepository
	clients    repository.ClientRepository
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
}

// JobDependencies bundles repositories for the job service.
type JobDependencies struct {
	JobRepo    repository.JobRepository
	ClientRepo repository.ClientRepository
	StaffRepo  repository.StaffRepository
	Dispatcher events.Dispatcher
}

// JobCreateInput describes job creation payload.
type JobCreateInput struct {
	Title         string
	ClientID      string
	RecruiterIDs  []string
	NoOfPositions int
}

// JobUpdateInput describes mutable job fields.
type JobUpdateInput struct {
	Title         string
	RecruiterIDs  []string
	Status        domain.JobStatus
	NoOfPositions int
}

// JobListFilters describes listing parameters.
type JobListFilters struct {
	ClientID    *string
	Statuses    []domain.JobStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	SearchTerm  *string
	Limit       int
	Offset      int
}

// ClientInput describes client creation/update payload.
type ClientInput struct {
	CompanyName         string
	PayoutOption        domain.PayoutOption
	AgreementPercentage float64
	FlatPayAmount       float64
	BillingSites        []domain.BillingSite
}

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	return &JobService{
		jobs:       deps.JobRepo,
		clients:    deps.ClientRepo,
		staff:      deps.StaffRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateJob opens a job for a client. The acting user becomes the owner and
// is always present in the recruiter list.
func (s *JobService) CreateJob(ctx context.Context, actor *domain.StaffUser, input JobCreateInput) (*domain.Job, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("job title required", nil)
	}
	if input.NoOfPositions <= 0 {
		return nil, apperrors.NewValidationError("no_of_positions must be positive", map[string]any{"no_of_positions": input.NoOfPositions})
	}
	if _, err := s.clients.GetByID(ctx, input.ClientID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("client", map[string]any{"client_id": input.ClientID})
		}
		return nil, apperrors.MapError(err)
	}

	recruiters, err := s.normalizeRecruiters(ctx, input.RecruiterIDs, actor.ID)
	if err != nil {
		return nil, err
	}

	job := &domain.Job{
		Title:         strings.TrimSpace(input.Title),
		ClientID:      input.ClientID,
		CreatedByID:   actor.ID,
		RecruiterIDs:  recruiters,
		Status:        domain.JobStatusOpen,
		NoOfPositions: input.NoOfPositions,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishJobChanged(ctx, actor, job)
	return job, nil
}

// UpdateJob mutates a job the actor can see.
func (s *JobService) UpdateJob(ctx context.Context, actor *domain.StaffUser, jobID string, input JobUpdateInput) (*domain.Job, error) {
	job, err := s.GetJob(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) != "" {
		job.Title = strings.TrimSpace(input.Title)
	}
	if input.Status != "" {
		job.Status = input.Status
	}
	if input.NoOfPositions > 0 {
		job.NoOfPositions = input.NoOfPositions
	}
	if input.RecruiterIDs != nil {
		recruiters, err := s.normalizeRecruiters(ctx, input.RecruiterIDs, job.CreatedByID)
		if err != nil {
			return nil, err
		}
		job.RecruiterIDs = recruiters
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishJobChanged(ctx, actor, job)
	return job, nil
}

func (s *JobService) publishJobChanged(ctx context.Context, actor *domain.StaffUser, job *domain.Job) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventJobChanged,
		SubjectID: job.ID,
		ActorID:   &actor.ID,
		Timestamp: time.Now(),
		Payload: events.JobChangedPayload{
			ClientID: job.ClientID,
			Title:    job.Title,
			Status:   job.Status,
		},
	})
}

// GetJob fetches a job enforcing visibility scope.
func (s *JobService) GetJob(ctx context.Context, actor *domain.StaffUser, jobID string) (*domain.Job, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job", map[string]any{"job_id": jobID})
		}
		return nil, apperrors.MapError(err)
	}
	scope, err := s.resolveScope(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !scope.Contains(job.CreatedByID) {
		return nil, apperrors.NewForbidden("job outside visibility scope")
	}
	return job, nil
}

// ListJobs lists jobs restricted to the actor's visibility scope.
func (s *JobService) ListJobs(ctx context.Context, actor *domain.StaffUser, filters JobListFilters) ([]domain.Job, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	repoFilter := repository.JobFilter{
		ClientID:    filters.ClientID,
		Statuses:    filters.Statuses,
		CreatedFrom: filters.CreatedFrom,
		CreatedTo:   filters.CreatedTo,
		SearchTerm:  filters.SearchTerm,
		Limit:       filters.Limit,
		Offset:      filters.Offset,
	}
	jobs, err := s.jobs.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	scope, err := s.resolveScope(ctx, actor)
	if err != nil {
		return nil, err
	}
	if scope.Unbounded {
		return jobs, nil
	}
	visible := jobs[:0]
	for _, job := range jobs {
		if scope.Contains(job.CreatedByID) {
			visible = append(visible, job)
		}
	}
	return visible, nil
}

// CreateClient registers a client with default fee terms.
func (s *JobService) CreateClient(ctx context.Context, actor *domain.StaffUser, input ClientInput) (*domain.Client, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.CompanyName) == "" {
		return nil, apperrors.NewValidationError("company name required", nil)
	}
	client := &domain.Client{
		CompanyName:         strings.TrimSpace(input.CompanyName),
		PayoutOption:        input.PayoutOption,
		AgreementPercentage: input.AgreementPercentage,
		FlatPayAmount:       input.FlatPayAmount,
		BillingSites:        input.BillingSites,
	}
	if client.PayoutOption == "" {
		client.PayoutOption = domain.PayoutPercentage
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

// UpdateClient applies the set fields of the input to a client; zero-valued
// fields leave the stored terms untouched.
func (s *JobService) UpdateClient(ctx context.Context, actor *domain.StaffUser, clientID string, input ClientInput) (*domain.Client, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("client", map[string]any{"client_id": clientID})
		}
		return nil, apperrors.MapError(err)
	}
	if strings.TrimSpace(input.CompanyName) != "" {
		client.CompanyName = strings.TrimSpace(input.CompanyName)
	}
	if input.PayoutOption != "" {
		client.PayoutOption = input.PayoutOption
	}
	if input.AgreementPercentage > 0 {
		client.AgreementPercentage = input.AgreementPercentage
	}
	if input.FlatPayAmount > 0 {
		client.FlatPayAmount = input.FlatPayAmount
	}
	if input.BillingSites != nil {
		client.BillingSites = input.BillingSites
	}
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

// GetClient fetches a client record.
func (s *JobService) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("client", map[string]any{"client_id": clientID})
		}
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

// ListClients lists all clients.
func (s *JobService) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return clients, nil
}

func (s *JobService) resolveScope(ctx context.Context, actor *domain.StaffUser) (report.Scope, error) {
	if actor.Designation == domain.DesignationAdmin {
		return report.Scope{Unbounded: true}, nil
	}
	allStaff, err := s.staff.List(ctx, repository.StaffFilter{})
	if err != nil {
		return report.Scope{}, apperrors.MapError(err)
	}
	return report.ResolveScope(actor, allStaff), nil
}

// normalizeRecruiters validates ids and guarantees the owner is listed.
func (s *JobService) normalizeRecruiters(ctx context.Context, ids []string, ownerID string) ([]string, error) {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(ids)+1)
	for _, id := range append([]string{ownerID}, ids...) {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		if id != ownerID {
			if _, err := s.staff.GetByID(ctx, id); err != nil {
				if err == pgx.ErrNoRows {
					return nil, apperrors.NewValidationError("recruiter not found", map[string]any{"staff_id": id})
				}
				return nil, apperrors.MapError(err)
			}
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
