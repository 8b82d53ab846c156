package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
	"github.com/spec-kit/recruiting-pipeline/internal/events"
	"github.com/spec-kit/recruiting-pipeline/internal/persistence"
	"github.com/spec-kit/recruiting-pipeline/internal/report"
	"github.com/spec-kit/recruiting-pipeline/internal/repository"
	apperrors "github.com/spec-kit/recruiting-pipeline/pkg/util/errorutil"
)

const reportKeyPrefix = "report:"

// ReportService assembles dashboard reports over the actor's visibility
// scope. Results are cached per staff member and invalidated whenever a
// candidate changes.
type ReportService struct {
	staff      repository.StaffRepository
	jobs       repository.JobRepository
	clients    repository.ClientRepository
	candidates repository.CandidateRepository
	cache      *persistence.Redis
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// ReportDependencies bundles requirements for the report service.
type ReportDependencies struct {
	StaffRepo     repository.StaffRepository
	JobRepo       repository.JobRepository
	ClientRepo    repository.ClientRepository
	CandidateRepo repository.CandidateRepository
	Cache         *persistence.Redis
	CacheTTL      time.Duration
	Logger        *zap.Logger
}

// ReportQuery parameterizes one dashboard report request.
type ReportQuery struct {
	From           *time.Time          `json:"from,omitempty"`
	To             *time.Time          `json:"to,omitempty"`
	Mode           report.TemporalMode `json:"mode,omitempty"`
	DatesReceived  []string            `json:"dates_received,omitempty"`
	ClientNames    []string            `json:"client_names,omitempty"`
	JobTitles      []string            `json:"job_titles,omitempty"`
	RecruiterNames []string            `json:"recruiter_names,omitempty"`
	OwnOnly        bool                `json:"own_only,omitempty"`
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		staff:      deps.StaffRepo,
		jobs:       deps.JobRepo,
		clients:    deps.ClientRepo,
		candidates: deps.CandidateRepo,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		logger:     deps.Logger,
	}
}

// RegisterInvalidation drops cached reports whenever candidates or jobs change.
func (s *ReportService) RegisterInvalidation(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	handler := func(ctx context.Context, _ events.Event) error {
		s.invalidateAll(ctx)
		return nil
	}
	dispatcher.Subscribe(events.EventCandidateCreated, handler)
	dispatcher.Subscribe(events.EventCandidateStatusChanged, handler)
	dispatcher.Subscribe(events.EventJobChanged, handler)
}

// PipelineReport computes the per-job funnel report for the acting user.
func (s *ReportService) PipelineReport(ctx context.Context, actor *domain.StaffUser, query ReportQuery) (*report.PipelineReport, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	cacheKey := s.cacheKey("pipeline", actor.ID, query)
	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		var out report.PipelineReport
		if err := json.Unmarshal(cached, &out); err == nil {
			return &out, nil
		}
	}

	aggregator, jobs, candidates, req, err := s.prepare(ctx, actor, query)
	if err != nil {
		return nil, err
	}
	out := aggregator.Aggregate(jobs, candidates, req)
	s.toCache(ctx, cacheKey, out)
	return out, nil
}

// RecruiterReport computes the per-recruiter performance report.
func (s *ReportService) RecruiterReport(ctx context.Context, actor *domain.StaffUser, query ReportQuery) (*report.RecruiterReport, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	// OwnOnly has no meaning when grouping by creator.
	query.OwnOnly = false

	cacheKey := s.cacheKey("recruiters", actor.ID, query)
	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		var out report.RecruiterReport
		if err := json.Unmarshal(cached, &out); err == nil {
			return &out, nil
		}
	}

	allStaff, err := s.staff.List(ctx, repository.StaffFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	aggregator, jobs, candidates, req, err := s.prepareWithStaff(ctx, actor, query, allStaff)
	if err != nil {
		return nil, err
	}
	out := aggregator.AggregateByRecruiter(jobs, candidates, allStaff, req)
	s.toCache(ctx, cacheKey, out)
	return out, nil
}

// Drilldown returns the candidates behind one bucket count of the pipeline
// report. An empty jobID drills into the totals row.
func (s *ReportService) Drilldown(ctx context.Context, actor *domain.StaffUser, query ReportQuery, jobID, bucket string) ([]domain.Candidate, error) {
	out, err := s.PipelineReport(ctx, actor, query)
	if err != nil {
		return nil, err
	}
	var buckets []report.BucketCount
	if jobID == "" {
		buckets = out.Totals.Buckets
	} else {
		for i := range out.Rows {
			if out.Rows[i].JobID == jobID {
				buckets = out.Rows[i].Buckets
				break
			}
		}
		if buckets == nil {
			return nil, apperrors.NewNotFound("report row", map[string]any{"job_id": jobID})
		}
	}
	var ids []string
	for i := range buckets {
		if buckets[i].Name == bucket {
			ids = buckets[i].CandidateIDs
			break
		}
	}
	candidates := make([]domain.Candidate, 0, len(ids))
	for _, id := range ids {
		candidate, err := s.candidates.GetByID(ctx, id)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		candidates = append(candidates, *candidate)
	}
	return candidates, nil
}

func (s *ReportService) prepare(ctx context.Context, actor *domain.StaffUser, query ReportQuery) (*report.Aggregator, []domain.Job, []domain.Candidate, report.AggregateRequest, error) {
	allStaff, err := s.staff.List(ctx, repository.StaffFilter{})
	if err != nil {
		return nil, nil, nil, report.AggregateRequest{}, apperrors.MapError(err)
	}
	return s.prepareWithStaff(ctx, actor, query, allStaff)
}

func (s *ReportService) prepareWithStaff(ctx context.Context, actor *domain.StaffUser, query ReportQuery, allStaff []domain.StaffUser) (*report.Aggregator, []domain.Job, []domain.Candidate, report.AggregateRequest, error) {
	jobs, err := s.jobs.ListWithFilter(ctx, repository.JobFilter{Limit: 10000})
	if err != nil {
		return nil, nil, nil, report.AggregateRequest{}, apperrors.MapError(err)
	}
	candidates, err := s.candidates.ListWithFilter(ctx, repository.CandidateFilter{Limit: 100000})
	if err != nil {
		return nil, nil, nil, report.AggregateRequest{}, apperrors.MapError(err)
	}
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, nil, nil, report.AggregateRequest{}, apperrors.MapError(err)
	}

	mode := query.Mode
	if mode == "" {
		mode = report.ModeCreation
	}
	req := report.AggregateRequest{
		Scope:  report.ResolveScope(actor, allStaff),
		Range:  report.DateRange{Start: query.From, End: query.To},
		Mode:   mode,
		Groups: report.DefaultStatusGroups(),
		Filters: report.ColumnFilters{
			DatesReceived:  query.DatesReceived,
			ClientNames:    query.ClientNames,
			JobTitles:      query.JobTitles,
			RecruiterNames: query.RecruiterNames,
		},
		OwnOnly:      query.OwnOnly,
		ActingUserID: actor.ID,
	}
	return report.NewAggregator(clients, allStaff), jobs, candidates, req, nil
}

func (s *ReportService) cacheKey(kind, staffID string, query ReportQuery) string {
	raw, _ := json.Marshal(query)
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%s%s:%s:%s", reportKeyPrefix, kind, staffID, hex.EncodeToString(sum[:8]))
}

func (s *ReportService) fromCache(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil || s.cache.Client == nil || s.cacheTTL <= 0 {
		return nil, false
	}
	data, err := s.cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("report cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

func (s *ReportService) toCache(ctx context.Context, key string, payload any) {
	if s.cache == nil || s.cache.Client == nil || s.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *ReportService) invalidateAll(ctx context.Context) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	iter := s.cache.Client.Scan(ctx, 0, reportKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Client.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Debug("report cache invalidation failed", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Debug("report cache scan failed", zap.Error(err))
	}
}
