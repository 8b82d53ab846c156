package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
	"github.com/spec-kit/recruiting-pipeline/internal/events"
	"github.com/spec-kit/recruiting-pipeline/internal/repository"
	apperrors "github.com/spec-kit/recruiting-pipeline/pkg/util/errorutil"
)

// ActivityService projects domain events into the append-only audit trail.
type ActivityService struct {
	activity   repository.ActivityRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(activity repository.ActivityRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		activity:   activity,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventCandidateCreated, a.handleCandidateCreated)
	a.dispatcher.Subscribe(events.EventCandidateStatusChanged, a.handleStatusChanged)
	a.dispatcher.Subscribe(events.EventInvoiceCreated, a.handleInvoiceCreated)
}

// ListActivity returns audit entries, newest first.
func (a *ActivityService) ListActivity(ctx context.Context, actor *domain.StaffUser, filter repository.ActivityFilter) ([]domain.ActivityEntry, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	entries, err := a.activity.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

func (a *ActivityService) handleCandidateCreated(ctx context.Context, event events.Event) error {
	a.logger.Info("CandidateCreated", zap.String("candidate_id", event.SubjectID), zap.Any("payload", event.Payload))
	entry := &domain.ActivityEntry{
		Type:      domain.ActivityCandidateCreated,
		ActorID:   event.ActorID,
		SubjectID: event.SubjectID,
	}
	if payload, ok := event.Payload.(events.CandidateCreatedPayload); ok {
		entry.JobID = &payload.JobID
		entry.Detail = map[string]any{"status": payload.Status}
	}
	return a.record(ctx, entry)
}

func (a *ActivityService) handleStatusChanged(ctx context.Context, event events.Event) error {
	a.logger.Info("CandidateStatusChanged", zap.String("candidate_id", event.SubjectID), zap.Any("payload", event.Payload))
	entry := &domain.ActivityEntry{
		Type:      domain.ActivityStatusChanged,
		ActorID:   event.ActorID,
		SubjectID: event.SubjectID,
	}
	if payload, ok := event.Payload.(events.CandidateStatusChangedPayload); ok {
		entry.JobID = &payload.JobID
		entry.Detail = map[string]any{
			"old_status": payload.OldStatus,
			"new_status": payload.NewStatus,
		}
		if payload.Comment != "" {
			entry.Detail["comment"] = payload.Comment
		}
		if payload.RejectionReason != "" {
			entry.Detail["rejection_reason"] = payload.RejectionReason
		}
	}
	return a.record(ctx, entry)
}

func (a *ActivityService) handleInvoiceCreated(ctx context.Context, event events.Event) error {
	a.logger.Info("InvoiceCreated", zap.String("invoice_id", event.SubjectID), zap.Any("payload", event.Payload))
	entry := &domain.ActivityEntry{
		Type:      domain.ActivityInvoiceCreated,
		ActorID:   event.ActorID,
		SubjectID: event.SubjectID,
	}
	if payload, ok := event.Payload.(events.InvoiceCreatedPayload); ok {
		entry.Detail = map[string]any{
			"number":      payload.Number,
			"client_id":   payload.ClientID,
			"grand_total": payload.GrandTotal,
		}
	}
	return a.record(ctx, entry)
}

func (a *ActivityService) record(ctx context.Context, entry *domain.ActivityEntry) error {
	if err := a.activity.Create(ctx, entry); err != nil {
		a.logger.Warn("activity write failed", zap.String("subject_id", entry.SubjectID), zap.Error(err))
		return err
	}
	return nil
}
