package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/recruiting-pipeline/internal/config"
	"github.com/spec-kit/recruiting-pipeline/internal/domain"
	"github.com/spec-kit/recruiting-pipeline/internal/events"
	"github.com/spec-kit/recruiting-pipeline/internal/finance"
	"github.com/spec-kit/recruiting-pipeline/internal/repository"
	apperrors "github.com/spec-kit/recruiting-pipeline/pkg/util/errorutil"
)

const ctcFieldKey = "ctc"

// InvoiceService builds and manages client invoices for joined candidates.
type InvoiceService struct {
	invoices   repository.InvoiceRepository
	clients    repository.ClientRepository
	jobs       repository.JobRepository
	candidates repository.CandidateRepository
	dispatcher events.Dispatcher
	homeState  string
}

// InvoiceDependencies bundles requirements for the invoice service.
type InvoiceDependencies struct {
	InvoiceRepo   repository.InvoiceRepository
	ClientRepo    repository.ClientRepository
	JobRepo       repository.JobRepository
	CandidateRepo repository.CandidateRepository
	Dispatcher    events.Dispatcher
}

// InvoiceCreateInput describes invoice creation payload. Fee term overrides
// default from the client record when zero-valued.
type InvoiceCreateInput struct {
	ClientID            string
	CandidateIDs        []string
	BillingSiteIndex    int
	PayoutOption        domain.PayoutOption
	AgreementPercentage float64
	FlatPayAmount       float64
}

// NewInvoiceService constructs the service.
func NewInvoiceService(cfg config.Config, deps InvoiceDependencies) *InvoiceService {
	return &InvoiceService{
		invoices:   deps.InvoiceRepo,
		clients:    deps.ClientRepo,
		jobs:       deps.JobRepo,
		candidates: deps.CandidateRepo,
		dispatcher: deps.Dispatcher,
		homeState:  cfg.Billing.HomeState,
	}
}

func requireFinance(actor *domain.StaffUser) error {
	if actor == nil {
		return apperrors.NewUnauthorized("staff required")
	}
	if actor.Designation != domain.DesignationAdmin && actor.Designation != domain.DesignationFinance {
		return apperrors.NewForbidden("finance designation required")
	}
	return nil
}

// CreateInvoice snapshots fee terms and computes every money figure from the
// listed candidates. Line amounts, taxes and the grand total are derived
// server side; caller supplied amounts are never trusted.
func (s *InvoiceService) CreateInvoice(ctx context.Context, actor *domain.StaffUser, input InvoiceCreateInput) (*domain.Invoice, error) {
	if err := requireFinance(actor); err != nil {
		return nil, err
	}
	if len(input.CandidateIDs) == 0 {
		return nil, apperrors.NewValidationError("at least one candidate required", nil)
	}

	client, err := s.clients.GetByID(ctx, input.ClientID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("client", map[string]any{"client_id": input.ClientID})
		}
		return nil, apperrors.MapError(err)
	}
	if input.BillingSiteIndex < 0 || input.BillingSiteIndex >= len(client.BillingSites) {
		return nil, apperrors.NewValidationError("billing site out of range", map[string]any{"billing_site_index": input.BillingSiteIndex})
	}
	site := client.BillingSites[input.BillingSiteIndex]

	payout := input.PayoutOption
	if payout == "" {
		payout = client.PayoutOption
	}
	percentage := input.AgreementPercentage
	if percentage == 0 {
		percentage = client.AgreementPercentage
	}
	flat := input.FlatPayAmount
	if flat == 0 {
		flat = client.FlatPayAmount
	}

	lines := make([]domain.InvoiceLine, 0, len(input.CandidateIDs))
	var subtotal int64
	for _, candidateID := range input.CandidateIDs {
		line, err := s.buildLine(ctx, candidateID, client.ID, percentage, flat, payout)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
		subtotal += line.Amount
	}

	tax := finance.ComputeTax(subtotal, site.State, s.homeState)
	invoice := &domain.Invoice{
		Number:              generateInvoiceNumber(),
		ClientID:            client.ID,
		Lines:               lines,
		PayoutOption:        payout,
		AgreementPercentage: percentage,
		FlatPayAmount:       flat,
		BillingState:        site.State,
		GSTNumber:           site.GSTNumber,
		Subtotal:            subtotal,
		CGST:                tax.CGST,
		SGST:                tax.SGST,
		IGST:                tax.IGST,
		GrandTotal:          tax.GrandTotal,
		AmountInWords:       finance.AmountInWords(tax.GrandTotal),
		Status:              domain.InvoiceStatusPending,
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventInvoiceCreated,
		SubjectID: invoice.ID,
		ActorID:   &actor.ID,
		Payload: events.InvoiceCreatedPayload{
			Number:     invoice.Number,
			ClientID:   invoice.ClientID,
			GrandTotal: invoice.GrandTotal,
			LineCount:  len(invoice.Lines),
		},
	})
	return invoice, nil
}

// buildLine validates one candidate and derives its fee line.
func (s *InvoiceService) buildLine(ctx context.Context, candidateID, clientID string, percentage, flat float64, payout domain.PayoutOption) (*domain.InvoiceLine, error) {
	candidate, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("candidate", map[string]any{"candidate_id": candidateID})
		}
		return nil, apperrors.MapError(err)
	}
	if candidate.Status != domain.StatusJoined {
		return nil, apperrors.NewValidationError("candidate has not joined", map[string]any{"candidate_id": candidateID, "status": candidate.Status})
	}
	job, err := s.jobs.GetByID(ctx, candidate.JobID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if job.ClientID != clientID {
		return nil, apperrors.NewValidationError("candidate joined a different client", map[string]any{"candidate_id": candidateID})
	}

	ctc := finance.ParseAmount(dynamicField(candidate, ctcFieldKey))
	doj := ""
	if candidate.JoiningDate != nil {
		doj = candidate.JoiningDate.Format("2006-01-02")
	}
	return &domain.InvoiceLine{
		CandidateID: candidate.ID,
		Designation: job.Title,
		DOJ:         doj,
		CTC:         ctc,
		Amount:      finance.LineAmount(ctc, percentage, flat, payout),
	}, nil
}

// UpdateStatus moves an invoice between payment states.
func (s *InvoiceService) UpdateStatus(ctx context.Context, actor *domain.StaffUser, invoiceID string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	if err := requireFinance(actor); err != nil {
		return nil, err
	}
	switch status {
	case domain.InvoiceStatusPending, domain.InvoiceStatusPaid, domain.InvoiceStatusOverdue:
	default:
		return nil, apperrors.NewValidationError("unknown invoice status", map[string]any{"status": status})
	}
	if err := s.invoices.UpdateStatus(ctx, invoiceID, status); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("invoice", map[string]any{"invoice_id": invoiceID})
		}
		return nil, apperrors.MapError(err)
	}
	return s.GetInvoice(ctx, actor, invoiceID)
}

// GetInvoice fetches one invoice.
func (s *InvoiceService) GetInvoice(ctx context.Context, actor *domain.StaffUser, invoiceID string) (*domain.Invoice, error) {
	if err := requireFinance(actor); err != nil {
		return nil, err
	}
	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("invoice", map[string]any{"invoice_id": invoiceID})
		}
		return nil, apperrors.MapError(err)
	}
	return invoice, nil
}

// ListInvoices lists invoices with filters.
func (s *InvoiceService) ListInvoices(ctx context.Context, actor *domain.StaffUser, filter repository.InvoiceFilter) ([]domain.Invoice, error) {
	if err := requireFinance(actor); err != nil {
		return nil, err
	}
	invoices, err := s.invoices.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return invoices, nil
}

func (s *InvoiceService) publishEvent(ctx context.Context, event events.Event) {
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

func generateInvoiceNumber() string {
	return "INV-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// dynamicField looks up a caller-defined column case-insensitively.
func dynamicField(c *domain.Candidate, key string) string {
	for k, v := range c.DynamicFields {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
