package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
	"github.com/spec-kit/recruiting-pipeline/internal/repository"
)

type fakeStaffRepo struct {
	staff map[string]*domain.StaffUser
}

func newFakeStaffRepo(users ...domain.StaffUser) *fakeStaffRepo {
	repo := &fakeStaffRepo{staff: map[string]*domain.StaffUser{}}
	for i := range users {
		u := users[i]
		repo.staff[u.ID] = &u
	}
	return repo
}

func (r *fakeStaffRepo) Create(_ context.Context, staff *domain.StaffUser) error {
	if staff.ID == "" {
		staff.ID = fmt.Sprintf("staff-%d", len(r.staff)+1)
	}
	staff.CreatedAt = time.Now()
	r.staff[staff.ID] = staff
	return nil
}

func (r *fakeStaffRepo) Update(_ context.Context, staff *domain.StaffUser) error {
	if _, ok := r.staff[staff.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.staff[staff.ID] = staff
	return nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffUser, error) {
	staff, ok := r.staff[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *staff
	return &copied, nil
}

func (r *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*domain.StaffUser, error) {
	for _, staff := range r.staff {
		if staff.Email == email {
			copied := *staff
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeStaffRepo) List(_ context.Context, _ repository.StaffFilter) ([]domain.StaffUser, error) {
	out := make([]domain.StaffUser, 0, len(r.staff))
	for _, staff := range r.staff {
		out = append(out, *staff)
	}
	return out, nil
}

type fakeClientRepo struct {
	clients map[string]*domain.Client
}

func newFakeClientRepo(clients ...domain.Client) *fakeClientRepo {
	repo := &fakeClientRepo{clients: map[string]*domain.Client{}}
	for i := range clients {
		c := clients[i]
		repo.clients[c.ID] = &c
	}
	return repo
}

func (r *fakeClientRepo) Create(_ context.Context, client *domain.Client) error {
	if client.ID == "" {
		client.ID = fmt.Sprintf("client-%d", len(r.clients)+1)
	}
	r.clients[client.ID] = client
	return nil
}

func (r *fakeClientRepo) Update(_ context.Context, client *domain.Client) error {
	if _, ok := r.clients[client.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.clients[client.ID] = client
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*domain.Client, error) {
	client, ok := r.clients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *client
	return &copied, nil
}

func (r *fakeClientRepo) List(_ context.Context) ([]domain.Client, error) {
	out := make([]domain.Client, 0, len(r.clients))
	for _, client := range r.clients {
		out = append(out, *client)
	}
	return out, nil
}

type fakeJobRepo struct {
	jobs map[string]*domain.Job
}

func newFakeJobRepo(jobs ...domain.Job) *fakeJobRepo {
	repo := &fakeJobRepo{jobs: map[string]*domain.Job{}}
	for i := range jobs {
		j := jobs[i]
		repo.jobs[j.ID] = &j
	}
	return repo
}

func (r *fakeJobRepo) Create(_ context.Context, job *domain.Job) error {
	if job.ID == "" {
		job.ID = fmt.Sprintf("job-%d", len(r.jobs)+1)
	}
	job.CreatedAt = time.Now()
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) Update(_ context.Context, job *domain.Job) error {
	if _, ok := r.jobs[job.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) ListWithFilter(_ context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	out := make([]domain.Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		if filter.ClientID != nil && job.ClientID != *filter.ClientID {
			continue
		}
		out = append(out, *job)
	}
	return out, nil
}

type fakeCandidateRepo struct {
	candidates map[string]*domain.Candidate
}

func newFakeCandidateRepo(candidates ...domain.Candidate) *fakeCandidateRepo {
	repo := &fakeCandidateRepo{candidates: map[string]*domain.Candidate{}}
	for i := range candidates {
		c := candidates[i]
		repo.candidates[c.ID] = &c
	}
	return repo
}

func (r *fakeCandidateRepo) Create(_ context.Context, candidate *domain.Candidate) error {
	if candidate.ID == "" {
		candidate.ID = fmt.Sprintf("cand-%d", len(r.candidates)+1)
	}
	candidate.CreatedAt = time.Now()
	r.candidates[candidate.ID] = candidate
	return nil
}

func (r *fakeCandidateRepo) Update(_ context.Context, candidate *domain.Candidate) error {
	if _, ok := r.candidates[candidate.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.candidates[candidate.ID] = candidate
	return nil
}

func (r *fakeCandidateRepo) GetByID(_ context.Context, id string) (*domain.Candidate, error) {
	candidate, ok := r.candidates[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *candidate
	return &copied, nil
}

func (r *fakeCandidateRepo) ListWithFilter(_ context.Context, filter repository.CandidateFilter) ([]domain.Candidate, error) {
	out := make([]domain.Candidate, 0, len(r.candidates))
	for _, candidate := range r.candidates {
		if filter.JobID != nil && candidate.JobID != *filter.JobID {
			continue
		}
		if filter.CreatedByID != nil && candidate.CreatedByID != *filter.CreatedByID {
			continue
		}
		out = append(out, *candidate)
	}
	return out, nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*domain.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[string]*domain.Invoice{}}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, invoice *domain.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = fmt.Sprintf("inv-%d", len(r.invoices)+1)
	}
	invoice.CreatedAt = time.Now()
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeInvoiceRepo) UpdateStatus(_ context.Context, id string, status domain.InvoiceStatus) error {
	invoice, ok := r.invoices[id]
	if !ok {
		return pgx.ErrNoRows
	}
	invoice.Status = status
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*domain.Invoice, error) {
	invoice, ok := r.invoices[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *invoice
	return &copied, nil
}

func (r *fakeInvoiceRepo) ListWithFilter(_ context.Context, filter repository.InvoiceFilter) ([]domain.Invoice, error) {
	out := make([]domain.Invoice, 0, len(r.invoices))
	for _, invoice := range r.invoices {
		if filter.ClientID != nil && invoice.ClientID != *filter.ClientID {
			continue
		}
		if filter.Status != nil && invoice.Status != *filter.Status {
			continue
		}
		out = append(out, *invoice)
	}
	return out, nil
}
