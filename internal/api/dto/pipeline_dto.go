package dto

import (
	"time"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

// CreateClientRequest payload.
type CreateClientRequest struct {
	CompanyName         string               `json:"company_name"`
	PayoutOption        domain.PayoutOption  `json:"payout_option"`
	AgreementPercentage float64              `json:"agreement_percentage"`
	FlatPayAmount       float64              `json:"flat_pay_amount"`
	BillingSites        []domain.BillingSite `json:"billing_sites"`
}

// ClientResponse represents a client.
type ClientResponse struct {
	ID                  string               `json:"id"`
	CompanyName         string               `json:"company_name"`
	PayoutOption        domain.PayoutOption  `json:"payout_option"`
	AgreementPercentage float64              `json:"agreement_percentage"`
	FlatPayAmount       float64              `json:"flat_pay_amount"`
	BillingSites        []domain.BillingSite `json:"billing_sites"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// CreateJobRequest payload.
type CreateJobRequest struct {
	Title         string   `json:"title"`
	ClientID      string   `json:"client_id"`
	RecruiterIDs  []string `json:"recruiter_ids"`
	NoOfPositions int      `json:"no_of_positions"`
}

// UpdateJobRequest payload.
type UpdateJobRequest struct {
	Title         string           `json:"title"`
	RecruiterIDs  []string         `json:"recruiter_ids"`
	Status        domain.JobStatus `json:"status"`
	NoOfPositions int              `json:"no_of_positions"`
}

// JobResponse represents a job opening.
type JobResponse struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	ClientID      string           `json:"client_id"`
	CreatedByID   string           `json:"created_by_id"`
	RecruiterIDs  []string         `json:"recruiter_ids"`
	Status        domain.JobStatus `json:"status"`
	NoOfPositions int              `json:"no_of_positions"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CreateCandidateRequest payload.
type CreateCandidateRequest struct {
	JobID         string            `json:"job_id"`
	Status        string            `json:"status"`
	DynamicFields map[string]string `json:"dynamic_fields"`
}

// ChangeStatusRequest payload.
type ChangeStatusRequest struct {
	Status          string                `json:"status"`
	Comment         string                `json:"comment"`
	RejectionReason string                `json:"rejection_reason"`
	Actor           *domain.NegativeActor `json:"actor"`
	JoiningDate     *time.Time            `json:"joining_date"`
	SelectionDate   *time.Time            `json:"selection_date"`
}

// UpdateFieldsRequest payload. Empty values remove the key.
type UpdateFieldsRequest struct {
	DynamicFields map[string]string `json:"dynamic_fields"`
}

// CandidateResponse represents a pipelined candidate.
type CandidateResponse struct {
	ID            string                 `json:"id"`
	JobID         string                 `json:"job_id"`
	CreatedByID   string                 `json:"created_by_id"`
	Status        domain.CandidateStatus `json:"status"`
	StatusHistory []StatusHistoryItem    `json:"status_history"`
	RejectedBy    *domain.NegativeActor  `json:"rejected_by"`
	DroppedBy     *domain.NegativeActor  `json:"dropped_by"`
	JoiningDate   *time.Time             `json:"joining_date"`
	SelectionDate *time.Time             `json:"selection_date"`
	DynamicFields map[string]string      `json:"dynamic_fields"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// StatusHistoryItem is one transition record.
type StatusHistoryItem struct {
	Status          string    `json:"status"`
	Timestamp       time.Time `json:"timestamp"`
	Comment         string    `json:"comment,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	ChangedByID     *string   `json:"changed_by_id,omitempty"`
}
