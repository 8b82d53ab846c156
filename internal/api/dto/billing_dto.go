package dto

import (
	"time"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

// CreateInvoiceRequest payload. Fee term overrides default from the client
// record when omitted.
type CreateInvoiceRequest struct {
	ClientID            string              `json:"client_id"`
	CandidateIDs        []string            `json:"candidate_ids"`
	BillingSiteIndex    int                 `json:"billing_site_index"`
	PayoutOption        domain.PayoutOption `json:"payout_option"`
	AgreementPercentage float64             `json:"agreement_percentage"`
	FlatPayAmount       float64             `json:"flat_pay_amount"`
}

// UpdateInvoiceStatusRequest payload.
type UpdateInvoiceStatusRequest struct {
	Status domain.InvoiceStatus `json:"status"`
}

// InvoiceResponse represents a full invoice with computed figures.
type InvoiceResponse struct {
	ID                  string               `json:"id"`
	Number              string               `json:"number"`
	ClientID            string               `json:"client_id"`
	Lines               []domain.InvoiceLine `json:"lines"`
	PayoutOption        domain.PayoutOption  `json:"payout_option"`
	AgreementPercentage float64              `json:"agreement_percentage"`
	FlatPayAmount       float64              `json:"flat_pay_amount"`
	BillingState        string               `json:"billing_state"`
	GSTNumber           string               `json:"gst_number"`
	Subtotal            int64                `json:"subtotal"`
	CGST                int64                `json:"cgst"`
	SGST                int64                `json:"sgst"`
	IGST                int64                `json:"igst"`
	GrandTotal          int64                `json:"grand_total"`
	AmountInWords       string               `json:"amount_in_words"`
	Status              domain.InvoiceStatus `json:"status"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// ActivityResponse is one audit trail entry.
type ActivityResponse struct {
	ID        string              `json:"id"`
	Type      domain.ActivityType `json:"type"`
	ActorID   *string             `json:"actor_id"`
	SubjectID string              `json:"subject_id"`
	JobID     *string             `json:"job_id"`
	Detail    map[string]any      `json:"detail"`
	CreatedAt time.Time           `json:"created_at"`
}
