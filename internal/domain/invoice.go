package domain

import "time"

// InvoiceStatus enumerates payment states.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
)

// InvoiceLine is one placed candidate on an invoice. Amount is computed from
// CTC and the invoice fee terms, never taken as authoritative input.
type InvoiceLine struct {
	CandidateID string  `json:"candidate_id"`
	Designation string  `json:"designation"`
	DOJ         string  `json:"doj"`
	CTC         float64 `json:"ctc"`
	Amount      int64   `json:"amount"`
}

// Invoice bills a client for joined candidates. Fee terms default from the
// client record but are snapshotted per invoice.
type Invoice struct {
	ID                  string
	Number              string
	ClientID            string
	Lines               []InvoiceLine
	PayoutOption        PayoutOption
	AgreementPercentage float64
	FlatPayAmount       float64
	BillingState        string
	GSTNumber           string
	Subtotal            int64
	CGST                int64
	SGST                int64
	IGST                int64
	GrandTotal          int64
	AmountInWords       string
	Status              InvoiceStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
