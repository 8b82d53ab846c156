package domain

import "time"

// PayoutOption selects how a placement fee is computed for a client.
type PayoutOption string

const (
	PayoutPercentage PayoutOption = "PERCENTAGE"
	PayoutFlat       PayoutOption = "FLAT"
	PayoutBoth       PayoutOption = "BOTH"
)

// BillingSite is one invoicing address of a client. State determines the
// CGST/SGST vs IGST split.
type BillingSite struct {
	Address   string `json:"address"`
	State     string `json:"state"`
	GSTNumber string `json:"gst_number"`
}

// Client owns jobs and provides default fee terms an invoice may override.
type Client struct {
	ID                  string
	CompanyName         string
	PayoutOption        PayoutOption
	AgreementPercentage float64
	FlatPayAmount       float64
	BillingSites        []BillingSite
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
