package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

// InvoiceFilter captures invoice listing parameters.
type InvoiceFilter struct {
	ClientID    *string
	Status      *domain.InvoiceStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// InvoiceRepository encapsulates invoice persistence.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	ListWithFilter(ctx context.Context, filter InvoiceFilter) ([]domain.Invoice, error)
}

type invoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository instantiates repository.
func NewInvoiceRepository(pool *pgxpool.Pool) InvoiceRepository {
	return &invoiceRepository{pool: pool}
}

const invoiceColumns = `id, invoice_number, client_id, lines, payout_option, agreement_percentage, flat_pay_amount,
       billing_state, gst_number, subtotal, cgst, sgst, igst, grand_total, amount_in_words, status,
       created_at, updated_at`

func (r *invoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	linesJSON, err := json.Marshal(invoice.Lines)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO invoices (invoice_number, client_id, lines, payout_option, agreement_percentage, flat_pay_amount,
                              billing_state, gst_number, subtotal, cgst, sgst, igst, grand_total,
                              amount_in_words, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		invoice.Number,
		invoice.ClientID,
		linesJSON,
		invoice.PayoutOption,
		invoice.AgreementPercentage,
		invoice.FlatPayAmount,
		invoice.BillingState,
		invoice.GSTNumber,
		invoice.Subtotal,
		invoice.CGST,
		invoice.SGST,
		invoice.IGST,
		invoice.GrandTotal,
		invoice.AmountInWords,
		invoice.Status,
	).Scan(&invoice.ID, &invoice.CreatedAt, &invoice.UpdatedAt)
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE invoices SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE id=$1`, invoiceColumns)
	return scanInvoice(r.pool.QueryRow(ctx, query, id))
}

func (r *invoiceRepository) ListWithFilter(ctx context.Context, filter InvoiceFilter) ([]domain.Invoice, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		clauses = append(clauses, fmt.Sprintf("client_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		invoiceColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *invoice)
	}
	return result, rows.Err()
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var (
		invoice   domain.Invoice
		linesJSON []byte
	)
	if err := row.Scan(
		&invoice.ID,
		&invoice.Number,
		&invoice.ClientID,
		&linesJSON,
		&invoice.PayoutOption,
		&invoice.AgreementPercentage,
		&invoice.FlatPayAmount,
		&invoice.BillingState,
		&invoice.GSTNumber,
		&invoice.Subtotal,
		&invoice.CGST,
		&invoice.SGST,
		&invoice.IGST,
		&invoice.GrandTotal,
		&invoice.AmountInWords,
		&invoice.Status,
		&invoice.CreatedAt,
		&invoice.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(linesJSON) > 0 {
		if err := json.Unmarshal(linesJSON, &invoice.Lines); err != nil {
			return nil, err
		}
	}
	return &invoice, nil
}
