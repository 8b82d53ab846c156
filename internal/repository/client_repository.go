package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

// ClientRepository handles persistence for client companies.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
}

type clientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository instantiates the repository.
func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &clientRepository{pool: pool}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	sites, err := json.Marshal(client.BillingSites)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO clients (company_name, payout_option, agreement_percentage, flat_pay_amount, billing_sites)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		client.CompanyName,
		client.PayoutOption,
		client.AgreementPercentage,
		client.FlatPayAmount,
		sites,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	sites, err := json.Marshal(client.BillingSites)
	if err != nil {
		return err
	}
	const query = `
        UPDATE clients
        SET company_name=$1, payout_option=$2, agreement_percentage=$3, flat_pay_amount=$4, billing_sites=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		client.CompanyName,
		client.PayoutOption,
		client.AgreementPercentage,
		client.FlatPayAmount,
		sites,
		client.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	const query = `
        SELECT id, company_name, payout_option, agreement_percentage, flat_pay_amount, billing_sites, created_at, updated_at
        FROM clients WHERE id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanClient(row)
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	const query = `
        SELECT id, company_name, payout_option, agreement_percentage, flat_pay_amount, billing_sites, created_at, updated_at
        FROM clients ORDER BY company_name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *client)
	}
	return result, rows.Err()
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var client domain.Client
	var sites []byte
	if err := row.Scan(
		&client.ID,
		&client.CompanyName,
		&client.PayoutOption,
		&client.AgreementPercentage,
		&client.FlatPayAmount,
		&sites,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(sites) > 0 {
		if err := json.Unmarshal(sites, &client.BillingSites); err != nil {
			return nil, err
		}
	}
	return &client, nil
}
