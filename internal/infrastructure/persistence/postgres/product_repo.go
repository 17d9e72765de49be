package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/model"
)

// ProductRepo implements port.LoanProductRepository. The catalog is seeded
// by migrations and managed out of band, so the repository is read-only.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepo creates a new PostgreSQL-backed product repository.
func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

const productColumns = `
	id, name, description, min_amount, max_amount,
	min_term_months, max_term_months,
	interest_rate, processing_fee_rate, late_fee_base,
	active, created_at, updated_at
`

// FindByID retrieves a product by ID.
func (r *ProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.LoanProduct, error) {
	query := `SELECT ` + productColumns + ` FROM loan_products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "product %s not found", id)
	}
	return p, nil
}

// FindActive retrieves the active product catalog.
func (r *ProductRepo) FindActive(ctx context.Context) ([]*model.LoanProduct, error) {
	query := `SELECT ` + productColumns + ` FROM loan_products WHERE active ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*model.LoanProduct
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanProduct(s scannable) (*model.LoanProduct, error) {
	var (
		id                             uuid.UUID
		name, description              string
		minAmount, maxAmount           decimal.Decimal
		minTermMonths, maxTermMonths   int
		interestRate, feeRate, lateFee decimal.Decimal
		active                         bool
		createdAt, updatedAt           time.Time
	)

	err := s.Scan(
		&id, &name, &description, &minAmount, &maxAmount,
		&minTermMonths, &maxTermMonths,
		&interestRate, &feeRate, &lateFee,
		&active, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	return model.ReconstructLoanProduct(
		id, name, description, minAmount, maxAmount,
		minTermMonths, maxTermMonths,
		interestRate, feeRate, lateFee,
		active, createdAt, updatedAt,
	), nil
}
