package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/domainerr"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/model"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/valueobject"
)

// BorrowerRepo implements port.BorrowerRepository.
type BorrowerRepo struct {
	pool *pgxpool.Pool
}

// NewBorrowerRepo creates a new PostgreSQL-backed borrower repository.
func NewBorrowerRepo(pool *pgxpool.Pool) *BorrowerRepo {
	return &BorrowerRepo{pool: pool}
}

const borrowerColumns = `
	id, first_name, last_name, email, phone, national_id, date_of_birth,
	annual_income, employment_years, payment_history,
	kyc_status, kyc_note, version, created_at, updated_at
`

// Save upserts a borrower under its optimistic-lock version.
func (r *BorrowerRepo) Save(ctx context.Context, b model.Borrower) error {
	query := `
		INSERT INTO borrowers (
			id, first_name, last_name, email, phone, national_id, date_of_birth,
			annual_income, employment_years, payment_history,
			kyc_status, kyc_note, version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (id) DO UPDATE SET
			phone      = EXCLUDED.phone,
			kyc_status = EXCLUDED.kyc_status,
			kyc_note   = EXCLUDED.kyc_note,
			version    = borrowers.version + 1,
			updated_at = EXCLUDED.updated_at
		WHERE borrowers.version = $13
	`
	tag, err := r.pool.Exec(ctx, query,
		b.ID(), b.FirstName(), b.LastName(), b.Email(), b.Phone(), b.NationalID(), b.DateOfBirth(),
		b.AnnualIncome(), b.EmploymentYears(), b.PaymentHistory(),
		b.KYCStatus().String(), b.KYCNote(), b.Version(), b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save borrower: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerr.Conflict("borrower %s was modified concurrently", b.ID())
	}
	return nil
}

// FindByID retrieves a borrower by ID.
func (r *BorrowerRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Borrower, error) {
	query := `SELECT ` + borrowerColumns + ` FROM borrowers WHERE id = $1`
	b, err := scanBorrower(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return model.Borrower{}, notFound(err, "borrower %s not found", id)
	}
	return b, nil
}

// FindByEmail retrieves a borrower by email.
func (r *BorrowerRepo) FindByEmail(ctx context.Context, email string) (model.Borrower, error) {
	query := `SELECT ` + borrowerColumns + ` FROM borrowers WHERE email = $1`
	b, err := scanBorrower(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		return model.Borrower{}, notFound(err, "borrower with email %s not found", email)
	}
	return b, nil
}

func scanBorrower(s scannable) (model.Borrower, error) {
	var (
		id                                  uuid.UUID
		firstName, lastName, email, phone   string
		nationalID                          string
		dateOfBirth                         time.Time
		annualIncome                        decimal.Decimal
		employmentYears                     int
		paymentHistory, kycStatus, kycNote  string
		version                             int
		createdAt, updatedAt                time.Time
	)

	err := s.Scan(
		&id, &firstName, &lastName, &email, &phone, &nationalID, &dateOfBirth,
		&annualIncome, &employmentYears, &paymentHistory,
		&kycStatus, &kycNote, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Borrower{}, err
	}

	status, err := valueobject.NewKYCStatus(kycStatus)
	if err != nil {
		return model.Borrower{}, fmt.Errorf("parse KYC status: %w", err)
	}

	return model.ReconstructBorrower(
		id, firstName, lastName, email, phone, nationalID, dateOfBirth,
		annualIncome, employmentYears, paymentHistory,
		status, kycNote, createdAt, updatedAt, version,
	), nil
}
