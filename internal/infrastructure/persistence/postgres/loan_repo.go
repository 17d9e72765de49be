package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/domainerr"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/model"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/valueobject"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/postgres"
)

// LoanRepo implements port.LoanRepository.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

const loanColumns = `
	id, loan_number, borrower_id, product_id,
	principal, interest_rate, term_months,
	processing_fee, late_fee_base, monthly_payment, total_amount, outstanding_balance,
	status, credit_score, risk_rating, purpose, rejection_reason, approver_id,
	approved_at, disbursed_at, first_payment_due, final_payment_due,
	version, created_at, updated_at
`

// Save persists the loan, its repayment schedule, and any ledger entries in
// one transaction. The loan row is guarded by the optimistic-lock version; a
// concurrent writer makes the guard miss and the whole save rolls back with
// a conflict.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan, ledger ...model.Transaction) error {
	return postgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		loanQuery := `
			INSERT INTO loans (
				id, loan_number, borrower_id, product_id,
				principal, interest_rate, term_months,
				processing_fee, late_fee_base, monthly_payment, total_amount, outstanding_balance,
				status, credit_score, risk_rating, purpose, rejection_reason, approver_id,
				approved_at, disbursed_at, first_payment_due, final_payment_due,
				version, created_at, updated_at
			) VALUES (
				$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,
				$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25
			)
			ON CONFLICT (id) DO UPDATE SET
				total_amount        = EXCLUDED.total_amount,
				outstanding_balance = EXCLUDED.outstanding_balance,
				status              = EXCLUDED.status,
				rejection_reason    = EXCLUDED.rejection_reason,
				approver_id         = EXCLUDED.approver_id,
				approved_at         = EXCLUDED.approved_at,
				disbursed_at        = EXCLUDED.disbursed_at,
				first_payment_due   = EXCLUDED.first_payment_due,
				final_payment_due   = EXCLUDED.final_payment_due,
				version             = loans.version + 1,
				updated_at          = EXCLUDED.updated_at
			WHERE loans.version = $23
		`
		tag, err := tx.Exec(ctx, loanQuery,
			loan.ID(), loan.LoanNumber(), loan.BorrowerID(), loan.ProductID(),
			loan.Principal(), loan.InterestRate(), loan.TermMonths(),
			loan.ProcessingFee(), loan.LateFeeBase(), loan.MonthlyPayment(), loan.TotalAmount(), loan.OutstandingBalance(),
			loan.Status().String(), loan.CreditScore(), loan.RiskRating().String(),
			loan.Purpose(), loan.RejectionReason(), loan.ApproverID(),
			loan.ApprovedAt(), loan.DisbursedAt(), loan.FirstPaymentDue(), loan.FinalPaymentDue(),
			loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("save loan: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domainerr.Conflict("loan %s was modified concurrently", loan.ID())
		}

		// Plan columns are immutable after generation; only the repayment
		// progress fields change on later saves.
		entryQuery := `
			INSERT INTO loan_repayments (
				loan_id, payment_number, due_date,
				amount_due, principal, interest, remaining_balance,
				amount_paid, late_fee, days_overdue, status
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			ON CONFLICT (loan_id, payment_number) DO UPDATE SET
				amount_paid  = EXCLUDED.amount_paid,
				late_fee     = EXCLUDED.late_fee,
				days_overdue = EXCLUDED.days_overdue,
				status       = EXCLUDED.status
		`
		for _, entry := range loan.Schedule() {
			_, err := tx.Exec(ctx, entryQuery,
				loan.ID(), entry.PaymentNumber, entry.DueDate,
				entry.AmountDue, entry.Principal, entry.Interest, entry.RemainingBalance,
				entry.AmountPaid, entry.LateFee, entry.DaysOverdue, entry.Status.String(),
			)
			if err != nil {
				return fmt.Errorf("save repayment entry %d: %w", entry.PaymentNumber, err)
			}
		}

		txQuery := `
			INSERT INTO transactions (id, loan_id, type, amount, reference, description, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`
		for _, entry := range ledger {
			_, err := tx.Exec(ctx, txQuery,
				entry.ID(), entry.LoanID(), string(entry.Type()),
				entry.Amount(), entry.Reference(), entry.Description(), entry.CreatedAt(),
			)
			if err != nil {
				return fmt.Errorf("save transaction %s: %w", entry.ID(), err)
			}
		}

		return nil
	})
}

// FindByID retrieves a loan and its repayment schedule by ID.
func (r *LoanRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	loan, err := scanLoanRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return model.Loan{}, notFound(err, "loan %s not found", id)
	}
	return r.withSchedule(ctx, loan)
}

// FindByLoanNumber retrieves a loan by its human-facing reference.
func (r *LoanRepo) FindByLoanNumber(ctx context.Context, loanNumber string) (model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_number = $1`
	loan, err := scanLoanRow(r.pool.QueryRow(ctx, query, loanNumber))
	if err != nil {
		return model.Loan{}, notFound(err, "loan %s not found", loanNumber)
	}
	return r.withSchedule(ctx, loan)
}

// FindByBorrowerID retrieves all loans of one borrower, newest first.
func (r *LoanRepo) FindByBorrowerID(ctx context.Context, borrowerID uuid.UUID) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE borrower_id = $1 ORDER BY created_at DESC`
	return r.queryLoans(ctx, query, borrowerID)
}

// CountOpenByBorrowerID counts a borrower's pending, approved, and active
// loans.
func (r *LoanRepo) CountOpenByBorrowerID(ctx context.Context, borrowerID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*) FROM loans
		WHERE borrower_id = $1 AND status IN ('PENDING', 'APPROVED', 'ACTIVE')
	`
	var count int
	if err := r.pool.QueryRow(ctx, query, borrowerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count open loans: %w", err)
	}
	return count, nil
}

// FindByStatus retrieves all loans in the given status.
func (r *LoanRepo) FindByStatus(ctx context.Context, status valueobject.LoanStatus) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE status = $1 ORDER BY created_at DESC`
	return r.queryLoans(ctx, query, status.String())
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

func (r *LoanRepo) queryLoans(ctx context.Context, query string, args ...any) ([]model.Loan, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		loan, err := scanLoanRow(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, loan := range loans {
		loaded, err := r.withSchedule(ctx, loan)
		if err != nil {
			return nil, err
		}
		loans[i] = loaded
	}
	return loans, nil
}

func (r *LoanRepo) withSchedule(ctx context.Context, loan model.Loan) (model.Loan, error) {
	schedule, err := r.loadSchedule(ctx, loan.ID())
	if err != nil {
		return model.Loan{}, err
	}
	if len(schedule) == 0 {
		return loan, nil
	}
	return model.ReconstructLoan(
		loan.ID(), loan.LoanNumber(), loan.BorrowerID(), loan.ProductID(),
		loan.Principal(), loan.InterestRate(), loan.TermMonths(),
		loan.ProcessingFee(), loan.LateFeeBase(), loan.MonthlyPayment(), loan.TotalAmount(), loan.OutstandingBalance(),
		loan.Status(), loan.CreditScore(), loan.RiskRating(),
		loan.Purpose(), loan.RejectionReason(), loan.ApproverID(),
		schedule,
		loan.ApprovedAt(), loan.DisbursedAt(), loan.FirstPaymentDue(), loan.FinalPaymentDue(),
		loan.CreatedAt(), loan.UpdatedAt(), loan.Version(),
	), nil
}

func (r *LoanRepo) loadSchedule(ctx context.Context, loanID uuid.UUID) ([]model.ScheduleEntry, error) {
	query := `
		SELECT payment_number, due_date,
		       amount_due, principal, interest, remaining_balance,
		       amount_paid, late_fee, days_overdue, status
		FROM loan_repayments
		WHERE loan_id = $1
		ORDER BY payment_number
	`
	rows, err := r.pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	defer rows.Close()

	var schedule []model.ScheduleEntry
	for rows.Next() {
		var (
			entry     model.ScheduleEntry
			statusStr string
		)
		err := rows.Scan(
			&entry.PaymentNumber, &entry.DueDate,
			&entry.AmountDue, &entry.Principal, &entry.Interest, &entry.RemainingBalance,
			&entry.AmountPaid, &entry.LateFee, &entry.DaysOverdue, &statusStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scan repayment entry: %w", err)
		}
		entry.Status, err = valueobject.NewRepaymentStatus(statusStr)
		if err != nil {
			return nil, fmt.Errorf("parse repayment status: %w", err)
		}
		schedule = append(schedule, entry)
	}
	return schedule, rows.Err()
}

func scanLoanRow(s scannable) (model.Loan, error) {
	var (
		id, borrowerID, productID                        uuid.UUID
		loanNumber                                       string
		principal, interestRate                          decimal.Decimal
		termMonths                                       int
		processingFee, lateFeeBase                       decimal.Decimal
		monthlyPayment, totalAmount, outstandingBalance  decimal.Decimal
		statusStr, riskStr                               string
		creditScore                                      int
		purpose, rejectionReason, approverID             string
		approvedAt, disbursedAt                          *time.Time
		firstPaymentDue, finalPaymentDue                 *time.Time
		version                                          int
		createdAt, updatedAt                             time.Time
	)

	err := s.Scan(
		&id, &loanNumber, &borrowerID, &productID,
		&principal, &interestRate, &termMonths,
		&processingFee, &lateFeeBase, &monthlyPayment, &totalAmount, &outstandingBalance,
		&statusStr, &creditScore, &riskStr, &purpose, &rejectionReason, &approverID,
		&approvedAt, &disbursedAt, &firstPaymentDue, &finalPaymentDue,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Loan{}, err
	}

	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse loan status: %w", err)
	}
	rating, err := valueobject.NewRiskRating(riskStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse risk rating: %w", err)
	}

	return model.ReconstructLoan(
		id, loanNumber, borrowerID, productID,
		principal, interestRate, termMonths,
		processingFee, lateFeeBase, monthlyPayment, totalAmount, outstandingBalance,
		status, creditScore, rating,
		purpose, rejectionReason, approverID,
		nil,
		approvedAt, disbursedAt, firstPaymentDue, finalPaymentDue,
		createdAt, updatedAt, version,
	), nil
}
