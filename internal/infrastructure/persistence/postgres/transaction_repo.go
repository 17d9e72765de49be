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

// TransactionRepo implements port.TransactionRepository. Ledger entries are
// written through LoanRepo.Save so they commit with the loan state change;
// this repository only reads them back.
type TransactionRepo struct {
	pool *pgxpool.Pool
}

// NewTransactionRepo creates a new PostgreSQL-backed transaction repository.
func NewTransactionRepo(pool *pgxpool.Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// FindByLoanID retrieves a loan's ledger, oldest first.
func (r *TransactionRepo) FindByLoanID(ctx context.Context, loanID uuid.UUID) ([]model.Transaction, error) {
	query := `
		SELECT id, loan_id, type, amount, reference, description, created_at
		FROM transactions
		WHERE loan_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		var (
			id, lID                           uuid.UUID
			txType, reference, description    string
			amount                            decimal.Decimal
			createdAt                         time.Time
		)
		err := rows.Scan(&id, &lID, &txType, &amount, &reference, &description, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, model.ReconstructTransaction(
			id, lID, model.TransactionType(txType), amount, reference, description, createdAt,
		))
	}
	return txs, rows.Err()
}
