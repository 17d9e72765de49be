package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/model"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/valueobject"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/events"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// BorrowerRepository persists and retrieves borrowers.
type BorrowerRepository interface {
	Save(ctx context.Context, b model.Borrower) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Borrower, error)
	FindByEmail(ctx context.Context, email string) (model.Borrower, error)
}

// LoanProductRepository retrieves the product catalog. Products are managed
// out of band (migrations, back office), so the port is read-only.
type LoanProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.LoanProduct, error)
	FindActive(ctx context.Context) ([]*model.LoanProduct, error)
}

// LoanRepository persists and retrieves loans together with their repayment
// schedules. Save writes the loan row, its schedule, and any ledger entries
// in a single database transaction, guarded by the loan's optimistic-lock
// version.
type LoanRepository interface {
	Save(ctx context.Context, loan model.Loan, ledger ...model.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Loan, error)
	FindByLoanNumber(ctx context.Context, loanNumber string) (model.Loan, error)
	FindByBorrowerID(ctx context.Context, borrowerID uuid.UUID) ([]model.Loan, error)
	CountOpenByBorrowerID(ctx context.Context, borrowerID uuid.UUID) (int, error)
	FindByStatus(ctx context.Context, status valueobject.LoanStatus) ([]model.Loan, error)
}

// TransactionRepository reads the append-only ledger. Writes go through
// LoanRepository.Save so they commit atomically with the loan state change.
type TransactionRepository interface {
	FindByLoanID(ctx context.Context, loanID uuid.UUID) ([]model.Transaction, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
