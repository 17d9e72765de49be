package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/domainerr"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/model"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/valueobject"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/events"
)

// --- Mock implementations ---

type mockBorrowerRepository struct {
	saveFunc        func(ctx context.Context, b model.Borrower) error
	findByIDFunc    func(ctx context.Context, id uuid.UUID) (model.Borrower, error)
	findByEmailFunc func(ctx context.Context, email string) (model.Borrower, error)
	saved           []model.Borrower
}

func (m *mockBorrowerRepository) Save(ctx context.Context, b model.Borrower) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, b)
	}
	m.saved = append(m.saved, b)
	return nil
}

func (m *mockBorrowerRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Borrower, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Borrower{}, domainerr.NotFound("borrower %s not found", id)
}

func (m *mockBorrowerRepository) FindByEmail(ctx context.Context, email string) (model.Borrower, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return model.Borrower{}, domainerr.NotFound("borrower with email %s not found", email)
}

type mockProductRepository struct {
	findByIDFunc   func(ctx context.Context, id uuid.UUID) (*model.LoanProduct, error)
	findActiveFunc func(ctx context.Context) ([]*model.LoanProduct, error)
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.LoanProduct, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, domainerr.NotFound("product %s not found", id)
}

func (m *mockProductRepository) FindActive(ctx context.Context) ([]*model.LoanProduct, error) {
	if m.findActiveFunc != nil {
		return m.findActiveFunc(ctx)
	}
	return nil, nil
}

type mockLoanRepository struct {
	saveFunc      func(ctx context.Context, loan model.Loan, ledger ...model.Transaction) error
	findByIDFunc  func(ctx context.Context, id uuid.UUID) (model.Loan, error)
	countOpenFunc func(ctx context.Context, borrowerID uuid.UUID) (int, error)
	savedLoans    []model.Loan
	savedLedger   []model.Transaction
}

func (m *mockLoanRepository) Save(ctx context.Context, loan model.Loan, ledger ...model.Transaction) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, loan, ledger...)
	}
	m.savedLoans = append(m.savedLoans, loan)
	m.savedLedger = append(m.savedLedger, ledger...)
	return nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Loan{}, domainerr.NotFound("loan %s not found", id)
}

func (m *mockLoanRepository) FindByLoanNumber(_ context.Context, loanNumber string) (model.Loan, error) {
	return model.Loan{}, domainerr.NotFound("loan %s not found", loanNumber)
}

func (m *mockLoanRepository) FindByBorrowerID(_ context.Context, _ uuid.UUID) ([]model.Loan, error) {
	return nil, nil
}

func (m *mockLoanRepository) CountOpenByBorrowerID(ctx context.Context, borrowerID uuid.UUID) (int, error) {
	if m.countOpenFunc != nil {
		return m.countOpenFunc(ctx, borrowerID)
	}
	return 0, nil
}

func (m *mockLoanRepository) FindByStatus(_ context.Context, _ valueobject.LoanStatus) ([]model.Loan, error) {
	return nil, nil
}

type mockTransactionRepository struct {
	findByLoanIDFunc func(ctx context.Context, loanID uuid.UUID) ([]model.Transaction, error)
}

func (m *mockTransactionRepository) FindByLoanID(ctx context.Context, loanID uuid.UUID) ([]model.Transaction, error) {
	if m.findByLoanIDFunc != nil {
		return m.findByLoanIDFunc(ctx, loanID)
	}
	return nil, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, evts ...events.DomainEvent) error
	publishedEvents []events.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

// --- Fixtures ---

func verifiedBorrower(t *testing.T) model.Borrower {
	t.Helper()
	b, err := model.NewBorrower(
		"Amina", "Odhiambo", "amina@example.com", "+254700000001", "ID-29481734",
		time.Date(1990, 6, 12, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(600_000), 6, "good",
	)
	require.NoError(t, err)
	b, err = b.ApproveKYC()
	require.NoError(t, err)
	return b.ClearEvents()
}

func flexProduct(t *testing.T) *model.LoanProduct {
	t.Helper()
	p, err := model.NewLoanProduct(
		"Personal Flex", "Unsecured personal loan",
		decimal.NewFromInt(10_000), decimal.NewFromInt(500_000),
		3, 36,
		decimal.NewFromInt(12),
		decimal.NewFromFloat(1.5),
		decimal.NewFromInt(100),
	)
	require.NoError(t, err)
	return p
}

func pendingLoan(t *testing.T) model.Loan {
	t.Helper()
	loan, err := model.NewLoan(
		verifiedBorrower(t), flexProduct(t),
		decimal.NewFromInt(120_000), 12, "working capital",
		720, valueobject.RiskRatingLow,
	)
	require.NoError(t, err)
	return loan.ClearEvents()
}

func approvedLoan(t *testing.T) model.Loan {
	t.Helper()
	loan, err := pendingLoan(t).Approve("officer-1")
	require.NoError(t, err)
	return loan.ClearEvents()
}

func activeLoan(t *testing.T) model.Loan {
	t.Helper()
	loan, err := approvedLoan(t).Disburse("MPESA", "254700000001", "DSB-001")
	require.NoError(t, err)
	return loan.ClearEvents()
}
