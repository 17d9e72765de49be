package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/dto"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/port"
)

// GetLoanUseCase retrieves a loan with its repayment schedule. Overdue days
// and late fees on the returned schedule are computed as of now, without
// persisting them; they are written back when a repayment is processed.
type GetLoanUseCase struct {
	loanRepo port.LoanRepository
}

func NewGetLoanUseCase(loanRepo port.LoanRepository) *GetLoanUseCase {
	return &GetLoanUseCase{loanRepo: loanRepo}
}

func (uc *GetLoanUseCase) Execute(ctx context.Context, rawID string) (dto.LoanResponse, error) {
	loanID, err := parseID(rawID, "loan ID")
	if err != nil {
		return dto.LoanResponse{}, err
	}

	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	loan = loan.RefreshOverdue(time.Now().UTC())
	return toLoanResponse(loan, true), nil
}

// GetRepaymentScheduleUseCase returns just the schedule of a loan, with
// overdue state computed as of now.
type GetRepaymentScheduleUseCase struct {
	loanRepo port.LoanRepository
}

func NewGetRepaymentScheduleUseCase(loanRepo port.LoanRepository) *GetRepaymentScheduleUseCase {
	return &GetRepaymentScheduleUseCase{loanRepo: loanRepo}
}

func (uc *GetRepaymentScheduleUseCase) Execute(ctx context.Context, rawID string) ([]dto.ScheduleEntryResponse, error) {
	loanID, err := parseID(rawID, "loan ID")
	if err != nil {
		return nil, err
	}

	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("find loan: %w", err)
	}

	loan = loan.RefreshOverdue(time.Now().UTC())
	return toScheduleResponse(loan.Schedule()), nil
}

// ListBorrowerLoansUseCase returns all loans of one borrower, newest first.
type ListBorrowerLoansUseCase struct {
	loanRepo port.LoanRepository
}

func NewListBorrowerLoansUseCase(loanRepo port.LoanRepository) *ListBorrowerLoansUseCase {
	return &ListBorrowerLoansUseCase{loanRepo: loanRepo}
}

func (uc *ListBorrowerLoansUseCase) Execute(ctx context.Context, rawBorrowerID string) ([]dto.LoanResponse, error) {
	borrowerID, err := parseID(rawBorrowerID, "borrower ID")
	if err != nil {
		return nil, err
	}

	loans, err := uc.loanRepo.FindByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}

	out := make([]dto.LoanResponse, len(loans))
	for i, loan := range loans {
		out[i] = toLoanResponse(loan, false)
	}
	return out, nil
}
