package usecase

import (
	"context"
	"fmt"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/dto"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/port"
)

// MarkLoanDefaultedUseCase flags an active loan as defaulted.
type MarkLoanDefaultedUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewMarkLoanDefaultedUseCase wires dependencies.
func NewMarkLoanDefaultedUseCase(loanRepo port.LoanRepository, publisher port.EventPublisher) *MarkLoanDefaultedUseCase {
	return &MarkLoanDefaultedUseCase{loanRepo: loanRepo, publisher: publisher}
}

// Execute marks the loan defaulted.
func (uc *MarkLoanDefaultedUseCase) Execute(ctx context.Context, rawID string) (dto.LoanResponse, error) {
	loanID, err := parseID(rawID, "loan ID")
	if err != nil {
		return dto.LoanResponse{}, err
	}

	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	loan, err = loan.MarkDefaulted()
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("mark defaulted: %w", err)
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan, false), nil
}

// WriteOffLoanUseCase removes a bad loan from the active book.
type WriteOffLoanUseCase struct {
	loanRepo port.LoanRepository
}

func NewWriteOffLoanUseCase(loanRepo port.LoanRepository) *WriteOffLoanUseCase {
	return &WriteOffLoanUseCase{loanRepo: loanRepo}
}

// Execute writes off an active or defaulted loan.
func (uc *WriteOffLoanUseCase) Execute(ctx context.Context, rawID string) (dto.LoanResponse, error) {
	loanID, err := parseID(rawID, "loan ID")
	if err != nil {
		return dto.LoanResponse{}, err
	}

	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	loan, err = loan.WriteOff()
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("write off: %w", err)
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	return toLoanResponse(loan, false), nil
}
