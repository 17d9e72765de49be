package usecase

import (
	"context"
	"fmt"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/dto"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/port"
)

// ApproveLoanUseCase approves a pending application.
type ApproveLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewApproveLoanUseCase wires dependencies.
func NewApproveLoanUseCase(loanRepo port.LoanRepository, publisher port.EventPublisher) *ApproveLoanUseCase {
	return &ApproveLoanUseCase{loanRepo: loanRepo, publisher: publisher}
}

// Execute approves the loan. Only pending loans can be approved.
func (uc *ApproveLoanUseCase) Execute(
	ctx context.Context,
	req dto.ApproveLoanRequest,
) (dto.LoanResponse, error) {
	loanID, err := parseID(req.LoanID, "loan ID")
	if err != nil {
		return dto.LoanResponse{}, err
	}

	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	loan, err = loan.Approve(req.ApproverID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("approve loan: %w", err)
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan, false), nil
}

// RejectLoanUseCase declines a pending application.
type RejectLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewRejectLoanUseCase wires dependencies.
func NewRejectLoanUseCase(loanRepo port.LoanRepository, publisher port.EventPublisher) *RejectLoanUseCase {
	return &RejectLoanUseCase{loanRepo: loanRepo, publisher: publisher}
}

// Execute rejects the loan with a mandatory reason.
func (uc *RejectLoanUseCase) Execute(
	ctx context.Context,
	req dto.RejectLoanRequest,
) (dto.LoanResponse, error) {
	loanID, err := parseID(req.LoanID, "loan ID")
	if err != nil {
		return dto.LoanResponse{}, err
	}

	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	loan, err = loan.Reject(req.ApproverID, req.Reason)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("reject loan: %w", err)
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan, false), nil
}

// CancelLoanUseCase withdraws a loan before funds move.
type CancelLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewCancelLoanUseCase wires dependencies.
func NewCancelLoanUseCase(loanRepo port.LoanRepository, publisher port.EventPublisher) *CancelLoanUseCase {
	return &CancelLoanUseCase{loanRepo: loanRepo, publisher: publisher}
}

// Execute cancels a pending or approved loan.
func (uc *CancelLoanUseCase) Execute(
	ctx context.Context,
	req dto.CancelLoanRequest,
) (dto.LoanResponse, error) {
	loanID, err := parseID(req.LoanID, "loan ID")
	if err != nil {
		return dto.LoanResponse{}, err
	}

	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	loan, err = loan.Cancel(req.Reason)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("cancel loan: %w", err)
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan, false), nil
}
