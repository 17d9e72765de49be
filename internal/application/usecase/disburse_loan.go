package usecase

import (
	"context"
	"fmt"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/dto"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/model"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/port"
)

// DisburseLoanUseCase releases funds on an approved loan. The status flip,
// the generated schedule, and the ledger entries commit in one database
// transaction; a concurrent disbursement loses the optimistic-lock race and
// surfaces as a conflict.
type DisburseLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewDisburseLoanUseCase wires dependencies.
func NewDisburseLoanUseCase(loanRepo port.LoanRepository, publisher port.EventPublisher) *DisburseLoanUseCase {
	return &DisburseLoanUseCase{loanRepo: loanRepo, publisher: publisher}
}

// Execute disburses the loan and activates repayment.
func (uc *DisburseLoanUseCase) Execute(
	ctx context.Context,
	req dto.DisburseLoanRequest,
) (dto.LoanResponse, error) {
	loanID, err := parseID(req.LoanID, "loan ID")
	if err != nil {
		return dto.LoanResponse{}, err
	}

	// 1. Load the loan.
	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 2. Disburse: generates the schedule and opens the balance.
	loan, err = loan.Disburse(req.Method, req.Account, req.Reference)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("disburse loan: %w", err)
	}

	// 3. Build the ledger entries.
	disbursement, err := model.NewTransaction(
		loan.ID(), model.TransactionDisbursement, loan.Principal(), req.Reference,
		fmt.Sprintf("disbursement via %s to %s", req.Method, req.Account),
	)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("build disbursement entry: %w", err)
	}
	ledger := []model.Transaction{disbursement}

	if loan.ProcessingFee().IsPositive() {
		fee, err := model.NewTransaction(
			loan.ID(), model.TransactionFee, loan.ProcessingFee(), req.Reference,
			"processing fee",
		)
		if err != nil {
			return dto.LoanResponse{}, fmt.Errorf("build fee entry: %w", err)
		}
		ledger = append(ledger, fee)
	}

	// 4. Persist loan, schedule, and ledger atomically.
	if err := uc.loanRepo.Save(ctx, loan, ledger...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	// 5. Publish domain events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan, true), nil
}
