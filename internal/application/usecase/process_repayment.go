package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/dto"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/model"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/port"
)

// ProcessRepaymentUseCase applies a payment to an active loan: the payment
// is allocated oldest due entry first, late fees are brought up to date
// before allocation, and the loan completes when the outstanding balance
// reaches exactly zero.
type ProcessRepaymentUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewProcessRepaymentUseCase wires dependencies.
func NewProcessRepaymentUseCase(loanRepo port.LoanRepository, publisher port.EventPublisher) *ProcessRepaymentUseCase {
	return &ProcessRepaymentUseCase{loanRepo: loanRepo, publisher: publisher}
}

// Execute processes the repayment.
func (uc *ProcessRepaymentUseCase) Execute(
	ctx context.Context,
	req dto.ProcessRepaymentRequest,
) (dto.RepaymentResponse, error) {
	now := time.Now().UTC()

	loanID, err := parseID(req.LoanID, "loan ID")
	if err != nil {
		return dto.RepaymentResponse{}, err
	}

	// 1. Load the loan.
	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 2. Allocate the payment.
	loan, allocations, err := loan.ApplyRepayment(req.Amount, req.Reference, now)
	if err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("apply repayment: %w", err)
	}

	// 3. Build the ledger entries: the repayment itself plus any penalty
	// portion collected with it.
	description := "loan repayment"
	if req.Method != "" {
		description = fmt.Sprintf("loan repayment via %s", req.Method)
	}
	repayment, err := model.NewTransaction(
		loan.ID(), model.TransactionRepayment, req.Amount, req.Reference, description,
	)
	if err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("build repayment entry: %w", err)
	}
	ledger := []model.Transaction{repayment}

	for _, alloc := range allocations {
		if !alloc.LateFeePaid.IsPositive() {
			continue
		}
		penalty, err := model.NewTransaction(
			loan.ID(), model.TransactionPenalty, alloc.LateFeePaid, req.Reference,
			fmt.Sprintf("late fee on installment %d", alloc.PaymentNumber),
		)
		if err != nil {
			return dto.RepaymentResponse{}, fmt.Errorf("build penalty entry: %w", err)
		}
		ledger = append(ledger, penalty)
	}

	// 4. Persist loan, schedule, and ledger atomically.
	if err := uc.loanRepo.Save(ctx, loan, ledger...); err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("save loan: %w", err)
	}

	// 5. Publish domain events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	out := make([]dto.AllocationResponse, len(allocations))
	for i, alloc := range allocations {
		out[i] = dto.AllocationResponse{
			PaymentNumber: alloc.PaymentNumber,
			Applied:       alloc.Applied,
			LateFeePaid:   alloc.LateFeePaid,
			Status:        alloc.Status.String(),
		}
	}
	return dto.RepaymentResponse{
		LoanID:             loan.ID().String(),
		AmountPaid:         req.Amount,
		Allocations:        out,
		OutstandingBalance: loan.OutstandingBalance(),
		LoanStatus:         loan.Status().String(),
	}, nil
}
