package usecase

import (
	"context"
	"fmt"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/dto"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/domainerr"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/model"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/port"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/service"
)

// ApplyForLoanUseCase orchestrates a new loan application: it scores the
// borrower, freezes the product terms onto the loan, and persists the
// pending application.
type ApplyForLoanUseCase struct {
	borrowerRepo port.BorrowerRepository
	productRepo  port.LoanProductRepository
	loanRepo     port.LoanRepository
	scorer       *service.CreditScoringService
	publisher    port.EventPublisher
}

// NewApplyForLoanUseCase wires dependencies.
func NewApplyForLoanUseCase(
	borrowerRepo port.BorrowerRepository,
	productRepo port.LoanProductRepository,
	loanRepo port.LoanRepository,
	scorer *service.CreditScoringService,
	publisher port.EventPublisher,
) *ApplyForLoanUseCase {
	return &ApplyForLoanUseCase{
		borrowerRepo: borrowerRepo,
		productRepo:  productRepo,
		loanRepo:     loanRepo,
		scorer:       scorer,
		publisher:    publisher,
	}
}

// Execute creates a pending loan application.
func (uc *ApplyForLoanUseCase) Execute(
	ctx context.Context,
	req dto.ApplyForLoanRequest,
) (dto.LoanResponse, error) {
	borrowerID, err := parseID(req.BorrowerID, "borrower ID")
	if err != nil {
		return dto.LoanResponse{}, err
	}
	productID, err := parseID(req.ProductID, "product ID")
	if err != nil {
		return dto.LoanResponse{}, err
	}

	// 1. Load borrower and product.
	borrower, err := uc.borrowerRepo.FindByID(ctx, borrowerID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find borrower: %w", err)
	}
	product, err := uc.productRepo.FindByID(ctx, productID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find product: %w", err)
	}

	// 2. One open loan per borrower at a time.
	openLoans, err := uc.loanRepo.CountOpenByBorrowerID(ctx, borrowerID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("count open loans: %w", err)
	}
	if openLoans > 0 {
		return dto.LoanResponse{}, domainerr.Conflict("borrower already has an open loan")
	}

	// 3. Score the application.
	score, rating := uc.scorer.Score(borrower, req.Amount, openLoans)

	// 4. Create the pending loan.
	loan, err := model.NewLoan(borrower, product, req.Amount, req.TermMonths, req.Purpose, score, rating)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("create loan: %w", err)
	}

	// 5. Persist.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	// 6. Publish domain events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan, false), nil
}
