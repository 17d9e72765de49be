package usecase

import (
	"context"
	"fmt"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/dto"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/domainerr"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/model"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/port"
)

// RegisterBorrowerUseCase creates a new borrower with KYC pending.
type RegisterBorrowerUseCase struct {
	borrowerRepo port.BorrowerRepository
	publisher    port.EventPublisher
}

// NewRegisterBorrowerUseCase wires dependencies.
func NewRegisterBorrowerUseCase(
	borrowerRepo port.BorrowerRepository,
	publisher port.EventPublisher,
) *RegisterBorrowerUseCase {
	return &RegisterBorrowerUseCase{
		borrowerRepo: borrowerRepo,
		publisher:    publisher,
	}
}

// Execute registers a borrower. The email must not already be in use.
func (uc *RegisterBorrowerUseCase) Execute(
	ctx context.Context,
	req dto.RegisterBorrowerRequest,
) (dto.BorrowerResponse, error) {
	// 1. Reject duplicate registrations up front.
	if _, err := uc.borrowerRepo.FindByEmail(ctx, req.Email); err == nil {
		return dto.BorrowerResponse{}, domainerr.Conflict("email %s is already registered", req.Email)
	} else if !domainerr.IsKind(err, domainerr.KindNotFound) {
		return dto.BorrowerResponse{}, fmt.Errorf("check email: %w", err)
	}

	// 2. Create the aggregate.
	borrower, err := model.NewBorrower(
		req.FirstName, req.LastName, req.Email, req.Phone, req.NationalID,
		req.DateOfBirth, req.AnnualIncome, req.EmploymentYears, req.PaymentHistory,
	)
	if err != nil {
		return dto.BorrowerResponse{}, fmt.Errorf("create borrower: %w", err)
	}

	// 3. Persist.
	if err := uc.borrowerRepo.Save(ctx, borrower); err != nil {
		return dto.BorrowerResponse{}, fmt.Errorf("save borrower: %w", err)
	}

	// 4. Publish domain events.
	if err := uc.publisher.Publish(ctx, borrower.DomainEvents()...); err != nil {
		return dto.BorrowerResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toBorrowerResponse(borrower), nil
}
