package usecase

import (
	"context"
	"fmt"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/dto"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/port"
)

// ReviewKYCUseCase records a KYC decision for a borrower.
type ReviewKYCUseCase struct {
	borrowerRepo port.BorrowerRepository
	publisher    port.EventPublisher
}

// NewReviewKYCUseCase wires dependencies.
func NewReviewKYCUseCase(
	borrowerRepo port.BorrowerRepository,
	publisher port.EventPublisher,
) *ReviewKYCUseCase {
	return &ReviewKYCUseCase{
		borrowerRepo: borrowerRepo,
		publisher:    publisher,
	}
}

// Execute applies the decision. Only a pending KYC can be decided.
func (uc *ReviewKYCUseCase) Execute(
	ctx context.Context,
	req dto.ReviewKYCRequest,
) (dto.BorrowerResponse, error) {
	borrowerID, err := parseID(req.BorrowerID, "borrower ID")
	if err != nil {
		return dto.BorrowerResponse{}, err
	}

	// 1. Load the borrower.
	borrower, err := uc.borrowerRepo.FindByID(ctx, borrowerID)
	if err != nil {
		return dto.BorrowerResponse{}, fmt.Errorf("find borrower: %w", err)
	}

	// 2. Apply the decision.
	if req.Approved {
		borrower, err = borrower.ApproveKYC()
	} else {
		borrower, err = borrower.RejectKYC(req.Reason)
	}
	if err != nil {
		return dto.BorrowerResponse{}, fmt.Errorf("review KYC: %w", err)
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
