package usecase

import (
	"context"
	"fmt"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/dto"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/port"
)

// GetBorrowerUseCase retrieves a borrower by ID.
type GetBorrowerUseCase struct {
	borrowerRepo port.BorrowerRepository
}

func NewGetBorrowerUseCase(borrowerRepo port.BorrowerRepository) *GetBorrowerUseCase {
	return &GetBorrowerUseCase{borrowerRepo: borrowerRepo}
}

func (uc *GetBorrowerUseCase) Execute(ctx context.Context, rawID string) (dto.BorrowerResponse, error) {
	borrowerID, err := parseID(rawID, "borrower ID")
	if err != nil {
		return dto.BorrowerResponse{}, err
	}

	borrower, err := uc.borrowerRepo.FindByID(ctx, borrowerID)
	if err != nil {
		return dto.BorrowerResponse{}, fmt.Errorf("find borrower: %w", err)
	}
	return toBorrowerResponse(borrower), nil
}
