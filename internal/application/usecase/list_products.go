package usecase

import (
	"context"
	"fmt"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/dto"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/port"
)

// ListProductsUseCase returns the active loan product catalog.
type ListProductsUseCase struct {
	productRepo port.LoanProductRepository
}

func NewListProductsUseCase(productRepo port.LoanProductRepository) *ListProductsUseCase {
	return &ListProductsUseCase{productRepo: productRepo}
}

func (uc *ListProductsUseCase) Execute(ctx context.Context) ([]dto.LoanProductResponse, error) {
	products, err := uc.productRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]dto.LoanProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out, nil
}
