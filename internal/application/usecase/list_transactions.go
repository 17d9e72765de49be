package usecase

import (
	"context"
	"fmt"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/dto"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/port"
)

// ListTransactionsUseCase returns the append-only ledger of a loan.
type ListTransactionsUseCase struct {
	loanRepo port.LoanRepository
	txRepo   port.TransactionRepository
}

func NewListTransactionsUseCase(loanRepo port.LoanRepository, txRepo port.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{loanRepo: loanRepo, txRepo: txRepo}
}

func (uc *ListTransactionsUseCase) Execute(ctx context.Context, rawLoanID string) ([]dto.TransactionResponse, error) {
	loanID, err := parseID(rawLoanID, "loan ID")
	if err != nil {
		return nil, err
	}

	// Resolve the loan first so a missing loan is a 404, not an empty list.
	if _, err := uc.loanRepo.FindByID(ctx, loanID); err != nil {
		return nil, fmt.Errorf("find loan: %w", err)
	}

	txs, err := uc.txRepo.FindByLoanID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	out := make([]dto.TransactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = toTransactionResponse(tx)
	}
	return out, nil
}
