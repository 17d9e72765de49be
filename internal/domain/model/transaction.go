package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/domainerr"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionDisbursement TransactionType = "DISBURSEMENT"
	TransactionRepayment    TransactionType = "REPAYMENT"
	TransactionFee          TransactionType = "FEE"
	TransactionPenalty      TransactionType = "PENALTY"
)

var validTransactionTypes = map[TransactionType]struct{}{
	TransactionDisbursement: {},
	TransactionRepayment:    {},
	TransactionFee:          {},
	TransactionPenalty:      {},
}

// Transaction is one append-only ledger entry against a loan. Transactions
// are never updated or deleted; corrections are recorded as new entries.
type Transaction struct {
	id          uuid.UUID
	loanID      uuid.UUID
	txType      TransactionType
	amount      decimal.Decimal
	reference   string
	description string
	createdAt   time.Time
}

func NewTransaction(
	loanID uuid.UUID,
	txType TransactionType,
	amount decimal.Decimal,
	reference, description string,
) (Transaction, error) {
	if _, ok := validTransactionTypes[txType]; !ok {
		return Transaction{}, domainerr.Validation("unknown transaction type %q", txType)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, domainerr.Validation("transaction amount must be positive, got %s", amount)
	}
	return Transaction{
		id:          uuid.New(),
		loanID:      loanID,
		txType:      txType,
		amount:      amount,
		reference:   reference,
		description: description,
		createdAt:   time.Now().UTC(),
	}, nil
}

// ReconstructTransaction rebuilds a ledger entry from persisted state.
func ReconstructTransaction(
	id, loanID uuid.UUID,
	txType TransactionType,
	amount decimal.Decimal,
	reference, description string,
	createdAt time.Time,
) Transaction {
	return Transaction{
		id:          id,
		loanID:      loanID,
		txType:      txType,
		amount:      amount,
		reference:   reference,
		description: description,
		createdAt:   createdAt,
	}
}

func (t Transaction) ID() uuid.UUID           { return t.id }
func (t Transaction) LoanID() uuid.UUID       { return t.loanID }
func (t Transaction) Type() TransactionType   { return t.txType }
func (t Transaction) Amount() decimal.Decimal { return t.amount }
func (t Transaction) Reference() string       { return t.reference }
func (t Transaction) Description() string     { return t.description }
func (t Transaction) CreatedAt() time.Time    { return t.createdAt }
