package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/domainerr"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/money"
)

// LoanProduct defines the commercial terms a loan can be originated under.
// The interest rate, fee rates, and amount/term bounds are frozen onto each
// loan at application time, so editing a product never changes loans already
// in flight.
type LoanProduct struct {
	id                uuid.UUID
	name              string
	description       string
	minAmount         decimal.Decimal
	maxAmount         decimal.Decimal
	minTermMonths     int
	maxTermMonths     int
	interestRate      decimal.Decimal
	processingFeeRate decimal.Decimal
	lateFeeBase       decimal.Decimal
	active            bool
	createdAt         time.Time
	updatedAt         time.Time
}

func NewLoanProduct(
	name, description string,
	minAmount, maxAmount decimal.Decimal,
	minTermMonths, maxTermMonths int,
	interestRate, processingFeeRate, lateFeeBase decimal.Decimal,
) (*LoanProduct, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domainerr.Validation("product name is required")
	}
	if minAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domainerr.Validation("minimum amount must be positive, got %s", minAmount)
	}
	if maxAmount.LessThan(minAmount) {
		return nil, domainerr.Validation("maximum amount %s is below minimum amount %s", maxAmount, minAmount)
	}
	if minTermMonths <= 0 {
		return nil, domainerr.Validation("minimum term must be positive, got %d", minTermMonths)
	}
	if maxTermMonths < minTermMonths {
		return nil, domainerr.Validation("maximum term %d is below minimum term %d", maxTermMonths, minTermMonths)
	}
	if interestRate.IsNegative() {
		return nil, domainerr.Validation("interest rate must not be negative, got %s", interestRate)
	}
	if processingFeeRate.IsNegative() {
		return nil, domainerr.Validation("processing fee rate must not be negative, got %s", processingFeeRate)
	}
	if lateFeeBase.IsNegative() {
		return nil, domainerr.Validation("late fee base must not be negative, got %s", lateFeeBase)
	}

	now := time.Now().UTC()
	return &LoanProduct{
		id:                uuid.New(),
		name:              name,
		description:       description,
		minAmount:         minAmount,
		maxAmount:         maxAmount,
		minTermMonths:     minTermMonths,
		maxTermMonths:     maxTermMonths,
		interestRate:      money.NormalizeRate(interestRate),
		processingFeeRate: money.NormalizeRate(processingFeeRate),
		lateFeeBase:       lateFeeBase,
		active:            true,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// ReconstructLoanProduct rebuilds a product from persisted state.
func ReconstructLoanProduct(
	id uuid.UUID,
	name, description string,
	minAmount, maxAmount decimal.Decimal,
	minTermMonths, maxTermMonths int,
	interestRate, processingFeeRate, lateFeeBase decimal.Decimal,
	active bool,
	createdAt, updatedAt time.Time,
) *LoanProduct {
	return &LoanProduct{
		id:                id,
		name:              name,
		description:       description,
		minAmount:         minAmount,
		maxAmount:         maxAmount,
		minTermMonths:     minTermMonths,
		maxTermMonths:     maxTermMonths,
		interestRate:      interestRate,
		processingFeeRate: processingFeeRate,
		lateFeeBase:       lateFeeBase,
		active:            active,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// ValidateRequest checks a requested amount and term against the product's
// bounds.
func (p *LoanProduct) ValidateRequest(amount decimal.Decimal, termMonths int) error {
	if !p.active {
		return domainerr.Validation("product %s is not active", p.name)
	}
	if amount.LessThan(p.minAmount) || amount.GreaterThan(p.maxAmount) {
		return domainerr.Validation(
			"amount %s is outside product range [%s, %s]", amount, p.minAmount, p.maxAmount)
	}
	if termMonths < p.minTermMonths || termMonths > p.maxTermMonths {
		return domainerr.Validation(
			"term %d months is outside product range [%d, %d]", termMonths, p.minTermMonths, p.maxTermMonths)
	}
	return nil
}

// ProcessingFee computes the origination fee for the given principal.
func (p *LoanProduct) ProcessingFee(principal decimal.Decimal) decimal.Decimal {
	return money.Fraction(principal, p.processingFeeRate)
}

func (p *LoanProduct) ID() uuid.UUID                      { return p.id }
func (p *LoanProduct) Name() string                       { return p.name }
func (p *LoanProduct) Description() string                { return p.description }
func (p *LoanProduct) MinAmount() decimal.Decimal         { return p.minAmount }
func (p *LoanProduct) MaxAmount() decimal.Decimal         { return p.maxAmount }
func (p *LoanProduct) MinTermMonths() int                 { return p.minTermMonths }
func (p *LoanProduct) MaxTermMonths() int                 { return p.maxTermMonths }
func (p *LoanProduct) InterestRate() decimal.Decimal      { return p.interestRate }
func (p *LoanProduct) ProcessingFeeRate() decimal.Decimal { return p.processingFeeRate }
func (p *LoanProduct) LateFeeBase() decimal.Decimal       { return p.lateFeeBase }
func (p *LoanProduct) Active() bool                       { return p.active }
func (p *LoanProduct) CreatedAt() time.Time               { return p.createdAt }
func (p *LoanProduct) UpdatedAt() time.Time               { return p.updatedAt }
