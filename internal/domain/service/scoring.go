package service

import (
	"github.com/shopspring/decimal"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/model"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/valueobject"
)

const (
	baseScore = 500
	minScore  = 300
	maxScore  = 850
)

// CreditScoringService computes an applicant score from the borrower profile
// and the requested amount. The model is a deterministic additive band
// model: every input contributes a fixed adjustment to the base score and
// the result is clamped to [300, 850]. Missing inputs contribute zero, never
// a penalty.
type CreditScoringService struct{}

func NewCreditScoringService() *CreditScoringService {
	return &CreditScoringService{}
}

// Score rates an application. openLoans is the borrower's count of loans
// currently pending, approved, or active.
func (s *CreditScoringService) Score(
	borrower model.Borrower,
	requestedAmount decimal.Decimal,
	openLoans int,
) (int, valueobject.RiskRating) {
	score := baseScore
	score += incomeRatioBand(borrower.AnnualIncome(), requestedAmount)
	score += openLoansBand(openLoans)
	score += employmentBand(borrower.EmploymentYears())
	score += paymentHistoryBand(borrower.PaymentHistory())

	if score < minScore {
		score = minScore
	}
	if score > maxScore {
		score = maxScore
	}
	return score, RiskRatingForScore(score)
}

// RiskRatingForScore maps a clamped score onto a rating band.
func RiskRatingForScore(score int) valueobject.RiskRating {
	switch {
	case score >= 700:
		return valueobject.RiskRatingLow
	case score >= 600:
		return valueobject.RiskRatingMedium
	case score >= 500:
		return valueobject.RiskRatingHigh
	default:
		return valueobject.RiskRatingVeryHigh
	}
}

// incomeRatioBand rewards income relative to the requested amount. A
// borrower earning twice the loan per year gets the full adjustment.
func incomeRatioBand(annualIncome, requestedAmount decimal.Decimal) int {
	if requestedAmount.LessThanOrEqual(decimal.Zero) || annualIncome.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	ratio := annualIncome.Div(requestedAmount)
	switch {
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(2)):
		return 150
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return 100
	case ratio.GreaterThanOrEqual(decimal.NewFromFloat(0.5)):
		return 50
	default:
		return 0
	}
}

func openLoansBand(openLoans int) int {
	switch {
	case openLoans <= 0:
		return 100
	case openLoans == 1:
		return 50
	case openLoans == 2:
		return 0
	default:
		return -50
	}
}

func employmentBand(years int) int {
	switch {
	case years >= 5:
		return 100
	case years >= 2:
		return 50
	case years >= 1:
		return 25
	default:
		return 0
	}
}

func paymentHistoryBand(history string) int {
	switch history {
	case "excellent":
		return 150
	case "good":
		return 100
	case "fair":
		return 50
	case "poor":
		return -100
	default:
		return 0
	}
}
