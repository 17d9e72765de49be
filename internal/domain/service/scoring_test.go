package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/model"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/service"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/valueobject"
)

func borrowerWith(t *testing.T, income decimal.Decimal, employmentYears int, history string) model.Borrower {
	t.Helper()
	b, err := model.NewBorrower(
		"Test", "Borrower", "test@example.com", "+254700000000", "ID-00000001",
		time.Date(1988, 3, 21, 0, 0, 0, 0, time.UTC),
		income, employmentYears, history,
	)
	require.NoError(t, err)
	return b
}

func TestCreditScoringService_Score(t *testing.T) {
	svc := service.NewCreditScoringService()

	t.Run("strong profile maxes out", func(t *testing.T) {
		// 500 + 150 (income 2x) + 100 (no open loans) + 100 (5y employed)
		// + 150 (excellent history) = 1000, clamped to 850.
		b := borrowerWith(t, decimal.NewFromInt(400_000), 6, "excellent")
		score, rating := svc.Score(b, decimal.NewFromInt(200_000), 0)

		assert.Equal(t, 850, score)
		assert.True(t, rating.Equal(valueobject.RiskRatingLow))
	})

	t.Run("middling profile", func(t *testing.T) {
		// 500 + 50 (income 0.5x) + 50 (one open loan) + 25 (1y employed) + 0 = 625.
		b := borrowerWith(t, decimal.NewFromInt(100_000), 1, "")
		score, rating := svc.Score(b, decimal.NewFromInt(200_000), 1)

		assert.Equal(t, 625, score)
		assert.True(t, rating.Equal(valueobject.RiskRatingMedium))
	})

	t.Run("weak profile clamps at the floor", func(t *testing.T) {
		// 500 + 0 (income) - 50 (three open loans) + 0 (employment) - 100 (poor) = 350.
		b := borrowerWith(t, decimal.NewFromInt(10_000), 0, "poor")
		score, rating := svc.Score(b, decimal.NewFromInt(200_000), 3)

		assert.Equal(t, 350, score)
		assert.True(t, rating.Equal(valueobject.RiskRatingVeryHigh))
	})

	t.Run("missing inputs contribute zero", func(t *testing.T) {
		// 500 + 100 (income 1x) + 100 (no open loans) + 0 + 0 = 700.
		b := borrowerWith(t, decimal.NewFromInt(200_000), 0, "")
		score, rating := svc.Score(b, decimal.NewFromInt(200_000), 0)

		assert.Equal(t, 700, score)
		assert.True(t, rating.Equal(valueobject.RiskRatingLow))
	})
}

func TestRiskRatingForScore(t *testing.T) {
	cases := []struct {
		score  int
		rating valueobject.RiskRating
	}{
		{850, valueobject.RiskRatingLow},
		{700, valueobject.RiskRatingLow},
		{699, valueobject.RiskRatingMedium},
		{600, valueobject.RiskRatingMedium},
		{599, valueobject.RiskRatingHigh},
		{500, valueobject.RiskRatingHigh},
		{499, valueobject.RiskRatingVeryHigh},
		{300, valueobject.RiskRatingVeryHigh},
	}
	for _, tc := range cases {
		assert.True(t, service.RiskRatingForScore(tc.score).Equal(tc.rating),
			"score %d should map to %s", tc.score, tc.rating)
	}
}
