package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/domainerr"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/model"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/valueobject"
)

func TestMonthlyPayment(t *testing.T) {
	t.Run("annuity formula", func(t *testing.T) {
		// 120,000 at 12% annual over 12 months.
		payment, err := model.MonthlyPayment(decimal.NewFromInt(120_000), decimal.NewFromFloat(0.12), 12)
		require.NoError(t, err)
		assert.True(t, payment.Equal(decimal.NewFromFloat(10_661.85)),
			"expected 10661.85, got %s", payment)
	})

	t.Run("zero rate splits principal evenly", func(t *testing.T) {
		payment, err := model.MonthlyPayment(decimal.NewFromInt(12_000), decimal.Zero, 12)
		require.NoError(t, err)
		assert.True(t, payment.Equal(decimal.NewFromInt(1000)), "got %s", payment)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		_, err := model.MonthlyPayment(decimal.NewFromInt(1000), decimal.NewFromFloat(0.1), 0)
		assert.True(t, domainerr.IsKind(err, domainerr.KindValidation))

		_, err = model.MonthlyPayment(decimal.Zero, decimal.NewFromFloat(0.1), 12)
		assert.True(t, domainerr.IsKind(err, domainerr.KindValidation))

		_, err = model.MonthlyPayment(decimal.NewFromInt(1000), decimal.NewFromFloat(-0.1), 12)
		assert.True(t, domainerr.IsKind(err, domainerr.KindValidation))
	})
}

func TestGenerateSchedule(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	schedule, err := model.GenerateSchedule(decimal.NewFromInt(120_000), decimal.NewFromFloat(0.12), 12, start)
	require.NoError(t, err)
	require.Len(t, schedule, 12)

	first := schedule[0]
	assert.Equal(t, 1, first.PaymentNumber)
	assert.Equal(t, start.AddDate(0, 0, 30), first.DueDate, "due dates follow a fixed 30-day cadence")
	assert.True(t, first.AmountDue.Equal(decimal.NewFromFloat(10_661.85)), "got %s", first.AmountDue)
	assert.True(t, first.Interest.Equal(decimal.NewFromFloat(1200)), "got %s", first.Interest)
	assert.True(t, first.Principal.Equal(decimal.NewFromFloat(9_461.85)), "got %s", first.Principal)
	assert.True(t, first.Status.Equal(valueobject.RepaymentStatusPending))

	// Every non-final installment charges the same fixed payment.
	for _, entry := range schedule[:11] {
		assert.True(t, entry.AmountDue.Equal(decimal.NewFromFloat(10_661.85)),
			"entry %d: got %s", entry.PaymentNumber, entry.AmountDue)
	}

	// The final entry absorbs the rounding residue and lands on zero exactly.
	last := schedule[11]
	assert.Equal(t, 12, last.PaymentNumber)
	assert.Equal(t, start.AddDate(0, 0, 360), last.DueDate)
	assert.True(t, last.AmountDue.Equal(decimal.NewFromFloat(10_661.91)), "got %s", last.AmountDue)
	assert.True(t, last.RemainingBalance.IsZero(),
		"final remaining balance should be exactly zero, got %s", last.RemainingBalance)

	// Principal portions sum back to the original principal.
	totalPrincipal := decimal.Zero
	for _, entry := range schedule {
		totalPrincipal = totalPrincipal.Add(entry.Principal)
	}
	assert.True(t, totalPrincipal.Equal(decimal.NewFromInt(120_000)), "got %s", totalPrincipal)
}

func TestGenerateSchedule_ZeroRate(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	schedule, err := model.GenerateSchedule(decimal.NewFromInt(9_000), decimal.Zero, 3, start)
	require.NoError(t, err)
	require.Len(t, schedule, 3)

	for _, entry := range schedule {
		assert.True(t, entry.Interest.IsZero(), "entry %d: got %s", entry.PaymentNumber, entry.Interest)
		assert.True(t, entry.AmountDue.Equal(decimal.NewFromInt(3000)),
			"entry %d: got %s", entry.PaymentNumber, entry.AmountDue)
	}
	assert.True(t, schedule[2].RemainingBalance.IsZero())
}

func TestLateFee(t *testing.T) {
	base := decimal.NewFromInt(100)
	due := decimal.NewFromInt(1000)

	t.Run("not overdue", func(t *testing.T) {
		assert.True(t, model.LateFee(base, due, 0).IsZero())
	})

	t.Run("under one week charges base only", func(t *testing.T) {
		fee := model.LateFee(base, due, 6)
		assert.True(t, fee.Equal(decimal.NewFromInt(100)), "got %s", fee)
	})

	t.Run("one full week adds one percent of the amount due", func(t *testing.T) {
		// 10 days overdue on 1000 due with base 100: 100 + 1*1000*0.01 = 110.
		fee := model.LateFee(base, due, 10)
		assert.True(t, fee.Equal(decimal.NewFromInt(110)), "got %s", fee)
	})

	t.Run("weeks accumulate", func(t *testing.T) {
		fee := model.LateFee(base, due, 21)
		assert.True(t, fee.Equal(decimal.NewFromInt(130)), "got %s", fee)
	})
}

func TestDaysOverdue(t *testing.T) {
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, model.DaysOverdue(due, due))
	assert.Equal(t, 0, model.DaysOverdue(due, due.Add(-time.Hour)))
	assert.Equal(t, 1, model.DaysOverdue(due, due.Add(time.Hour)), "partial days round up")
	assert.Equal(t, 1, model.DaysOverdue(due, due.Add(24*time.Hour)))
	assert.Equal(t, 2, model.DaysOverdue(due, due.Add(36*time.Hour)))
	assert.Equal(t, 10, model.DaysOverdue(due, due.Add(240*time.Hour)))
}
