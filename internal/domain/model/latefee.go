package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/money"
)

var weeklyPenaltyRate = decimal.NewFromFloat(0.01)

// DaysOverdue returns how many days past due an installment is at the given
// instant, rounding any partial day up. It returns 0 when the due date has
// not passed.
func DaysOverdue(dueDate, now time.Time) int {
	if !now.After(dueDate) {
		return 0
	}
	hours := now.Sub(dueDate).Hours()
	days := int(hours / 24)
	if float64(days)*24 < hours {
		days++
	}
	return days
}

// LateFee computes the penalty for an overdue installment: the product's
// flat base fee plus 1% of the scheduled amount due per full week overdue.
func LateFee(baseFee, amountDue decimal.Decimal, daysOverdue int) decimal.Decimal {
	if daysOverdue <= 0 {
		return decimal.Zero
	}
	weeks := decimal.NewFromInt(int64(daysOverdue / 7))
	return money.Round(baseFee.Add(amountDue.Mul(weeklyPenaltyRate).Mul(weeks)))
}
