package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/domainerr"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/valueobject"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/money"
)

// installmentIntervalDays is the fixed cadence between due dates. The
// schedule is not calendar-month aware: installment i falls due 30*i days
// after the start date, and the final payment date is the last entry's due
// date under the same cadence.
const installmentIntervalDays = 30

// ScheduleEntry is one installment of a repayment schedule. The plan fields
// (due date, amounts, portions) are fixed at generation time; only
// AmountPaid, LateFee, DaysOverdue, and Status change afterwards, during
// repayment processing.
type ScheduleEntry struct {
	PaymentNumber    int
	DueDate          time.Time
	AmountDue        decimal.Decimal
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	RemainingBalance decimal.Decimal
	AmountPaid       decimal.Decimal
	LateFee          decimal.Decimal
	DaysOverdue      int
	Status           valueobject.RepaymentStatus
}

// Owed returns what is still owed on the entry, late fees included.
func (e ScheduleEntry) Owed() decimal.Decimal {
	owed := e.AmountDue.Add(e.LateFee).Sub(e.AmountPaid)
	if owed.IsNegative() {
		return decimal.Zero
	}
	return owed
}

// DueCovered returns how much of the scheduled amount due has been paid,
// capped at the amount due. Payments cover the scheduled amount before late
// fees.
func (e ScheduleEntry) DueCovered() decimal.Decimal {
	if e.AmountPaid.GreaterThan(e.AmountDue) {
		return e.AmountDue
	}
	return e.AmountPaid
}

// MonthlyPayment computes the fixed installment for the given loan terms.
// With a zero rate the principal is split evenly (straight-line); otherwise
// the standard annuity formula applies:
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// where r is the monthly rate. The power term is computed in float64 and the
// result is brought back into decimal for monetary arithmetic, rounded to two
// places.
func MonthlyPayment(principal, annualRate decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if termMonths <= 0 {
		return decimal.Zero, domainerr.Validation("term months must be positive, got %d", termMonths)
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domainerr.Validation("principal must be positive, got %s", principal)
	}
	if annualRate.IsNegative() {
		return decimal.Zero, domainerr.Validation("annual rate must not be negative, got %s", annualRate)
	}

	monthlyRate := money.MonthlyRate(annualRate)
	if monthlyRate.IsZero() {
		return money.Round(principal.Div(decimal.NewFromInt(int64(termMonths)))), nil
	}

	r := monthlyRate.InexactFloat64()
	n := float64(termMonths)
	factor := math.Pow(1+r, n)
	payment := principal.InexactFloat64() * r * factor / (factor - 1)

	return money.Round(decimal.NewFromFloat(payment)), nil
}

// GenerateSchedule computes the full fixed-payment amortization schedule.
// Due dates follow the fixed 30-day cadence from startDate. Each iteration
// rounds the interest portion on its own; the principal portion is the
// difference against the fixed payment, so no rounding drift accumulates
// between portions. The final entry absorbs any residual cents: its principal
// portion is forced to the remaining balance so the schedule ends at exactly
// zero.
func GenerateSchedule(
	principal, annualRate decimal.Decimal,
	termMonths int,
	startDate time.Time,
) ([]ScheduleEntry, error) {
	payment, err := MonthlyPayment(principal, annualRate, termMonths)
	if err != nil {
		return nil, err
	}

	monthlyRate := money.MonthlyRate(annualRate)
	schedule := make([]ScheduleEntry, 0, termMonths)
	remaining := principal

	for number := 1; number <= termMonths; number++ {
		dueDate := startDate.AddDate(0, 0, number*installmentIntervalDays)

		interest := money.Round(remaining.Mul(monthlyRate))
		principalPart := payment.Sub(interest)
		total := payment

		if number == termMonths {
			// Final entry: absorb rounding residue and force the balance to zero.
			principalPart = remaining
			total = principalPart.Add(interest)
		}

		remaining = remaining.Sub(principalPart)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		schedule = append(schedule, ScheduleEntry{
			PaymentNumber:    number,
			DueDate:          dueDate,
			AmountDue:        total,
			Principal:        principalPart,
			Interest:         interest,
			RemainingBalance: remaining,
			AmountPaid:       decimal.Zero,
			LateFee:          decimal.Zero,
			Status:           valueobject.RepaymentStatusPending,
		})
	}

	return schedule, nil
}
