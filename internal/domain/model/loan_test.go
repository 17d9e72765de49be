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

func newVerifiedBorrower(t *testing.T) model.Borrower {
	t.Helper()
	b, err := model.NewBorrower(
		"Amina", "Odhiambo", "amina@example.com", "+254700000001", "ID-29481734",
		time.Date(1990, 6, 12, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(600_000), 6, "good",
	)
	require.NoError(t, err)
	b, err = b.ApproveKYC()
	require.NoError(t, err)
	return b
}

func newTestProduct(t *testing.T) *model.LoanProduct {
	t.Helper()
	p, err := model.NewLoanProduct(
		"Personal Flex", "Unsecured personal loan",
		decimal.NewFromInt(10_000), decimal.NewFromInt(500_000),
		3, 36,
		decimal.NewFromInt(12),    // 12% annual, normalized on construction
		decimal.NewFromFloat(1.5), // 1.5% processing fee
		decimal.NewFromInt(100),
	)
	require.NoError(t, err)
	return p
}

func newPendingLoan(t *testing.T) model.Loan {
	t.Helper()
	loan, err := model.NewLoan(
		newVerifiedBorrower(t), newTestProduct(t),
		decimal.NewFromInt(120_000), 12, "working capital",
		720, valueobject.RiskRatingLow,
	)
	require.NoError(t, err)
	return loan
}

func newActiveLoan(t *testing.T) model.Loan {
	t.Helper()
	loan, err := newPendingLoan(t).Approve("officer-1")
	require.NoError(t, err)
	loan, err = loan.Disburse("MPESA", "254700000001", "DSB-001")
	require.NoError(t, err)
	return loan
}

func TestNewLoan(t *testing.T) {
	t.Run("freezes product terms", func(t *testing.T) {
		loan := newPendingLoan(t)

		assert.True(t, loan.Status().Equal(valueobject.LoanStatusPending))
		assert.True(t, loan.InterestRate().Equal(decimal.NewFromFloat(0.12)), "got %s", loan.InterestRate())
		assert.True(t, loan.MonthlyPayment().Equal(decimal.NewFromFloat(10_661.85)), "got %s", loan.MonthlyPayment())
		assert.True(t, loan.ProcessingFee().Equal(decimal.NewFromInt(1800)), "got %s", loan.ProcessingFee())
		assert.True(t, loan.OutstandingBalance().IsZero(), "nothing is owed before disbursement")
		assert.Equal(t, 720, loan.CreditScore())
		assert.NotEmpty(t, loan.LoanNumber())
		assert.Len(t, loan.DomainEvents(), 1)
	})

	t.Run("rejects unverified borrower", func(t *testing.T) {
		b, err := model.NewBorrower(
			"Brian", "Mutua", "brian@example.com", "+254700000002", "ID-11223344",
			time.Date(1995, 2, 1, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(400_000), 3, "",
		)
		require.NoError(t, err)

		_, err = model.NewLoan(b, newTestProduct(t),
			decimal.NewFromInt(50_000), 12, "school fees", 650, valueobject.RiskRatingMedium)
		assert.True(t, domainerr.IsKind(err, domainerr.KindValidation))
	})

	t.Run("enforces product bounds", func(t *testing.T) {
		borrower := newVerifiedBorrower(t)
		product := newTestProduct(t)

		_, err := model.NewLoan(borrower, product,
			decimal.NewFromInt(5_000), 12, "too small", 650, valueobject.RiskRatingMedium)
		assert.True(t, domainerr.IsKind(err, domainerr.KindValidation))

		_, err = model.NewLoan(borrower, product,
			decimal.NewFromInt(50_000), 48, "too long", 650, valueobject.RiskRatingMedium)
		assert.True(t, domainerr.IsKind(err, domainerr.KindValidation))
	})
}

func TestLoanTransitions(t *testing.T) {
	t.Run("approve pending loan", func(t *testing.T) {
		loan, err := newPendingLoan(t).Approve("officer-1")
		require.NoError(t, err)
		assert.True(t, loan.Status().Equal(valueobject.LoanStatusApproved))
		assert.Equal(t, "officer-1", loan.ApproverID())
		require.NotNil(t, loan.ApprovedAt())
	})

	t.Run("approve non-pending loan conflicts", func(t *testing.T) {
		approved, err := newPendingLoan(t).Approve("officer-1")
		require.NoError(t, err)
		_, err = approved.Approve("officer-2")
		assert.True(t, domainerr.IsKind(err, domainerr.KindConflict))
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		_, err := newPendingLoan(t).Reject("officer-1", "  ")
		assert.True(t, domainerr.IsKind(err, domainerr.KindValidation))

		rejected, err := newPendingLoan(t).Reject("officer-1", "insufficient income")
		require.NoError(t, err)
		assert.True(t, rejected.Status().Equal(valueobject.LoanStatusRejected))
		assert.Equal(t, "insufficient income", rejected.RejectionReason())
	})

	t.Run("cancel before disbursement", func(t *testing.T) {
		cancelled, err := newPendingLoan(t).Cancel("borrower withdrew")
		require.NoError(t, err)
		assert.True(t, cancelled.Status().Equal(valueobject.LoanStatusCancelled))

		_, err = newActiveLoan(t).Cancel("too late")
		assert.True(t, domainerr.IsKind(err, domainerr.KindConflict))
	})

	t.Run("default and write off", func(t *testing.T) {
		defaulted, err := newActiveLoan(t).MarkDefaulted()
		require.NoError(t, err)
		assert.True(t, defaulted.Status().Equal(valueobject.LoanStatusDefaulted))

		written, err := defaulted.WriteOff()
		require.NoError(t, err)
		assert.True(t, written.Status().Equal(valueobject.LoanStatusWrittenOff))

		_, err = newPendingLoan(t).MarkDefaulted()
		assert.True(t, domainerr.IsKind(err, domainerr.KindConflict))
	})

	t.Run("transitions return copies", func(t *testing.T) {
		pending := newPendingLoan(t)
		_, err := pending.Approve("officer-1")
		require.NoError(t, err)
		assert.True(t, pending.Status().Equal(valueobject.LoanStatusPending),
			"the original value must not change")
	})
}

func TestLoanDisburse(t *testing.T) {
	t.Run("activates and opens the balance", func(t *testing.T) {
		loan := newActiveLoan(t)

		assert.True(t, loan.Status().Equal(valueobject.LoanStatusActive))
		require.Len(t, loan.Schedule(), 12)
		// 11 x 10661.85 plus a final 10661.91 absorbing the residue.
		assert.True(t, loan.OutstandingBalance().Equal(decimal.NewFromFloat(127_942.26)),
			"got %s", loan.OutstandingBalance())
		assert.True(t, loan.TotalAmount().Equal(loan.OutstandingBalance()))

		require.NotNil(t, loan.DisbursedAt())
		require.NotNil(t, loan.FirstPaymentDue())
		require.NotNil(t, loan.FinalPaymentDue())
		assert.Equal(t, loan.DisbursedAt().AddDate(0, 0, 30), *loan.FirstPaymentDue())
		assert.Equal(t, loan.DisbursedAt().AddDate(0, 0, 360), *loan.FinalPaymentDue())
	})

	t.Run("requires approved status", func(t *testing.T) {
		_, err := newPendingLoan(t).Disburse("MPESA", "254700000001", "DSB-002")
		assert.True(t, domainerr.IsKind(err, domainerr.KindConflict))

		active := newActiveLoan(t)
		_, err = active.Disburse("MPESA", "254700000001", "DSB-003")
		assert.True(t, domainerr.IsKind(err, domainerr.KindConflict), "double disbursement must conflict")
	})

	t.Run("requires method and account", func(t *testing.T) {
		approved, err := newPendingLoan(t).Approve("officer-1")
		require.NoError(t, err)

		_, err = approved.Disburse("", "254700000001", "DSB-004")
		assert.True(t, domainerr.IsKind(err, domainerr.KindValidation))

		_, err = approved.Disburse("MPESA", "", "DSB-005")
		assert.True(t, domainerr.IsKind(err, domainerr.KindValidation))
	})
}

func TestLoanApplyRepayment(t *testing.T) {
	monthly := decimal.NewFromFloat(10_661.85)

	t.Run("full installment", func(t *testing.T) {
		loan := newActiveLoan(t)
		before := loan.OutstandingBalance()

		loan, allocations, err := loan.ApplyRepayment(monthly, "PAY-001", loan.UpdatedAt())
		require.NoError(t, err)
		require.Len(t, allocations, 1)
		assert.Equal(t, 1, allocations[0].PaymentNumber)
		assert.True(t, allocations[0].Status.Equal(valueobject.RepaymentStatusPaid))
		assert.True(t, loan.OutstandingBalance().Equal(before.Sub(monthly)), "got %s", loan.OutstandingBalance())
		assert.True(t, loan.Schedule()[0].Status.Equal(valueobject.RepaymentStatusPaid))
	})

	t.Run("partial payment", func(t *testing.T) {
		loan := newActiveLoan(t)

		loan, allocations, err := loan.ApplyRepayment(decimal.NewFromInt(500), "PAY-002", loan.UpdatedAt())
		require.NoError(t, err)
		require.Len(t, allocations, 1)
		assert.True(t, allocations[0].Status.Equal(valueobject.RepaymentStatusPartial))
		assert.True(t, loan.Schedule()[0].AmountPaid.Equal(decimal.NewFromInt(500)))
	})

	t.Run("payment spans entries oldest first", func(t *testing.T) {
		loan := newActiveLoan(t)

		loan, allocations, err := loan.ApplyRepayment(monthly.Add(decimal.NewFromInt(1000)), "PAY-003", loan.UpdatedAt())
		require.NoError(t, err)
		require.Len(t, allocations, 2)
		assert.True(t, allocations[0].Status.Equal(valueobject.RepaymentStatusPaid))
		assert.True(t, allocations[1].Status.Equal(valueobject.RepaymentStatusPartial))
		assert.True(t, loan.Schedule()[1].AmountPaid.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("overdue entry collects a late fee first", func(t *testing.T) {
		loan := newActiveLoan(t)
		// 40 days after disbursement the first installment is 10 days
		// overdue: fee = 100 + floor(10/7) * 10661.85 * 0.01 = 206.62.
		now := loan.DisbursedAt().Add(40 * 24 * time.Hour)

		fee := decimal.NewFromFloat(206.62)
		before := loan.OutstandingBalance()

		loan, allocations, err := loan.ApplyRepayment(monthly.Add(fee), "PAY-004", now)
		require.NoError(t, err)
		require.Len(t, allocations, 1)
		assert.True(t, allocations[0].Status.Equal(valueobject.RepaymentStatusPaid))
		assert.True(t, allocations[0].LateFeePaid.Equal(fee), "got %s", allocations[0].LateFeePaid)

		entry := loan.Schedule()[0]
		assert.Equal(t, 10, entry.DaysOverdue)
		assert.True(t, entry.LateFee.Equal(fee), "got %s", entry.LateFee)

		// Fees never reduce the outstanding balance, only scheduled dues do.
		assert.True(t, loan.OutstandingBalance().Equal(before.Sub(monthly)), "got %s", loan.OutstandingBalance())
	})

	t.Run("paying everything completes the loan at exactly zero", func(t *testing.T) {
		loan := newActiveLoan(t)

		loan, _, err := loan.ApplyRepayment(loan.OutstandingBalance(), "PAY-005", loan.UpdatedAt())
		require.NoError(t, err)
		assert.True(t, loan.Status().Equal(valueobject.LoanStatusCompleted))
		assert.True(t, loan.OutstandingBalance().IsZero(),
			"completion requires an exactly zero balance, got %s", loan.OutstandingBalance())
		for _, entry := range loan.Schedule() {
			assert.True(t, entry.Status.Equal(valueobject.RepaymentStatusPaid))
		}
	})

	t.Run("overpayment is rejected", func(t *testing.T) {
		loan := newActiveLoan(t)
		_, _, err := loan.ApplyRepayment(loan.OutstandingBalance().Add(decimal.NewFromFloat(0.01)), "PAY-006", loan.UpdatedAt())
		assert.True(t, domainerr.IsKind(err, domainerr.KindValidation))
	})

	t.Run("rejects non-positive amounts and inactive loans", func(t *testing.T) {
		loan := newActiveLoan(t)
		_, _, err := loan.ApplyRepayment(decimal.Zero, "PAY-007", loan.UpdatedAt())
		assert.True(t, domainerr.IsKind(err, domainerr.KindValidation))

		pending := newPendingLoan(t)
		_, _, err = pending.ApplyRepayment(decimal.NewFromInt(100), "PAY-008", pending.UpdatedAt())
		assert.True(t, domainerr.IsKind(err, domainerr.KindConflict))
	})
}

func TestLoanIsOverdue(t *testing.T) {
	loan := newActiveLoan(t)

	assert.False(t, loan.IsOverdue(*loan.DisbursedAt()))
	assert.False(t, loan.IsOverdue(loan.DisbursedAt().Add(29*24*time.Hour)))
	assert.True(t, loan.IsOverdue(loan.DisbursedAt().Add(31*24*time.Hour)))
}
