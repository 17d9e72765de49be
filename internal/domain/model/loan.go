package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/domainerr"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/event"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/valueobject"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/events"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/money"
)

// Loan is the central aggregate of the engine. It owns the status machine,
// the repayment schedule, and the outstanding balance; all money movement on
// a loan goes through its transition methods.
//
// The commercial terms (rate, fee rates, payment) are frozen from the product
// at application time. Transition methods use value receivers and return a
// modified copy so a loaded Loan is never mutated in place; callers persist
// the returned copy under the optimistic-lock version.
type Loan struct {
	id                 uuid.UUID
	loanNumber         string
	borrowerID         uuid.UUID
	productID          uuid.UUID
	principal          decimal.Decimal
	interestRate       decimal.Decimal
	termMonths         int
	processingFee      decimal.Decimal
	lateFeeBase        decimal.Decimal
	monthlyPayment     decimal.Decimal
	totalAmount        decimal.Decimal
	outstandingBalance decimal.Decimal
	status             valueobject.LoanStatus
	creditScore        int
	riskRating         valueobject.RiskRating
	purpose            string
	rejectionReason    string
	approverID         string
	schedule           []ScheduleEntry
	approvedAt         *time.Time
	disbursedAt        *time.Time
	firstPaymentDue    *time.Time
	finalPaymentDue    *time.Time
	createdAt          time.Time
	updatedAt          time.Time
	version            int
	domainEvents       []events.DomainEvent
}

// RepaymentAllocation records how a single payment was spread across
// schedule entries, oldest due first.
type RepaymentAllocation struct {
	PaymentNumber int
	Applied       decimal.Decimal
	LateFeePaid   decimal.Decimal
	Status        valueobject.RepaymentStatus
}

// NewLoan originates a pending application against a product. The amount and
// term must fall inside the product's bounds, and the product's rates are
// copied onto the loan so later product edits cannot affect it.
func NewLoan(
	borrower Borrower,
	product *LoanProduct,
	amount decimal.Decimal,
	termMonths int,
	purpose string,
	creditScore int,
	riskRating valueobject.RiskRating,
) (Loan, error) {
	if !borrower.CanBorrow() {
		return Loan{}, domainerr.Validation("borrower %s has not passed KYC", borrower.ID())
	}
	if err := product.ValidateRequest(amount, termMonths); err != nil {
		return Loan{}, err
	}
	if strings.TrimSpace(purpose) == "" {
		return Loan{}, domainerr.Validation("loan purpose is required")
	}

	payment, err := MonthlyPayment(amount, product.InterestRate(), termMonths)
	if err != nil {
		return Loan{}, err
	}

	now := time.Now().UTC()
	id := uuid.New()
	l := Loan{
		id:                 id,
		loanNumber:         newLoanNumber(id, now),
		borrowerID:         borrower.ID(),
		productID:          product.ID(),
		principal:          amount,
		interestRate:       product.InterestRate(),
		termMonths:         termMonths,
		processingFee:      product.ProcessingFee(amount),
		lateFeeBase:        product.LateFeeBase(),
		monthlyPayment:     payment,
		totalAmount:        payment.Mul(decimal.NewFromInt(int64(termMonths))),
		outstandingBalance: decimal.Zero,
		status:             valueobject.LoanStatusPending,
		creditScore:        creditScore,
		riskRating:         riskRating,
		purpose:            purpose,
		createdAt:          now,
		updatedAt:          now,
		version:            1,
	}
	l.domainEvents = append(l.domainEvents, event.NewLoanApplicationSubmitted(
		l.id.String(), l.loanNumber, l.borrowerID.String(), l.productID.String(),
		l.principal, l.termMonths, l.creditScore, l.riskRating.String(),
	))
	return l, nil
}

// newLoanNumber derives a human-facing reference from the loan ID and
// application year. The UUID prefix keeps it unique without a sequence.
func newLoanNumber(id uuid.UUID, at time.Time) string {
	return fmt.Sprintf("PP-%d-%s", at.Year(), strings.ToUpper(id.String()[:8]))
}

// ReconstructLoan rebuilds a loan from persisted state. No events are
// raised and no invariants re-checked.
func ReconstructLoan(
	id uuid.UUID,
	loanNumber string,
	borrowerID, productID uuid.UUID,
	principal, interestRate decimal.Decimal,
	termMonths int,
	processingFee, lateFeeBase, monthlyPayment, totalAmount, outstandingBalance decimal.Decimal,
	status valueobject.LoanStatus,
	creditScore int,
	riskRating valueobject.RiskRating,
	purpose, rejectionReason, approverID string,
	schedule []ScheduleEntry,
	approvedAt, disbursedAt, firstPaymentDue, finalPaymentDue *time.Time,
	createdAt, updatedAt time.Time,
	version int,
) Loan {
	return Loan{
		id:                 id,
		loanNumber:         loanNumber,
		borrowerID:         borrowerID,
		productID:          productID,
		principal:          principal,
		interestRate:       interestRate,
		termMonths:         termMonths,
		processingFee:      processingFee,
		lateFeeBase:        lateFeeBase,
		monthlyPayment:     monthlyPayment,
		totalAmount:        totalAmount,
		outstandingBalance: outstandingBalance,
		status:             status,
		creditScore:        creditScore,
		riskRating:         riskRating,
		purpose:            purpose,
		rejectionReason:    rejectionReason,
		approverID:         approverID,
		schedule:           schedule,
		approvedAt:         approvedAt,
		disbursedAt:        disbursedAt,
		firstPaymentDue:    firstPaymentDue,
		finalPaymentDue:    finalPaymentDue,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		version:            version,
	}
}

// Approve moves a pending application to APPROVED.
func (l Loan) Approve(approverID string) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusPending) {
		return l, domainerr.Conflict("loan %s is %s, only pending loans can be approved", l.loanNumber, l.status)
	}
	now := time.Now().UTC()
	l.status = valueobject.LoanStatusApproved
	l.approverID = approverID
	l.approvedAt = &now
	l.updatedAt = now
	l.domainEvents = append(copyEvents(l.domainEvents), event.NewLoanApproved(l.id.String(), approverID))
	return l, nil
}

// Reject declines a pending application. A reason is required.
func (l Loan) Reject(approverID, reason string) (Loan, error) {
	if strings.TrimSpace(reason) == "" {
		return l, domainerr.Validation("a rejection reason is required")
	}
	if !l.status.Equal(valueobject.LoanStatusPending) {
		return l, domainerr.Conflict("loan %s is %s, only pending loans can be rejected", l.loanNumber, l.status)
	}
	l.status = valueobject.LoanStatusRejected
	l.approverID = approverID
	l.rejectionReason = reason
	l.updatedAt = time.Now().UTC()
	l.domainEvents = append(copyEvents(l.domainEvents), event.NewLoanRejected(l.id.String(), approverID, reason))
	return l, nil
}

// Cancel withdraws a loan before funds move. Only pending and approved
// loans can be cancelled.
func (l Loan) Cancel(reason string) (Loan, error) {
	if !l.status.CanTransitionTo(valueobject.LoanStatusCancelled) {
		return l, domainerr.Conflict("loan %s is %s and cannot be cancelled", l.loanNumber, l.status)
	}
	l.status = valueobject.LoanStatusCancelled
	l.rejectionReason = reason
	l.updatedAt = time.Now().UTC()
	l.domainEvents = append(copyEvents(l.domainEvents), event.NewLoanCancelled(l.id.String(), reason))
	return l, nil
}

// Disburse releases funds on an approved loan: it generates the repayment
// schedule from the disbursement date, opens the outstanding balance at the
// schedule total, and activates the loan.
func (l Loan) Disburse(method, account, reference string) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusApproved) {
		return l, domainerr.Conflict("loan %s is %s, only approved loans can be disbursed", l.loanNumber, l.status)
	}
	if strings.TrimSpace(method) == "" {
		return l, domainerr.Validation("disbursement method is required")
	}
	if strings.TrimSpace(account) == "" {
		return l, domainerr.Validation("disbursement account is required")
	}

	now := time.Now().UTC()
	schedule, err := GenerateSchedule(l.principal, l.interestRate, l.termMonths, now)
	if err != nil {
		return l, err
	}

	outstanding := decimal.Zero
	for _, entry := range schedule {
		outstanding = outstanding.Add(entry.AmountDue)
	}

	firstDue := schedule[0].DueDate
	finalDue := schedule[len(schedule)-1].DueDate

	l.status = valueobject.LoanStatusActive
	l.schedule = schedule
	l.outstandingBalance = outstanding
	l.totalAmount = outstanding
	l.disbursedAt = &now
	l.firstPaymentDue = &firstDue
	l.finalPaymentDue = &finalDue
	l.updatedAt = now
	l.domainEvents = append(copyEvents(l.domainEvents), event.NewLoanDisbursed(
		l.id.String(), l.principal, method, account, reference,
		firstDue, finalDue, len(schedule),
	))
	return l, nil
}

// RefreshOverdue recomputes overdue state for every unsettled entry whose
// due date has passed: days overdue, the accrued late fee, and the OVERDUE
// status. Safe to call repeatedly; fees are recomputed from the due date,
// not accumulated.
func (l Loan) RefreshOverdue(now time.Time) Loan {
	if !l.status.Equal(valueobject.LoanStatusActive) {
		return l
	}
	schedule := make([]ScheduleEntry, len(l.schedule))
	copy(schedule, l.schedule)
	for i, entry := range schedule {
		if entry.Status.IsSettled() {
			continue
		}
		days := DaysOverdue(entry.DueDate, now)
		if days == 0 {
			continue
		}
		schedule[i].DaysOverdue = days
		schedule[i].LateFee = LateFee(l.lateFeeBase, entry.AmountDue, days)
		if entry.Status.Equal(valueobject.RepaymentStatusPending) {
			schedule[i].Status = valueobject.RepaymentStatusOverdue
		}
	}
	l.schedule = schedule
	return l
}

// ApplyRepayment allocates a payment across the schedule, oldest due entry
// first. Within an entry the scheduled amount due is covered before the late
// fee. Entries whose full obligation is covered become PAID; a touched entry
// with money still owed becomes PARTIAL. The outstanding balance drops only
// by the scheduled portions covered, never by fee payments, and the loan
// completes the moment it reaches exactly zero.
//
// The payment must not exceed the total still owed (dues plus accrued fees);
// overpayment is rejected rather than held on account.
func (l Loan) ApplyRepayment(amount decimal.Decimal, reference string, now time.Time) (Loan, []RepaymentAllocation, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return l, nil, domainerr.Validation("repayment amount must be positive, got %s", amount)
	}
	if !l.status.Equal(valueobject.LoanStatusActive) {
		return l, nil, domainerr.Conflict("loan %s is %s, repayments apply to active loans only", l.loanNumber, l.status)
	}

	l = l.RefreshOverdue(now)

	totalOwed := decimal.Zero
	for _, entry := range l.schedule {
		totalOwed = totalOwed.Add(entry.Owed())
	}
	if amount.GreaterThan(totalOwed) {
		return l, nil, domainerr.Validation(
			"payment %s exceeds total owed %s on loan %s", amount, totalOwed, l.loanNumber)
	}

	schedule := make([]ScheduleEntry, len(l.schedule))
	copy(schedule, l.schedule)

	var allocations []RepaymentAllocation
	remainder := amount
	for i := range schedule {
		if remainder.IsZero() {
			break
		}
		entry := schedule[i]
		owed := entry.Owed()
		if owed.IsZero() {
			continue
		}

		applied := decimal.Min(remainder, owed)
		coveredBefore := entry.DueCovered()
		feePaidBefore := entry.AmountPaid.Sub(coveredBefore)

		entry.AmountPaid = entry.AmountPaid.Add(applied)
		remainder = remainder.Sub(applied)

		if entry.Owed().IsZero() {
			entry.Status = valueobject.RepaymentStatusPaid
		} else {
			entry.Status = valueobject.RepaymentStatusPartial
		}

		dueDelta := entry.DueCovered().Sub(coveredBefore)
		l.outstandingBalance = money.Round(l.outstandingBalance.Sub(dueDelta))

		feePaidNow := entry.AmountPaid.Sub(entry.DueCovered()).Sub(feePaidBefore)
		schedule[i] = entry
		allocations = append(allocations, RepaymentAllocation{
			PaymentNumber: entry.PaymentNumber,
			Applied:       applied,
			LateFeePaid:   feePaidNow,
			Status:        entry.Status,
		})
	}

	l.schedule = schedule
	l.updatedAt = now
	l.domainEvents = append(copyEvents(l.domainEvents),
		event.NewRepaymentReceived(l.id.String(), amount, reference, l.outstandingBalance))

	if l.outstandingBalance.IsZero() {
		l.status = valueobject.LoanStatusCompleted
		l.domainEvents = append(l.domainEvents, event.NewLoanCompleted(l.id.String()))
	}

	return l, allocations, nil
}

// MarkDefaulted flags an active loan as defaulted.
func (l Loan) MarkDefaulted() (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusActive) {
		return l, domainerr.Conflict("loan %s is %s, only active loans can default", l.loanNumber, l.status)
	}
	l.status = valueobject.LoanStatusDefaulted
	l.updatedAt = time.Now().UTC()
	l.domainEvents = append(copyEvents(l.domainEvents),
		event.NewLoanDefaulted(l.id.String(), l.outstandingBalance))
	return l, nil
}

// WriteOff removes a bad loan from the active book. Active and defaulted
// loans can be written off.
func (l Loan) WriteOff() (Loan, error) {
	if !l.status.CanTransitionTo(valueobject.LoanStatusWrittenOff) {
		return l, domainerr.Conflict("loan %s is %s and cannot be written off", l.loanNumber, l.status)
	}
	l.status = valueobject.LoanStatusWrittenOff
	l.updatedAt = time.Now().UTC()
	return l, nil
}

// IsOverdue reports whether any unsettled entry is past due at the given
// instant.
func (l Loan) IsOverdue(now time.Time) bool {
	if !l.status.Equal(valueobject.LoanStatusActive) {
		return false
	}
	for _, entry := range l.schedule {
		if !entry.Status.IsSettled() && DaysOverdue(entry.DueDate, now) > 0 {
			return true
		}
	}
	return false
}

func (l Loan) ID() uuid.UUID                        { return l.id }
func (l Loan) LoanNumber() string                   { return l.loanNumber }
func (l Loan) BorrowerID() uuid.UUID                { return l.borrowerID }
func (l Loan) ProductID() uuid.UUID                 { return l.productID }
func (l Loan) Principal() decimal.Decimal           { return l.principal }
func (l Loan) InterestRate() decimal.Decimal        { return l.interestRate }
func (l Loan) TermMonths() int                      { return l.termMonths }
func (l Loan) ProcessingFee() decimal.Decimal       { return l.processingFee }
func (l Loan) LateFeeBase() decimal.Decimal         { return l.lateFeeBase }
func (l Loan) MonthlyPayment() decimal.Decimal      { return l.monthlyPayment }
func (l Loan) TotalAmount() decimal.Decimal         { return l.totalAmount }
func (l Loan) OutstandingBalance() decimal.Decimal  { return l.outstandingBalance }
func (l Loan) Status() valueobject.LoanStatus       { return l.status }
func (l Loan) CreditScore() int                     { return l.creditScore }
func (l Loan) RiskRating() valueobject.RiskRating   { return l.riskRating }
func (l Loan) Purpose() string                      { return l.purpose }
func (l Loan) RejectionReason() string              { return l.rejectionReason }
func (l Loan) ApproverID() string                   { return l.approverID }
func (l Loan) ApprovedAt() *time.Time               { return l.approvedAt }
func (l Loan) DisbursedAt() *time.Time              { return l.disbursedAt }
func (l Loan) FirstPaymentDue() *time.Time          { return l.firstPaymentDue }
func (l Loan) FinalPaymentDue() *time.Time          { return l.finalPaymentDue }
func (l Loan) CreatedAt() time.Time                 { return l.createdAt }
func (l Loan) UpdatedAt() time.Time                 { return l.updatedAt }
func (l Loan) Version() int                         { return l.version }

// Schedule returns a copy of the repayment schedule.
func (l Loan) Schedule() []ScheduleEntry {
	if len(l.schedule) == 0 {
		return nil
	}
	schedule := make([]ScheduleEntry, len(l.schedule))
	copy(schedule, l.schedule)
	return schedule
}

// DomainEvents returns the events raised since the aggregate was loaded.
func (l Loan) DomainEvents() []events.DomainEvent { return copyEvents(l.domainEvents) }

// ClearEvents returns a copy with the pending event list emptied.
func (l Loan) ClearEvents() Loan {
	l.domainEvents = nil
	return l
}

// IncrementVersion returns a copy with the optimistic-lock version advanced.
func (l Loan) IncrementVersion() Loan {
	l.version++
	return l
}
