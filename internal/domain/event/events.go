package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Borrower events
// ---------------------------------------------------------------------------

// BorrowerRegistered is raised when a new borrower enters the system.
type BorrowerRegistered struct {
	events.BaseEvent
	Email string `json:"email"`
}

func NewBorrowerRegistered(borrowerID, email string) BorrowerRegistered {
	return BorrowerRegistered{
		BaseEvent: events.NewBaseEvent("lending.borrower.registered", borrowerID, "Borrower"),
		Email:     email,
	}
}

// BorrowerKYCApproved is raised when a borrower clears identity verification.
type BorrowerKYCApproved struct {
	events.BaseEvent
}

func NewBorrowerKYCApproved(borrowerID string) BorrowerKYCApproved {
	return BorrowerKYCApproved{
		BaseEvent: events.NewBaseEvent("lending.borrower.kyc_approved", borrowerID, "Borrower"),
	}
}

// BorrowerKYCRejected is raised when identity verification fails.
type BorrowerKYCRejected struct {
	events.BaseEvent
	Reason string `json:"reason"`
}

func NewBorrowerKYCRejected(borrowerID, reason string) BorrowerKYCRejected {
	return BorrowerKYCRejected{
		BaseEvent: events.NewBaseEvent("lending.borrower.kyc_rejected", borrowerID, "Borrower"),
		Reason:    reason,
	}
}

// ---------------------------------------------------------------------------
// Loan events
// ---------------------------------------------------------------------------

// LoanApplicationSubmitted is raised when a new application enters the system.
type LoanApplicationSubmitted struct {
	events.BaseEvent
	LoanNumber  string          `json:"loan_number"`
	BorrowerID  string          `json:"borrower_id"`
	ProductID   string          `json:"product_id"`
	Principal   decimal.Decimal `json:"principal"`
	TermMonths  int             `json:"term_months"`
	CreditScore int             `json:"credit_score"`
	RiskRating  string          `json:"risk_rating"`
}

func NewLoanApplicationSubmitted(
	loanID, loanNumber, borrowerID, productID string,
	principal decimal.Decimal, termMonths, creditScore int, riskRating string,
) LoanApplicationSubmitted {
	return LoanApplicationSubmitted{
		BaseEvent:   events.NewBaseEvent("lending.loan.application_submitted", loanID, "Loan"),
		LoanNumber:  loanNumber,
		BorrowerID:  borrowerID,
		ProductID:   productID,
		Principal:   principal,
		TermMonths:  termMonths,
		CreditScore: creditScore,
		RiskRating:  riskRating,
	}
}

// LoanApproved is raised when an application is approved.
type LoanApproved struct {
	events.BaseEvent
	ApproverID string `json:"approver_id"`
}

func NewLoanApproved(loanID, approverID string) LoanApproved {
	return LoanApproved{
		BaseEvent:  events.NewBaseEvent("lending.loan.approved", loanID, "Loan"),
		ApproverID: approverID,
	}
}

// LoanRejected is raised when an application is rejected.
type LoanRejected struct {
	events.BaseEvent
	ApproverID string `json:"approver_id"`
	Reason     string `json:"reason"`
}

func NewLoanRejected(loanID, approverID, reason string) LoanRejected {
	return LoanRejected{
		BaseEvent:  events.NewBaseEvent("lending.loan.rejected", loanID, "Loan"),
		ApproverID: approverID,
		Reason:     reason,
	}
}

// LoanDisbursed is raised when funds are released to the borrower.
type LoanDisbursed struct {
	events.BaseEvent
	Principal        decimal.Decimal `json:"principal"`
	Method           string          `json:"method"`
	Account          string          `json:"account"`
	Reference        string          `json:"reference"`
	FirstPaymentDue  time.Time       `json:"first_payment_due"`
	FinalPaymentDue  time.Time       `json:"final_payment_due"`
	InstallmentCount int             `json:"installment_count"`
}

func NewLoanDisbursed(
	loanID string, principal decimal.Decimal,
	method, account, reference string,
	firstDue, finalDue time.Time, installments int,
) LoanDisbursed {
	return LoanDisbursed{
		BaseEvent:        events.NewBaseEvent("lending.loan.disbursed", loanID, "Loan"),
		Principal:        principal,
		Method:           method,
		Account:          account,
		Reference:        reference,
		FirstPaymentDue:  firstDue,
		FinalPaymentDue:  finalDue,
		InstallmentCount: installments,
	}
}

// RepaymentReceived is raised when a payment is applied to a loan.
type RepaymentReceived struct {
	events.BaseEvent
	Amount             decimal.Decimal `json:"amount"`
	Reference          string          `json:"reference"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

func NewRepaymentReceived(loanID string, amount decimal.Decimal, reference string, outstanding decimal.Decimal) RepaymentReceived {
	return RepaymentReceived{
		BaseEvent:          events.NewBaseEvent("lending.loan.repayment_received", loanID, "Loan"),
		Amount:             amount,
		Reference:          reference,
		OutstandingBalance: outstanding,
	}
}

// LoanCompleted is raised when the outstanding balance reaches zero.
type LoanCompleted struct {
	events.BaseEvent
}

func NewLoanCompleted(loanID string) LoanCompleted {
	return LoanCompleted{
		BaseEvent: events.NewBaseEvent("lending.loan.completed", loanID, "Loan"),
	}
}

// LoanDefaulted is raised when a loan enters default.
type LoanDefaulted struct {
	events.BaseEvent
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

func NewLoanDefaulted(loanID string, outstanding decimal.Decimal) LoanDefaulted {
	return LoanDefaulted{
		BaseEvent:          events.NewBaseEvent("lending.loan.defaulted", loanID, "Loan"),
		OutstandingBalance: outstanding,
	}
}

// LoanCancelled is raised when a pending or approved loan is withdrawn.
type LoanCancelled struct {
	events.BaseEvent
	Reason string `json:"reason"`
}

func NewLoanCancelled(loanID, reason string) LoanCancelled {
	return LoanCancelled{
		BaseEvent: events.NewBaseEvent("lending.loan.cancelled", loanID, "Loan"),
		Reason:    reason,
	}
}
