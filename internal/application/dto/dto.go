package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// RegisterBorrowerRequest carries the data needed to register a borrower.
type RegisterBorrowerRequest struct {
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	NationalID      string          `json:"national_id"`
	DateOfBirth     time.Time       `json:"date_of_birth"`
	AnnualIncome    decimal.Decimal `json:"annual_income"`
	EmploymentYears int             `json:"employment_years"`
	PaymentHistory  string          `json:"payment_history,omitempty"`
}

// ReviewKYCRequest records a KYC decision for a borrower. Approved is the
// decision; Reason is required when rejecting.
type ReviewKYCRequest struct {
	BorrowerID string `json:"borrower_id"`
	Approved   bool   `json:"approved"`
	Reason     string `json:"reason,omitempty"`
}

// ApplyForLoanRequest carries a new loan application.
type ApplyForLoanRequest struct {
	BorrowerID string          `json:"borrower_id"`
	ProductID  string          `json:"product_id"`
	Amount     decimal.Decimal `json:"amount"`
	TermMonths int             `json:"term_months"`
	Purpose    string          `json:"purpose"`
}

// ApproveLoanRequest approves a pending application.
type ApproveLoanRequest struct {
	LoanID     string `json:"loan_id"`
	ApproverID string `json:"approver_id"`
}

// RejectLoanRequest declines a pending application.
type RejectLoanRequest struct {
	LoanID     string `json:"loan_id"`
	ApproverID string `json:"approver_id"`
	Reason     string `json:"reason"`
}

// CancelLoanRequest withdraws a loan before disbursement.
type CancelLoanRequest struct {
	LoanID string `json:"loan_id"`
	Reason string `json:"reason,omitempty"`
}

// DisburseLoanRequest releases funds on an approved loan.
type DisburseLoanRequest struct {
	LoanID    string `json:"loan_id"`
	Method    string `json:"method"`
	Account   string `json:"account"`
	Reference string `json:"reference,omitempty"`
}

// ProcessRepaymentRequest applies a payment to an active loan.
type ProcessRepaymentRequest struct {
	LoanID    string          `json:"loan_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method,omitempty"`
	Reference string          `json:"reference,omitempty"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// BorrowerResponse is the external representation of a borrower.
type BorrowerResponse struct {
	ID              string          `json:"id"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	NationalID      string          `json:"national_id"`
	DateOfBirth     time.Time       `json:"date_of_birth"`
	AnnualIncome    decimal.Decimal `json:"annual_income"`
	EmploymentYears int             `json:"employment_years"`
	PaymentHistory  string          `json:"payment_history,omitempty"`
	KYCStatus       string          `json:"kyc_status"`
	KYCNote         string          `json:"kyc_note,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// LoanProductResponse is the external representation of a loan product.
type LoanProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	MinAmount         decimal.Decimal `json:"min_amount"`
	MaxAmount         decimal.Decimal `json:"max_amount"`
	MinTermMonths     int             `json:"min_term_months"`
	MaxTermMonths     int             `json:"max_term_months"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	ProcessingFeeRate decimal.Decimal `json:"processing_fee_rate"`
	LateFeeBase       decimal.Decimal `json:"late_fee_base"`
}

// ScheduleEntryResponse represents a single repayment schedule entry.
type ScheduleEntryResponse struct {
	PaymentNumber    int             `json:"payment_number"`
	DueDate          time.Time       `json:"due_date"`
	AmountDue        decimal.Decimal `json:"amount_due"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	AmountPaid       decimal.Decimal `json:"amount_paid"`
	LateFee          decimal.Decimal `json:"late_fee"`
	DaysOverdue      int             `json:"days_overdue,omitempty"`
	Status           string          `json:"status"`
}

// LoanResponse is the external representation of a loan.
type LoanResponse struct {
	ID                 string                  `json:"id"`
	LoanNumber         string                  `json:"loan_number"`
	BorrowerID         string                  `json:"borrower_id"`
	ProductID          string                  `json:"product_id"`
	Principal          decimal.Decimal         `json:"principal"`
	InterestRate       decimal.Decimal         `json:"interest_rate"`
	TermMonths         int                     `json:"term_months"`
	ProcessingFee      decimal.Decimal         `json:"processing_fee"`
	MonthlyPayment     decimal.Decimal         `json:"monthly_payment"`
	TotalAmount        decimal.Decimal         `json:"total_amount"`
	OutstandingBalance decimal.Decimal         `json:"outstanding_balance"`
	Status             string                  `json:"status"`
	CreditScore        int                     `json:"credit_score"`
	RiskRating         string                  `json:"risk_rating"`
	Purpose            string                  `json:"purpose"`
	RejectionReason    string                  `json:"rejection_reason,omitempty"`
	ApproverID         string                  `json:"approver_id,omitempty"`
	Schedule           []ScheduleEntryResponse `json:"schedule,omitempty"`
	ApprovedAt         *time.Time              `json:"approved_at,omitempty"`
	DisbursedAt        *time.Time              `json:"disbursed_at,omitempty"`
	FirstPaymentDue    *time.Time              `json:"first_payment_due,omitempty"`
	FinalPaymentDue    *time.Time              `json:"final_payment_due,omitempty"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

// AllocationResponse reports how a payment was applied to one installment.
type AllocationResponse struct {
	PaymentNumber int             `json:"payment_number"`
	Applied       decimal.Decimal `json:"applied"`
	LateFeePaid   decimal.Decimal `json:"late_fee_paid"`
	Status        string          `json:"status"`
}

// RepaymentResponse is the result of processing a repayment.
type RepaymentResponse struct {
	LoanID             string               `json:"loan_id"`
	AmountPaid         decimal.Decimal      `json:"amount_paid"`
	Allocations        []AllocationResponse `json:"allocations"`
	OutstandingBalance decimal.Decimal      `json:"outstanding_balance"`
	LoanStatus         string               `json:"loan_status"`
}

// TransactionResponse is one entry of a loan's ledger.
type TransactionResponse struct {
	ID          string          `json:"id"`
	LoanID      string          `json:"loan_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
