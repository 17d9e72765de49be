package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/domainerr"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/event"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/valueobject"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/events"
)

const minBorrowerAge = 18

// Borrower is a registered loan applicant. A new borrower starts with KYC
// pending and cannot apply for a loan until KYC is approved.
//
// Transition methods use value receivers and return a modified copy, so a
// Borrower value held by a caller is never mutated in place.
type Borrower struct {
	id              uuid.UUID
	firstName       string
	lastName        string
	email           string
	phone           string
	nationalID      string
	dateOfBirth     time.Time
	annualIncome    decimal.Decimal
	employmentYears int
	paymentHistory  string
	kycStatus       valueobject.KYCStatus
	kycNote         string
	createdAt       time.Time
	updatedAt       time.Time
	version         int
	domainEvents    []events.DomainEvent
}

func NewBorrower(
	firstName, lastName, email, phone, nationalID string,
	dateOfBirth time.Time,
	annualIncome decimal.Decimal,
	employmentYears int,
	paymentHistory string,
) (Borrower, error) {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return Borrower{}, domainerr.Validation("first and last name are required")
	}
	if !strings.Contains(email, "@") {
		return Borrower{}, domainerr.Validation("email %q is not valid", email)
	}
	if strings.TrimSpace(phone) == "" {
		return Borrower{}, domainerr.Validation("phone number is required")
	}
	if strings.TrimSpace(nationalID) == "" {
		return Borrower{}, domainerr.Validation("national ID is required")
	}
	if annualIncome.IsNegative() {
		return Borrower{}, domainerr.Validation("annual income must not be negative, got %s", annualIncome)
	}
	if employmentYears < 0 {
		return Borrower{}, domainerr.Validation("employment years must not be negative, got %d", employmentYears)
	}

	now := time.Now().UTC()
	if dateOfBirth.AddDate(minBorrowerAge, 0, 0).After(now) {
		return Borrower{}, domainerr.Validation("borrower must be at least %d years old", minBorrowerAge)
	}

	b := Borrower{
		id:              uuid.New(),
		firstName:       firstName,
		lastName:        lastName,
		email:           strings.ToLower(email),
		phone:           phone,
		nationalID:      nationalID,
		dateOfBirth:     dateOfBirth,
		annualIncome:    annualIncome,
		employmentYears: employmentYears,
		paymentHistory:  strings.ToLower(paymentHistory),
		kycStatus:       valueobject.KYCStatusPending,
		createdAt:       now,
		updatedAt:       now,
		version:         1,
	}
	b.domainEvents = append(b.domainEvents, event.NewBorrowerRegistered(b.id.String(), b.email))
	return b, nil
}

// ReconstructBorrower rebuilds a borrower from persisted state. No events
// are raised.
func ReconstructBorrower(
	id uuid.UUID,
	firstName, lastName, email, phone, nationalID string,
	dateOfBirth time.Time,
	annualIncome decimal.Decimal,
	employmentYears int,
	paymentHistory string,
	kycStatus valueobject.KYCStatus,
	kycNote string,
	createdAt, updatedAt time.Time,
	version int,
) Borrower {
	return Borrower{
		id:              id,
		firstName:       firstName,
		lastName:        lastName,
		email:           email,
		phone:           phone,
		nationalID:      nationalID,
		dateOfBirth:     dateOfBirth,
		annualIncome:    annualIncome,
		employmentYears: employmentYears,
		paymentHistory:  paymentHistory,
		kycStatus:       kycStatus,
		kycNote:         kycNote,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		version:         version,
	}
}

// ApproveKYC marks the borrower's identity as verified.
func (b Borrower) ApproveKYC() (Borrower, error) {
	if !b.kycStatus.Equal(valueobject.KYCStatusPending) {
		return b, domainerr.Conflict("KYC for borrower %s is already %s", b.id, b.kycStatus)
	}
	b.kycStatus = valueobject.KYCStatusApproved
	b.kycNote = ""
	b.updatedAt = time.Now().UTC()
	b.domainEvents = append(copyEvents(b.domainEvents), event.NewBorrowerKYCApproved(b.id.String()))
	return b, nil
}

// RejectKYC marks the borrower's identity check as failed. A reason is
// required.
func (b Borrower) RejectKYC(reason string) (Borrower, error) {
	if strings.TrimSpace(reason) == "" {
		return b, domainerr.Validation("a rejection reason is required")
	}
	if !b.kycStatus.Equal(valueobject.KYCStatusPending) {
		return b, domainerr.Conflict("KYC for borrower %s is already %s", b.id, b.kycStatus)
	}
	b.kycStatus = valueobject.KYCStatusRejected
	b.kycNote = reason
	b.updatedAt = time.Now().UTC()
	b.domainEvents = append(copyEvents(b.domainEvents), event.NewBorrowerKYCRejected(b.id.String(), reason))
	return b, nil
}

// CanBorrow reports whether the borrower is eligible to apply for a loan.
func (b Borrower) CanBorrow() bool {
	return b.kycStatus.Equal(valueobject.KYCStatusApproved)
}

func (b Borrower) ID() uuid.UUID                    { return b.id }
func (b Borrower) FirstName() string                { return b.firstName }
func (b Borrower) LastName() string                 { return b.lastName }
func (b Borrower) FullName() string                 { return b.firstName + " " + b.lastName }
func (b Borrower) Email() string                    { return b.email }
func (b Borrower) Phone() string                    { return b.phone }
func (b Borrower) NationalID() string               { return b.nationalID }
func (b Borrower) DateOfBirth() time.Time           { return b.dateOfBirth }
func (b Borrower) AnnualIncome() decimal.Decimal    { return b.annualIncome }
func (b Borrower) EmploymentYears() int             { return b.employmentYears }
func (b Borrower) PaymentHistory() string           { return b.paymentHistory }
func (b Borrower) KYCStatus() valueobject.KYCStatus { return b.kycStatus }
func (b Borrower) KYCNote() string                  { return b.kycNote }
func (b Borrower) CreatedAt() time.Time             { return b.createdAt }
func (b Borrower) UpdatedAt() time.Time             { return b.updatedAt }
func (b Borrower) Version() int                     { return b.version }

// DomainEvents returns the events raised since the aggregate was loaded.
func (b Borrower) DomainEvents() []events.DomainEvent { return copyEvents(b.domainEvents) }

// ClearEvents returns a copy with the pending event list emptied. Called
// after the events have been handed to the publisher.
func (b Borrower) ClearEvents() Borrower {
	b.domainEvents = nil
	return b
}

// IncrementVersion returns a copy with the optimistic-lock version advanced.
// Repositories call this after a successful persist.
func (b Borrower) IncrementVersion() Borrower {
	b.version++
	return b
}
