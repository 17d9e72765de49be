package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a loan. A loan is created
// PENDING and moves through the closed transition table below; there is no
// stored DISBURSED status, disbursement is the APPROVED -> ACTIVE boundary.
type LoanStatus struct {
	value string
}

const (
	loanStatusPending    = "PENDING"
	loanStatusApproved   = "APPROVED"
	loanStatusRejected   = "REJECTED"
	loanStatusActive     = "ACTIVE"
	loanStatusCompleted  = "COMPLETED"
	loanStatusDefaulted  = "DEFAULTED"
	loanStatusCancelled  = "CANCELLED"
	loanStatusWrittenOff = "WRITTEN_OFF"
)

var (
	LoanStatusPending    = LoanStatus{value: loanStatusPending}
	LoanStatusApproved   = LoanStatus{value: loanStatusApproved}
	LoanStatusRejected   = LoanStatus{value: loanStatusRejected}
	LoanStatusActive     = LoanStatus{value: loanStatusActive}
	LoanStatusCompleted  = LoanStatus{value: loanStatusCompleted}
	LoanStatusDefaulted  = LoanStatus{value: loanStatusDefaulted}
	LoanStatusCancelled  = LoanStatus{value: loanStatusCancelled}
	LoanStatusWrittenOff = LoanStatus{value: loanStatusWrittenOff}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusPending:    LoanStatusPending,
	loanStatusApproved:   LoanStatusApproved,
	loanStatusRejected:   LoanStatusRejected,
	loanStatusActive:     LoanStatusActive,
	loanStatusCompleted:  LoanStatusCompleted,
	loanStatusDefaulted:  LoanStatusDefaulted,
	loanStatusCancelled:  LoanStatusCancelled,
	loanStatusWrittenOff: LoanStatusWrittenOff,
}

// loanTransitions is the closed transition table. A status missing from the
// map is terminal.
var loanTransitions = map[string][]string{
	loanStatusPending:   {loanStatusApproved, loanStatusRejected, loanStatusCancelled},
	loanStatusApproved:  {loanStatusActive, loanStatusCancelled},
	loanStatusActive:    {loanStatusCompleted, loanStatusDefaulted, loanStatusWrittenOff},
	loanStatusDefaulted: {loanStatusWrittenOff},
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// CanTransitionTo reports whether the transition table allows moving from s
// to next.
func (s LoanStatus) CanTransitionTo(next LoanStatus) bool {
	for _, allowed := range loanTransitions[s.value] {
		if allowed == next.value {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s LoanStatus) IsTerminal() bool {
	return len(loanTransitions[s.value]) == 0
}

// IsOpen reports whether the loan still occupies the borrower's single open
// loan slot (pending, approved, or active).
func (s LoanStatus) IsOpen() bool {
	switch s.value {
	case loanStatusPending, loanStatusApproved, loanStatusActive:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var ErrInvalidStatusTransition = errors.New("invalid status transition")
