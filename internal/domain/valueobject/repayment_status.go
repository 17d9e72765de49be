package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// RepaymentStatus – immutable value object
// ---------------------------------------------------------------------------

// RepaymentStatus is the settlement state of one schedule entry.
type RepaymentStatus struct {
	value string
}

const (
	repaymentStatusPending = "PENDING"
	repaymentStatusPaid    = "PAID"
	repaymentStatusPartial = "PARTIAL"
	repaymentStatusOverdue = "OVERDUE"
	repaymentStatusWaived  = "WAIVED"
)

var (
	RepaymentStatusPending = RepaymentStatus{value: repaymentStatusPending}
	RepaymentStatusPaid    = RepaymentStatus{value: repaymentStatusPaid}
	RepaymentStatusPartial = RepaymentStatus{value: repaymentStatusPartial}
	RepaymentStatusOverdue = RepaymentStatus{value: repaymentStatusOverdue}
	RepaymentStatusWaived  = RepaymentStatus{value: repaymentStatusWaived}
)

var validRepaymentStatuses = map[string]RepaymentStatus{
	repaymentStatusPending: RepaymentStatusPending,
	repaymentStatusPaid:    RepaymentStatusPaid,
	repaymentStatusPartial: RepaymentStatusPartial,
	repaymentStatusOverdue: RepaymentStatusOverdue,
	repaymentStatusWaived:  RepaymentStatusWaived,
}

// NewRepaymentStatus creates a RepaymentStatus from a raw string.
func NewRepaymentStatus(s string) (RepaymentStatus, error) {
	v, ok := validRepaymentStatuses[s]
	if !ok {
		return RepaymentStatus{}, fmt.Errorf("invalid repayment status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s RepaymentStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s RepaymentStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s RepaymentStatus) Equal(other RepaymentStatus) bool { return s.value == other.value }

// IsSettled reports whether no further payment is expected on the entry.
func (s RepaymentStatus) IsSettled() bool {
	return s.value == repaymentStatusPaid || s.value == repaymentStatusWaived
}
