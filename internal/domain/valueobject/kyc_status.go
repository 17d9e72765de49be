package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// KYCStatus – immutable value object
// ---------------------------------------------------------------------------

// KYCStatus is the identity-verification state of a borrower. Only borrowers
// with an APPROVED status may apply for loans.
type KYCStatus struct {
	value string
}

const (
	kycStatusPending  = "PENDING"
	kycStatusApproved = "APPROVED"
	kycStatusRejected = "REJECTED"
)

var (
	KYCStatusPending  = KYCStatus{value: kycStatusPending}
	KYCStatusApproved = KYCStatus{value: kycStatusApproved}
	KYCStatusRejected = KYCStatus{value: kycStatusRejected}
)

var validKYCStatuses = map[string]KYCStatus{
	kycStatusPending:  KYCStatusPending,
	kycStatusApproved: KYCStatusApproved,
	kycStatusRejected: KYCStatusRejected,
}

// NewKYCStatus creates a KYCStatus from a raw string.
func NewKYCStatus(s string) (KYCStatus, error) {
	v, ok := validKYCStatuses[s]
	if !ok {
		return KYCStatus{}, fmt.Errorf("invalid KYC status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s KYCStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s KYCStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s KYCStatus) Equal(other KYCStatus) bool { return s.value == other.value }
