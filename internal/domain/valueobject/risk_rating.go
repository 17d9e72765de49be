package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// RiskRating – immutable value object
// ---------------------------------------------------------------------------

// RiskRating is the coarse bucket derived from a credit score.
type RiskRating struct {
	value string
}

const (
	riskRatingLow      = "LOW"
	riskRatingMedium   = "MEDIUM"
	riskRatingHigh     = "HIGH"
	riskRatingVeryHigh = "VERY_HIGH"
)

var (
	RiskRatingLow      = RiskRating{value: riskRatingLow}
	RiskRatingMedium   = RiskRating{value: riskRatingMedium}
	RiskRatingHigh     = RiskRating{value: riskRatingHigh}
	RiskRatingVeryHigh = RiskRating{value: riskRatingVeryHigh}
)

var validRiskRatings = map[string]RiskRating{
	riskRatingLow:      RiskRatingLow,
	riskRatingMedium:   RiskRatingMedium,
	riskRatingHigh:     RiskRatingHigh,
	riskRatingVeryHigh: RiskRatingVeryHigh,
}

// NewRiskRating creates a RiskRating from a raw string.
func NewRiskRating(s string) (RiskRating, error) {
	v, ok := validRiskRatings[s]
	if !ok {
		return RiskRating{}, fmt.Errorf("invalid risk rating: %q", s)
	}
	return v, nil
}

// String returns the string representation of the rating.
func (r RiskRating) String() string { return r.value }

// IsZero returns true if the rating has not been initialised.
func (r RiskRating) IsZero() bool { return r.value == "" }

// Equal returns true when both ratings carry the same value.
func (r RiskRating) Equal(other RiskRating) bool { return r.value == other.value }
