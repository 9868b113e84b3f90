package dosing

import "math"

// Plausible pediatric weight range in kilograms. The range is closed on
// both ends: exactly 1.0 and exactly 200.0 are valid.
const (
	MinWeightKg = 1.0
	MaxWeightKg = 200.0
)

// PoundsToKg is the fixed pounds-to-kilograms conversion factor.
const PoundsToKg = 0.453592

// WeightValidation is the judgement returned by ValidateWeight. Both
// message fields are always populated.
type WeightValidation struct {
	Valid     bool
	MessageEN string
	MessageES string
}

// ValidateWeight checks that a weight in kilograms is inside the
// plausible pediatric range. Values outside [1, 200] kg almost always
// mean a decimal-entry or unit error, so they are rejected before any
// dose math runs. Never panics; NaN and infinities are rejected too.
func ValidateWeight(weightKg float64) WeightValidation {
	if math.IsNaN(weightKg) || weightKg < MinWeightKg {
		en, es := renderBoth(msgWeightTooLow)
		return WeightValidation{Valid: false, MessageEN: en, MessageES: es}
	}
	if weightKg > MaxWeightKg {
		en, es := renderBoth(msgWeightTooHigh)
		return WeightValidation{Valid: false, MessageEN: en, MessageES: es}
	}
	en, es := renderBoth(msgWeightOK)
	return WeightValidation{Valid: true, MessageEN: en, MessageES: es}
}

// ConvertLbsToKg converts pounds to kilograms, rounded to one decimal.
func ConvertLbsToKg(weightLbs float64) float64 {
	return round1(weightLbs * PoundsToKg)
}
