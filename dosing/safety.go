package dosing

// SafetyLevel classifies a calculation result for clinical readers. It is
// always derived from the current inputs, never stored.
type SafetyLevel string

const (
	SafetySafe     SafetyLevel = "safe"
	SafetyCaution  SafetyLevel = "caution"
	SafetyCritical SafetyLevel = "critical"
)

// cautionRatio is the fraction of the maximum single dose above which a
// calculation is flagged CAUTION.
const cautionRatio = 0.8

// CautionThreshold returns the caution trip point for a profile. It is
// recomputed on every call so the 0.8 x max invariant can never go stale.
func CautionThreshold(p Profile) float64 {
	return p.MaxDoseMg * cautionRatio
}
