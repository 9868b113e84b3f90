package dosing

// Outcome is the result of one dose calculation. The union is closed:
// exactly one of Success, DoseExceeded, UnknownMedication or InvalidWeight.
// Callers must type-switch and handle every variant; none of them is an
// error in the Go sense and none is ever retained between calls.
type Outcome interface {
	outcome()
}

// Success carries a dose that passed every guardrail, with administration
// instructions in both languages. Warnings are non-empty only at CAUTION.
type Success struct {
	Medication     Medication
	MedicationName string
	DoseMg         float64
	IntervalHours  int
	Level          SafetyLevel
	InstructionsEN string
	InstructionsES string
	MessageEN      string
	MessageES      string
	WarningsEN     []string
	WarningsES     []string
}

// DoseExceeded is the hard stop: the weight-based dose is above the
// maximum single dose and must not be administered. Always CRITICAL.
type DoseExceeded struct {
	Medication       Medication
	CalculatedDoseMg float64
	MaxDoseMg        float64
	MessageEN        string
	MessageES        string
	WarningsEN       []string
	WarningsES       []string
}

// UnknownMedication reports a key outside the supported set. The
// calculator only marks it as an error; the HTTP layer classifies it
// CRITICAL when rendering.
type UnknownMedication struct {
	Key        string
	MessageEN  string
	MessageES  string
	WarningsEN []string
	WarningsES []string
}

// InvalidWeight reports a weight outside the plausible pediatric range.
type InvalidWeight struct {
	WeightKg  float64
	TooLow    bool
	MessageEN string
	MessageES string
}

func (Success) outcome()           {}
func (DoseExceeded) outcome()      {}
func (UnknownMedication) outcome() {}
func (InvalidWeight) outcome()     {}
