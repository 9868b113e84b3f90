// Package dosing implements weight-based pediatric dose calculation with
// clinical safety guardrails and bilingual (English/Spanish) output.
// All functions are pure and safe for concurrent use: each call reads only
// its inputs and the immutable profile table it is given.
package dosing

import "strings"

// Medication identifies a medication supported by the formulary. The set
// is closed: callers that stay inside the enumeration can never hit an
// unknown-medication outcome.
type Medication string

const (
	Acetaminophen Medication = "acetaminophen"
	Ibuprofen     Medication = "ibuprofen"
	Amoxicillin   Medication = "amoxicillin"
)

// Medications lists every supported medication in a stable order.
func Medications() []Medication {
	return []Medication{Acetaminophen, Ibuprofen, Amoxicillin}
}

// ParseMedication maps raw caller input to a known Medication. Input is
// trimmed and lowercased before matching so "Ibuprofen " still resolves.
func ParseMedication(s string) (Medication, bool) {
	switch m := Medication(strings.ToLower(strings.TrimSpace(s))); m {
	case Acetaminophen, Ibuprofen, Amoxicillin:
		return m, true
	}
	return "", false
}

// Profile holds the dosing parameters for one medication. All numeric
// fields are strictly positive. Profiles are built once at load time and
// never mutated afterwards.
type Profile struct {
	Name           string  `json:"name" yaml:"name"`
	MgPerKg        float64 `json:"mg_per_kg" yaml:"mg_per_kg"`
	MaxDoseMg      float64 `json:"max_dose_mg" yaml:"max_dose_mg"`
	IntervalHours  int     `json:"interval_hours" yaml:"interval_hours"`
	MaxDailyDoseMg float64 `json:"max_daily_dose_mg" yaml:"max_daily_dose_mg"`
}

// ProfileSource supplies medication profiles to the calculator. The active
// formulary may be the built-in table or a file-backed replacement; the
// lookup contract is identical either way.
type ProfileSource interface {
	Lookup(med Medication) (Profile, bool)
}

// StaticProfiles is the simplest ProfileSource: a plain map. The built-in
// formulary is one of these.
type StaticProfiles map[Medication]Profile

// Lookup implements ProfileSource.
func (s StaticProfiles) Lookup(med Medication) (Profile, bool) {
	p, ok := s[med]
	return p, ok
}

// DefaultFormulary returns the built-in medication table. In production
// deployments these numbers would come from a pharmaceutical reference
// feed; swapping the source never changes the lookup contract.
func DefaultFormulary() StaticProfiles {
	return StaticProfiles{
		Acetaminophen: {
			Name:           "Acetaminophen (Tylenol)",
			MgPerKg:        15,
			MaxDoseMg:      1000,
			IntervalHours:  6,
			MaxDailyDoseMg: 4000,
		},
		Ibuprofen: {
			Name:           "Ibuprofen (Advil)",
			MgPerKg:        10,
			MaxDoseMg:      800,
			IntervalHours:  8,
			MaxDailyDoseMg: 3200,
		},
		Amoxicillin: {
			Name:           "Amoxicillin",
			MgPerKg:        20,
			MaxDoseMg:      1500,
			IntervalHours:  12,
			MaxDailyDoseMg: 3000,
		},
	}
}
