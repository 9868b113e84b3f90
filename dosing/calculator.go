package dosing

import "math"

// Calculator computes weight-based doses against a profile source. It
// holds no mutable state; one instance can serve any number of
// concurrent callers.
type Calculator struct {
	profiles ProfileSource
}

// NewCalculator creates a calculator backed by the given profile source.
func NewCalculator(profiles ProfileSource) *Calculator {
	return &Calculator{profiles: profiles}
}

// Calculate runs the guardrail chain for one request and returns exactly
// one Outcome variant:
//
//  1. weight outside [1, 200] kg        -> InvalidWeight
//  2. key not in the formulary          -> UnknownMedication
//  3. weight x mg/kg above the max dose -> DoseExceeded (hard stop)
//  4. otherwise                         -> Success, CAUTION above 80% of max
//
// The exceeds-max comparison uses the unrounded dose; rounding to one
// decimal happens only when the value is rendered. Both languages are
// always produced regardless of lang, which is advisory only.
func (c *Calculator) Calculate(weightKg float64, medication string, lang Language) Outcome {
	_ = lang

	if v := ValidateWeight(weightKg); !v.Valid {
		return InvalidWeight{
			WeightKg:  weightKg,
			TooLow:    math.IsNaN(weightKg) || weightKg < MinWeightKg,
			MessageEN: v.MessageEN,
			MessageES: v.MessageES,
		}
	}

	med, known := ParseMedication(medication)
	var profile Profile
	if known {
		profile, known = c.profiles.Lookup(med)
	}
	if !known {
		msgEN, msgES := renderBoth(msgUnknownMed, medication)
		warnEN, warnES := renderBoth(msgNotInDatabase)
		return UnknownMedication{
			Key:        medication,
			MessageEN:  msgEN,
			MessageES:  msgES,
			WarningsEN: []string{warnEN},
			WarningsES: []string{warnES},
		}
	}

	calculated := weightKg * profile.MgPerKg

	if calculated > profile.MaxDoseMg {
		dose := formatDose(calculated)
		limit := formatLimit(profile.MaxDoseMg)
		msgEN, msgES := renderBoth(msgDoseExceeds, dose, limit)
		calcEN, calcES := renderBoth(msgCalculatedDose, dose)
		maxEN, maxES := renderBoth(msgMaximumSafe, limit)
		stopEN, stopES := renderBoth(msgDoNotGive)
		return DoseExceeded{
			Medication:       med,
			CalculatedDoseMg: round1(calculated),
			MaxDoseMg:        profile.MaxDoseMg,
			MessageEN:        msgEN,
			MessageES:        msgES,
			WarningsEN:       []string{calcEN, maxEN, stopEN},
			WarningsES:       []string{calcES, maxES, stopES},
		}
	}

	level := SafetySafe
	var warningsEN, warningsES []string
	if calculated > CautionThreshold(profile) {
		level = SafetyCaution
		percent := int(math.Round(calculated / profile.MaxDoseMg * 100))
		pctEN, pctES := renderBoth(msgPercentOfMax, percent)
		checkEN, checkES := renderBoth(msgDoubleCheck)
		warningsEN = []string{pctEN, checkEN}
		warningsES = []string{pctES, checkES}
	}

	msgKey := msgSafeDose
	if level == SafetyCaution {
		msgKey = msgCautionDose
	}
	msgEN, msgES := renderBoth(msgKey)
	instEN, instES := renderBoth(msgInstructions, formatDose(calculated), profile.IntervalHours)

	return Success{
		Medication:     med,
		MedicationName: profile.Name,
		DoseMg:         round1(calculated),
		IntervalHours:  profile.IntervalHours,
		Level:          level,
		InstructionsEN: instEN,
		InstructionsES: instES,
		MessageEN:      msgEN,
		MessageES:      msgES,
		WarningsEN:     warningsEN,
		WarningsES:     warningsES,
	}
}
