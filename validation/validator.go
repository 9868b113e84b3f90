// Package validation provides data validation for the dosage API: profile
// invariants for the formulary and hygiene checks for raw request input.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pediadose/dosage-api/dosing"
	"github.com/pediadose/dosage-api/interfaces"
	"github.com/pediadose/dosage-api/logging"
)

// Upper bounds for formulary sanity checks. Values above these are almost
// certainly unit errors in an override file, not real dosing guidance.
const (
	maxMgPerKg       = 100
	maxSingleDoseMg  = 5000
	maxDailyLimitMg  = 20000
	maxIntervalHours = 24
	maxInputLength   = 64
)

// inputRegex allows alphanumerics plus the few characters that occur in
// medication names and language codes.
var inputRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+']+$`)

// dangerousPatterns are matched as plain substrings; strings.Contains is
// much faster than regex for these.
var dangerousPatterns = []string{
	"<script", "javascript:", "onload=", "onerror=", "eval(",
	"' or ", "\" or ", "union select", "drop table", "--", "/*",
	"../", "..\\", "${", "$(", "`",
}

// ValidatorImpl implements interfaces.Validator.
type ValidatorImpl struct{}

// NewValidator creates a validator.
func NewValidator() interfaces.Validator {
	return &ValidatorImpl{}
}

// ValidateProfile enforces the profile invariants: strictly positive
// numeric fields, a non-empty display name, and daily limit at or above
// the single-dose limit.
func (v *ValidatorImpl) ValidateProfile(med dosing.Medication, p dosing.Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("empty display name for %s", med)
	}

	if p.MgPerKg <= 0 {
		return fmt.Errorf("mg_per_kg must be positive for %s: %v", med, p.MgPerKg)
	}
	if p.MgPerKg > maxMgPerKg {
		return fmt.Errorf("mg_per_kg implausibly high for %s: %v", med, p.MgPerKg)
	}

	if p.MaxDoseMg <= 0 {
		return fmt.Errorf("max_dose_mg must be positive for %s: %v", med, p.MaxDoseMg)
	}
	if p.MaxDoseMg > maxSingleDoseMg {
		return fmt.Errorf("max_dose_mg implausibly high for %s: %v", med, p.MaxDoseMg)
	}

	if p.IntervalHours <= 0 || p.IntervalHours > maxIntervalHours {
		return fmt.Errorf("interval_hours out of range for %s: %d", med, p.IntervalHours)
	}

	if p.MaxDailyDoseMg <= 0 {
		return fmt.Errorf("max_daily_dose_mg must be positive for %s: %v", med, p.MaxDailyDoseMg)
	}
	if p.MaxDailyDoseMg > maxDailyLimitMg {
		return fmt.Errorf("max_daily_dose_mg implausibly high for %s: %v", med, p.MaxDailyDoseMg)
	}
	if p.MaxDailyDoseMg < p.MaxDoseMg {
		return fmt.Errorf("max_daily_dose_mg below max_dose_mg for %s: %v < %v", med, p.MaxDailyDoseMg, p.MaxDoseMg)
	}

	return nil
}

// ValidateFormulary checks a whole table and reports every problem it
// finds, so an operator sees all bad entries in one pass.
func (v *ValidatorImpl) ValidateFormulary(profiles map[dosing.Medication]dosing.Profile) error {
	if len(profiles) == 0 {
		return errors.New("formulary is empty")
	}

	var problems []string
	for med, p := range profiles {
		if err := v.ValidateProfile(med, p); err != nil {
			problems = append(problems, err.Error())
			logging.Error("Formulary profile failed validation", "medication", string(med), "error", err)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("formulary validation failed: %s", strings.Join(problems, "; "))
	}

	return nil
}

// ValidateUserInput rejects request strings that are empty, oversized,
// carry characters outside the expected set, or embed injection patterns.
func (v *ValidatorImpl) ValidateUserInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("input cannot be empty")
	}

	if len(input) > maxInputLength {
		return fmt.Errorf("input too long: %d characters", len(input))
	}

	lower := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			logging.Warn("Rejected dangerous input pattern", "pattern", pattern)
			return errors.New("input contains invalid characters")
		}
	}

	if !inputRegex.MatchString(input) {
		return errors.New("input contains invalid characters")
	}

	return nil
}
