// Package formulary loads medication profiles from an optional YAML
// override file and keeps the active table fresh. The built-in table is
// the fallback; a file that fails validation never replaces a good
// formulary.
package formulary

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pediadose/dosage-api/dosing"
	"github.com/pediadose/dosage-api/interfaces"
)

// Compile-time check that Loader implements FormularyLoader.
var _ interfaces.FormularyLoader = (*Loader)(nil)

// fileDocument is the on-disk shape of a formulary override file:
//
//	medications:
//	  acetaminophen:
//	    name: Acetaminophen (Tylenol)
//	    mg_per_kg: 15
//	    max_dose_mg: 1000
//	    interval_hours: 6
//	    max_daily_dose_mg: 4000
type fileDocument struct {
	Medications map[string]dosing.Profile `yaml:"medications"`
}

// Loader reads and validates formulary override files.
type Loader struct {
	validator interfaces.Validator
}

// NewLoader creates a loader that validates every profile before it is
// accepted.
func NewLoader(validator interfaces.Validator) *Loader {
	return &Loader{validator: validator}
}

// Load parses a YAML formulary file. Keys must belong to the supported
// medication enumeration; an unknown key or an invalid profile fails the
// whole load so a partial table can never go live.
func (l *Loader) Load(path string) (map[dosing.Medication]dosing.Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read formulary file: %w", err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse formulary file: %w", err)
	}

	if len(doc.Medications) == 0 {
		return nil, fmt.Errorf("formulary file %s contains no medications", path)
	}

	profiles := make(map[dosing.Medication]dosing.Profile, len(doc.Medications))
	for key, profile := range doc.Medications {
		med, ok := dosing.ParseMedication(key)
		if !ok {
			return nil, fmt.Errorf("unsupported medication key in formulary file: %q", key)
		}
		if err := l.validator.ValidateProfile(med, profile); err != nil {
			return nil, fmt.Errorf("invalid profile: %w", err)
		}
		profiles[med] = profile
	}

	return profiles, nil
}
