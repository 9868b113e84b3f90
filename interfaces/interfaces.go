// Package interfaces defines the core abstractions of the dosage API so
// the formulary store, loader and validator can be swapped or mocked
// independently.
package interfaces

import (
	"time"

	"github.com/pediadose/dosage-api/dosing"
)

// FormularyStore is the contract for the active medication table. It
// provides thread-safe lookups and an atomic replace so a file-backed
// formulary can swap in with zero downtime while the calculator keeps
// the exact same lookup contract.
type FormularyStore interface {
	dosing.ProfileSource

	Profiles() map[dosing.Medication]dosing.Profile
	LastLoaded() time.Time
	Source() string
	IsUpdating() bool
	LoadError() string

	Replace(profiles map[dosing.Medication]dosing.Profile, source string)
	SetLoadError(err error)
	BeginUpdate() bool
	EndUpdate()
}

// FormularyLoader reads medication profiles from an external source,
// validating every profile before returning.
type FormularyLoader interface {
	Load(path string) (map[dosing.Medication]dosing.Profile, error)
}

// Validator checks formulary data and raw request strings.
type Validator interface {
	// ValidateProfile enforces the profile invariants: every numeric
	// field strictly positive plus basic clinical coherence.
	ValidateProfile(med dosing.Medication, p dosing.Profile) error

	// ValidateFormulary checks a whole table and reports every problem.
	ValidateFormulary(profiles map[dosing.Medication]dosing.Profile) error

	// ValidateUserInput rejects request strings that are oversized or
	// carry injection patterns.
	ValidateUserInput(input string) error
}

// HealthChecker reports service health for the /health endpoint.
type HealthChecker interface {
	HealthCheck() (status string, data map[string]any, httpStatus int)
}

// Scheduler manages periodic formulary reloads and revalidation.
type Scheduler interface {
	Start() error
	Stop()
}
