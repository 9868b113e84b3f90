// Package data provides the thread-safe container for the active
// formulary. The table is replaced atomically so readers never see a
// partial update and lookups stay lock-free.
package data

import (
	"sync/atomic"
	"time"

	"github.com/pediadose/dosage-api/dosing"
	"github.com/pediadose/dosage-api/interfaces"
	"github.com/pediadose/dosage-api/logging"
)

// Compile-time check that FormularyContainer implements FormularyStore.
var _ interfaces.FormularyStore = (*FormularyContainer)(nil)

// Formulary sources reported by Source().
const (
	SourceBuiltin = "builtin"
	SourceFile    = "file"
)

// FormularyContainer holds the active medication table behind atomic
// values. Every write stores a complete new map; maps handed out to
// readers are never mutated afterwards.
type FormularyContainer struct {
	profiles   atomic.Value // map[dosing.Medication]dosing.Profile
	lastLoaded atomic.Value // time.Time
	source     atomic.Value // string
	loadErr    atomic.Value // string, empty when the last load succeeded
	updating   atomic.Bool
}

// NewFormularyContainer creates a container seeded with the built-in
// formulary, so the service can always dose even when no override file
// is configured.
func NewFormularyContainer() *FormularyContainer {
	fc := &FormularyContainer{}
	fc.profiles.Store(map[dosing.Medication]dosing.Profile(dosing.DefaultFormulary()))
	fc.lastLoaded.Store(time.Now())
	fc.source.Store(SourceBuiltin)
	fc.loadErr.Store("")
	return fc
}

// Profiles returns the active medication table. Callers must treat the
// map as read-only.
func (fc *FormularyContainer) Profiles() map[dosing.Medication]dosing.Profile {
	if v := fc.profiles.Load(); v != nil {
		if profiles, ok := v.(map[dosing.Medication]dosing.Profile); ok {
			return profiles
		}
	}

	logging.Warn("Formulary is empty or invalid")
	return map[dosing.Medication]dosing.Profile{}
}

// Lookup implements dosing.ProfileSource against the active table.
func (fc *FormularyContainer) Lookup(med dosing.Medication) (dosing.Profile, bool) {
	p, ok := fc.Profiles()[med]
	return p, ok
}

// LastLoaded returns when the active table was last replaced.
func (fc *FormularyContainer) LastLoaded() time.Time {
	if v := fc.lastLoaded.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

// Source reports where the active table came from: builtin or file.
func (fc *FormularyContainer) Source() string {
	if v := fc.source.Load(); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return SourceBuiltin
}

// LoadError returns the last load failure, or "" when the last load
// succeeded. A failed load never replaces a good table.
func (fc *FormularyContainer) LoadError() string {
	if v := fc.loadErr.Load(); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IsUpdating reports whether a replace is in progress.
func (fc *FormularyContainer) IsUpdating() bool {
	return fc.updating.Load()
}

// Replace atomically swaps in a new formulary.
func (fc *FormularyContainer) Replace(profiles map[dosing.Medication]dosing.Profile, source string) {
	fc.profiles.Store(profiles)
	fc.source.Store(source)
	fc.lastLoaded.Store(time.Now())
}

// SetLoadError records the result of the most recent load attempt.
func (fc *FormularyContainer) SetLoadError(err error) {
	if err == nil {
		fc.loadErr.Store("")
		return
	}
	fc.loadErr.Store(err.Error())
}

// BeginUpdate marks an update as started. Returns false if another
// update is already running.
func (fc *FormularyContainer) BeginUpdate() bool {
	return fc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the current update as finished.
func (fc *FormularyContainer) EndUpdate() {
	fc.updating.Store(false)
}
