// Package scheduler runs the periodic formulary jobs: scheduled reloads
// of the override file and a daily revalidation of the active table.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/pediadose/dosage-api/formulary"
	"github.com/pediadose/dosage-api/interfaces"
	"github.com/pediadose/dosage-api/logging"
)

// Compile-time check that Scheduler implements the Scheduler interface.
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler coordinates formulary maintenance using injected dependencies.
type Scheduler struct {
	store         interfaces.FormularyStore
	loader        interfaces.FormularyLoader
	validator     interfaces.Validator
	formularyFile string
	scheduler     *gocron.Scheduler
	stopMonitor   chan struct{}
}

// NewScheduler creates a scheduler. formularyFile may be empty, in which
// case only the daily revalidation job runs.
func NewScheduler(store interfaces.FormularyStore, loader interfaces.FormularyLoader,
	validator interfaces.Validator, formularyFile string) *Scheduler {
	return &Scheduler{
		store:         store,
		loader:        loader,
		validator:     validator,
		formularyFile: formularyFile,
		scheduler:     gocron.NewScheduler(time.Local),
		stopMonitor:   make(chan struct{}),
	}
}

// Start performs the initial file load (when configured) and registers
// the periodic jobs.
func (s *Scheduler) Start() error {
	if s.formularyFile != "" {
		if err := formulary.Reload(s.store, s.loader, s.formularyFile); err != nil {
			return fmt.Errorf("initial formulary load failed: %w", err)
		}

		// Pick up out-of-band file edits even if the fsnotify watcher
		// missed them.
		_, err := s.scheduler.Every(1).Days().At("06:00;18:00").Do(func() {
			if err := formulary.Reload(s.store, s.loader, s.formularyFile); err != nil {
				logging.Error("Scheduled formulary reload failed", "error", err)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to schedule formulary reloads: %w", err)
		}
	}

	_, err := s.scheduler.Every(1).Days().At("03:00").Do(s.revalidate)
	if err != nil {
		return fmt.Errorf("failed to schedule formulary revalidation: %w", err)
	}

	s.scheduler.StartAsync()
	s.startStalenessMonitoring()

	return nil
}

// Stop stops all scheduled jobs.
func (s *Scheduler) Stop() {
	close(s.stopMonitor)
	s.scheduler.Stop()
}

// revalidate re-checks every active profile against the invariants and
// logs the result. The table itself is immutable, so this catches bad
// override files that slipped in out of band, not in-memory corruption.
func (s *Scheduler) revalidate() {
	profiles := s.store.Profiles()
	if err := s.validator.ValidateFormulary(profiles); err != nil {
		logging.Error("Formulary revalidation failed", "error", err)
		return
	}
	logging.Info("Formulary revalidation passed",
		"medication_count", len(profiles),
		"source", s.store.Source(),
	)
}

// startStalenessMonitoring warns hourly when a configured override file
// has not been reloaded for more than a day past the schedule.
func (s *Scheduler) startStalenessMonitoring() {
	if s.formularyFile == "" {
		return
	}

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopMonitor:
				return
			case <-ticker.C:
				if time.Since(s.store.LastLoaded()) > 25*time.Hour {
					logging.Warn("Formulary has not been reloaded in over 25 hours",
						"last_loaded", s.store.LastLoaded().Format(time.RFC3339))
				}
			}
		}
	}()
}
