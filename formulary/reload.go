package formulary

import (
	"time"

	"github.com/pediadose/dosage-api/data"
	"github.com/pediadose/dosage-api/interfaces"
	"github.com/pediadose/dosage-api/logging"
	"github.com/pediadose/dosage-api/metrics"
)

// Reload loads the override file and atomically swaps it into the store.
// On failure the previous table stays active and the error is recorded
// for the health endpoint.
func Reload(store interfaces.FormularyStore, loader interfaces.FormularyLoader, path string) error {
	if !store.BeginUpdate() {
		logging.Info("Formulary reload already in progress, skipping")
		return nil
	}
	defer store.EndUpdate()

	start := time.Now()

	profiles, err := loader.Load(path)
	if err != nil {
		store.SetLoadError(err)
		metrics.FormularyReloadsTotal.WithLabelValues("error").Inc()
		logging.Error("Formulary reload failed, keeping previous table", "path", path, "error", err)
		return err
	}

	store.Replace(profiles, data.SourceFile)
	store.SetLoadError(nil)
	metrics.FormularyReloadsTotal.WithLabelValues("success").Inc()
	logging.Info("Formulary reloaded",
		"path", path,
		"medication_count", len(profiles),
		"duration", time.Since(start).String(),
	)

	return nil
}
