// Package health provides health checking for the dosage API.
package health

import (
	"net/http"
	"time"

	"github.com/pediadose/dosage-api/interfaces"
)

// Compile-time check that HealthCheckerImpl implements HealthChecker.
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl reports health based on the formulary store.
type HealthCheckerImpl struct {
	store interfaces.FormularyStore
}

// NewHealthChecker creates a health checker.
func NewHealthChecker(store interfaces.FormularyStore) *HealthCheckerImpl {
	return &HealthCheckerImpl{store: store}
}

// HealthCheck returns the status for the /health endpoint. The service is
// unhealthy without a formulary and degraded when the last override-file
// load failed (the previous table is still serving).
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	profiles := h.store.Profiles()
	loadErr := h.store.LoadError()

	switch {
	case len(profiles) == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case loadErr != "":
		status = "degraded"
		httpStatus = http.StatusOK

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"medication_count": len(profiles),
		"formulary_source": h.store.Source(),
		"last_loaded":      h.store.LastLoaded().Format(time.RFC3339),
		"is_updating":      h.store.IsUpdating(),
	}
	if loadErr != "" {
		data["load_error"] = loadErr
	}

	return status, data, httpStatus
}
