// Package handlers provides the HTTP request handlers for the dosage API:
// dose calculation, formulary listing, weight conversion and health.
package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pediadose/dosage-api/dosing"
	"github.com/pediadose/dosage-api/interfaces"
	"github.com/pediadose/dosage-api/logging"
	"github.com/pediadose/dosage-api/metrics"
)

// CalculateDosage handles POST /api/calculate-dosage. Guardrail failures
// (invalid weight, unknown medication, dose above maximum) are rendered
// as 200 responses with error=true, because they are expected clinical
// outcomes the client must display, not transport failures.
func CalculateDosage(store interfaces.FormularyStore, validator interfaces.Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DosageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Medication == "" {
			RespondWithError(w, http.StatusBadRequest, "medication is required")
			return
		}
		if err := validator.ValidateUserInput(req.Medication); err != nil {
			logging.Warn("Rejected medication input", "error", err)
			RespondWithError(w, http.StatusBadRequest, "Invalid medication value")
			return
		}
		if req.Language != "" && req.Language != "en" && req.Language != "es" {
			RespondWithError(w, http.StatusBadRequest, "language must be 'en' or 'es'")
			return
		}

		weightKg := req.WeightKg
		if weightKg == 0 && req.WeightLbs != 0 {
			weightKg = dosing.ConvertLbsToKg(req.WeightLbs)
		}

		calc := dosing.NewCalculator(store)
		outcome := calc.Calculate(weightKg, req.Medication, dosing.ParseLanguage(req.Language))

		resp := buildDosageResponse(outcome, weightKg)
		resp.CalculationID = uuid.NewString()
		resp.Timestamp = time.Now().Format(time.RFC3339)

		recordOutcome(req.Medication, outcome)
		RespondWithJSON(w, r, http.StatusOK, resp)
	}
}

// buildDosageResponse maps each outcome variant onto the wire shape. The
// type switch is exhaustive over the closed union.
func buildDosageResponse(outcome dosing.Outcome, weightKg float64) DosageResponse {
	resp := DosageResponse{
		WarningsEN: []string{},
		WarningsES: []string{},
	}

	switch o := outcome.(type) {
	case dosing.Success:
		resp.Error = false
		resp.SafetyLevel = string(o.Level)
		resp.DoseMg = ptr(o.DoseMg)
		resp.MedicationName = o.MedicationName
		resp.InstructionsEN = o.InstructionsEN
		resp.InstructionsES = o.InstructionsES
		resp.MessageEN = o.MessageEN
		resp.MessageES = o.MessageES
		if len(o.WarningsEN) > 0 {
			resp.WarningsEN = o.WarningsEN
			resp.WarningsES = o.WarningsES
		}
		resp.WeightUsedKg = ptr(weightKg)

	case dosing.DoseExceeded:
		resp.Error = true
		resp.SafetyLevel = string(dosing.SafetyCritical)
		resp.MessageEN = o.MessageEN
		resp.MessageES = o.MessageES
		resp.WarningsEN = o.WarningsEN
		resp.WarningsES = o.WarningsES
		resp.CalculatedDoseMg = ptr(o.CalculatedDoseMg)
		resp.MaxSafeDoseMg = ptr(o.MaxDoseMg)

	case dosing.UnknownMedication:
		// The calculator only marks the error; classification to
		// CRITICAL happens here at the response boundary.
		resp.Error = true
		resp.SafetyLevel = string(dosing.SafetyCritical)
		resp.MessageEN = o.MessageEN
		resp.MessageES = o.MessageES
		resp.WarningsEN = o.WarningsEN
		resp.WarningsES = o.WarningsES

	case dosing.InvalidWeight:
		resp.Error = true
		resp.SafetyLevel = string(dosing.SafetyCritical)
		resp.MessageEN = o.MessageEN
		resp.MessageES = o.MessageES
		resp.WarningsEN = []string{o.MessageEN}
		resp.WarningsES = []string{o.MessageES}
	}

	return resp
}

// recordOutcome updates the domain metrics for one calculation.
func recordOutcome(medication string, outcome dosing.Outcome) {
	medLabel := "unknown"
	if med, ok := dosing.ParseMedication(medication); ok {
		medLabel = string(med)
	}

	switch o := outcome.(type) {
	case dosing.Success:
		metrics.DosageCalculationsTotal.WithLabelValues(medLabel, "success", string(o.Level)).Inc()
	case dosing.DoseExceeded:
		metrics.DosageCalculationsTotal.WithLabelValues(medLabel, "dose_exceeded", string(dosing.SafetyCritical)).Inc()
		metrics.DoseExceededTotal.WithLabelValues(medLabel).Inc()
	case dosing.UnknownMedication:
		metrics.DosageCalculationsTotal.WithLabelValues(medLabel, "unknown_medication", string(dosing.SafetyCritical)).Inc()
	case dosing.InvalidWeight:
		metrics.DosageCalculationsTotal.WithLabelValues(medLabel, "invalid_weight", string(dosing.SafetyCritical)).Inc()
	}
}

// ListMedications handles GET /api/medications: the active formulary with
// full dosing parameters, keyed by medication identifier.
func ListMedications(store interfaces.FormularyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles := store.Profiles()

		medications := make(map[string]dosing.Profile, len(profiles))
		for med, p := range profiles {
			medications[string(med)] = p
		}

		RespondWithJSON(w, r, http.StatusOK, map[string]any{
			"medications": medications,
			"source":      store.Source(),
		})
	}
}

// ConvertWeight handles POST /api/convert-weight.
func ConvertWeight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConvertWeightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.WeightLbs <= 0 || math.IsNaN(req.WeightLbs) || math.IsInf(req.WeightLbs, 0) {
			RespondWithError(w, http.StatusBadRequest, "weight_lbs must be a positive number")
			return
		}

		RespondWithJSON(w, r, http.StatusOK, ConvertWeightResponse{
			WeightLbs: req.WeightLbs,
			WeightKg:  dosing.ConvertLbsToKg(req.WeightLbs),
		})
	}
}

// HealthCheck handles GET /health.
func HealthCheck(checker interfaces.HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, data, httpStatus := checker.HealthCheck()

		payload := map[string]any{"status": status}
		for k, v := range data {
			payload[k] = v
		}

		RespondWithJSON(w, r, httpStatus, payload)
	}
}
