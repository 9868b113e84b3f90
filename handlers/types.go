package handlers

// DosageRequest is the body of POST /api/calculate-dosage. Weight may be
// given in kilograms or, alternatively, in pounds; when both are present
// kilograms win.
type DosageRequest struct {
	WeightKg   float64 `json:"weight_kg"`
	WeightLbs  float64 `json:"weight_lbs,omitempty"`
	Medication string  `json:"medication"`
	Language   string  `json:"language,omitempty"`
}

// DosageResponse is the bilingual calculation result. Both language
// variants are always populated; the requested language only tells the
// client which fields it asked for.
type DosageResponse struct {
	Error       bool   `json:"error"`
	SafetyLevel string `json:"safety_level"`

	DoseMg         *float64 `json:"dose_mg,omitempty"`
	MedicationName string   `json:"medication_name,omitempty"`

	InstructionsEN string `json:"instructions_en,omitempty"`
	InstructionsES string `json:"instructions_es,omitempty"`

	MessageEN string `json:"message_en"`
	MessageES string `json:"message_es"`

	WarningsEN []string `json:"warnings_en"`
	WarningsES []string `json:"warnings_es"`

	CalculatedDoseMg *float64 `json:"calculated_dose_mg,omitempty"`
	MaxSafeDoseMg    *float64 `json:"max_safe_dose_mg,omitempty"`
	WeightUsedKg     *float64 `json:"weight_used_kg,omitempty"`

	CalculationID string `json:"calculation_id"`
	Timestamp     string `json:"timestamp"`
}

// ConvertWeightRequest is the body of POST /api/convert-weight.
type ConvertWeightRequest struct {
	WeightLbs float64 `json:"weight_lbs"`
}

// ConvertWeightResponse echoes the input alongside the converted value.
type ConvertWeightResponse struct {
	WeightLbs float64 `json:"weight_lbs"`
	WeightKg  float64 `json:"weight_kg"`
}

func ptr(v float64) *float64 { return &v }
