package dosing

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Language selects which message fields a caller considers active. Every
// outcome always carries both languages; the code is advisory metadata.
type Language string

const (
	LanguageEN Language = "en"
	LanguageES Language = "es"
)

// ParseLanguage maps a two-letter code to a Language, defaulting to
// English for anything outside {en, es}.
func ParseLanguage(s string) Language {
	if Language(s) == LanguageES {
		return LanguageES
	}
	return LanguageEN
}

// Message keys double as the English format strings. The Spanish strings
// live in one table next to them so the two languages are rendered from a
// single template per message and cannot drift branch by branch.
const (
	msgInstructions   = "Give %s mg every %d hours"
	msgWeightTooLow   = "Invalid weight: Must be at least 1 kg for pediatric patient"
	msgWeightTooHigh  = "Invalid weight: Exceeds realistic pediatric range (max 200 kg)"
	msgWeightOK       = "Weight validated"
	msgUnknownMed     = "Unknown medication: %s"
	msgNotInDatabase  = "Medication not in CDS database"
	msgDoseExceeds    = "WARNING: Calculated dose (%s mg) EXCEEDS maximum safe dose (%s mg)"
	msgCalculatedDose = "Calculated: %s mg"
	msgMaximumSafe    = "Maximum safe: %s mg"
	msgDoNotGive      = "DO NOT ADMINISTER - Exceeds safety threshold"
	msgPercentOfMax   = "Dose is %d%% of maximum safe dose"
	msgDoubleCheck    = "Consider double-checking calculation"
	msgSafeDose       = "Safe dosage calculated"
	msgCautionDose    = "Caution: High dose"
)

var spanish = map[string]string{
	msgInstructions:   "Dar %s mg cada %d horas",
	msgWeightTooLow:   "Peso inválido: Debe ser al menos 1 kg para paciente pediátrico",
	msgWeightTooHigh:  "Peso inválido: Excede rango pediátrico realista (máx 200 kg)",
	msgWeightOK:       "Peso validado",
	msgUnknownMed:     "Medicamento desconocido: %s",
	msgNotInDatabase:  "Medicamento no está en la base de datos CDS",
	msgDoseExceeds:    "ADVERTENCIA: Dosis calculada (%s mg) EXCEDE la dosis máxima segura (%s mg)",
	msgCalculatedDose: "Calculado: %s mg",
	msgMaximumSafe:    "Máximo seguro: %s mg",
	msgDoNotGive:      "NO ADMINISTRAR - Excede umbral de seguridad",
	msgPercentOfMax:   "La dosis es %d%% de la dosis máxima segura",
	msgDoubleCheck:    "Considere verificar el cálculo dos veces",
	msgSafeDose:       "Dosis segura calculada",
	msgCautionDose:    "Precaución: Dosis alta",
}

var (
	printerEN *message.Printer
	printerES *message.Printer
)

func init() {
	for key, es := range spanish {
		if err := message.SetString(language.English, key, key); err != nil {
			panic(err)
		}
		if err := message.SetString(language.Spanish, key, es); err != nil {
			panic(err)
		}
	}
	printerEN = message.NewPrinter(language.English)
	printerES = message.NewPrinter(language.Spanish)
}

// renderBoth renders one message key in both languages with the same
// arguments. Numeric doses are pre-formatted strings so locale number
// formatting never rewrites a clinical value.
func renderBoth(key string, args ...any) (en, es string) {
	return printerEN.Sprintf(key, args...), printerES.Sprintf(key, args...)
}

// round1 rounds to one decimal place, the presentation precision for all
// milligram doses.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// formatDose renders a computed dose with exactly one decimal.
func formatDose(v float64) string {
	return strconv.FormatFloat(round1(v), 'f', 1, 64)
}

// formatLimit renders a table limit without spurious decimals (1000, not
// 1000.0).
func formatLimit(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
